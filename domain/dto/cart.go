package dto

import (
	"cardapio-digital/domain/cart"
	"cardapio-digital/pkg/money"
)

// === Requests ===

type AddCartItemRequest struct {
	MenuItemID     string `json:"menuItemId" validate:"required"`
	SelectedOption string `json:"selectedOption" validate:"omitempty,oneof=full half"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// === Responses ===

type CartLineResponse struct {
	UniqueID       string             `json:"uniqueId"`
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Description    string             `json:"description,omitempty"`
	Image          string             `json:"image"`
	CategoryName   string             `json:"categoryName"`
	SelectedOption string             `json:"selectedOption"`
	Quantity       int                `json:"quantity"`
	Price          money.Amount       `json:"price"`
	HalfPrice      *money.Amount      `json:"halfPrice,omitempty"`
	Promotion      *PromotionResponse `json:"promotion,omitempty"`
	UnitPrice      money.Amount       `json:"unitPrice"`
	LineTotal      money.Amount       `json:"lineTotal"`
}

type CartResponse struct {
	Items []CartLineResponse `json:"items"`
	Count int                `json:"count"`
	Total money.Amount       `json:"total"`
}

// === Mappers ===

func CartToResponse(c *cart.Cart) *CartResponse {
	if c == nil {
		c = cart.New()
	}
	resp := &CartResponse{
		Items: make([]CartLineResponse, 0, len(c.Items)),
		Count: c.Count(),
		Total: c.Total().Amount(),
	}
	for _, line := range c.Items {
		out := CartLineResponse{
			UniqueID:       line.UniqueID,
			ID:             line.ID,
			Name:           line.Name,
			Description:    line.Description,
			Image:          imageOrPlaceholder(line.Image),
			CategoryName:   line.CategoryName,
			SelectedOption: string(line.SelectedOption),
			Quantity:       line.Quantity,
			Price:          line.Price.Amount(),
			UnitPrice:      cart.UnitPrice(line).Amount(),
			LineTotal:      cart.LineTotal(line).Amount(),
		}
		if line.HalfPrice > 0 {
			half := line.HalfPrice.Amount()
			out.HalfPrice = &half
		}
		if line.PromotionPrice != nil {
			out.Promotion = &PromotionResponse{InPromotion: true, PromotionPrice: line.PromotionPrice.Amount()}
		}
		resp.Items = append(resp.Items, out)
	}
	return resp
}
