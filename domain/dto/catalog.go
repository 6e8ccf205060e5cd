package dto

import (
	"strings"
	"time"

	"cardapio-digital/domain/models"
	"cardapio-digital/pkg/money"
)

const PlaceholderImage = "/placeholder-image.jpg"

// === Responses ===

type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type PromotionResponse struct {
	InPromotion    bool         `json:"inPromotion"`
	PromotionPrice money.Amount `json:"promotionPrice"`
}

type MenuItemResponse struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Description    string             `json:"description"`
	Price          money.Amount       `json:"price"`
	HalfPrice      *money.Amount      `json:"halfPrice,omitempty"`
	SelectableHalf bool               `json:"selectableHalf"`
	Image          string             `json:"image"`
	CategoryID     string             `json:"categoryId"`
	CategoryName   string             `json:"categoryName,omitempty"`
	Promotion      *PromotionResponse `json:"promotion,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

// MenuItemsPayload is the body that gets compressed for the category page
type MenuItemsPayload struct {
	Items []MenuItemResponse `json:"items"`
}

type CategoryMenuResponse struct {
	Category CategoryResponse   `json:"category"`
	Items    []MenuItemResponse `json:"items"`
}

type CompressedPayload struct {
	Category CategoryResponse `json:"category"`
	Encoding string           `json:"encoding"`
	Data     string           `json:"data"`
	SizeKB   float64          `json:"sizeKb"`
}

// === Mappers ===

func imageOrPlaceholder(image string) string {
	if image == "" {
		return PlaceholderImage
	}
	return image
}

func CategoryToResponse(category *models.Category) *CategoryResponse {
	if category == nil {
		return nil
	}
	return &CategoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		Slug:      category.Slug,
		Image:     imageOrPlaceholder(category.Image),
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}

func CategoriesToResponses(categories []*models.Category) []CategoryResponse {
	responses := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, *CategoryToResponse(category))
	}
	return responses
}

// MenuItemToResponse projects an item; category may be nil when unknown.
// The half price is exposed only for the portions category.
func MenuItemToResponse(item *models.MenuItem, category *models.Category) *MenuItemResponse {
	if item == nil {
		return nil
	}
	resp := &MenuItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price.Amount(),
		Image:       imageOrPlaceholder(item.Image),
		CategoryID:  item.CategoryID,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
	if category != nil {
		resp.CategoryName = category.Name
		if category.IsPortions() && item.HalfPrice > 0 {
			half := item.HalfPrice.Amount()
			resp.HalfPrice = &half
			resp.SelectableHalf = true
		}
	}
	if item.Promotion != nil {
		resp.Promotion = &PromotionResponse{
			InPromotion:    true,
			PromotionPrice: item.Promotion.Price.Amount(),
		}
	}
	return resp
}

func MenuItemsToResponses(items []*models.MenuItem, category *models.Category) []MenuItemResponse {
	responses := make([]MenuItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, *MenuItemToResponse(item, category))
	}
	return responses
}

func JoinedItemsToResponses(rows []*models.MenuItemWithCategory) []MenuItemResponse {
	responses := make([]MenuItemResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, *MenuItemToResponse(&row.MenuItem, row.Category))
	}
	return responses
}

// MenuItemFilter narrows the admin listing. Empty fields match everything.
type MenuItemFilter struct {
	Query      string
	CategoryID string
}

func (f MenuItemFilter) IsEmpty() bool {
	return strings.TrimSpace(f.Query) == "" && f.CategoryID == ""
}

// FilterMenuItems keeps items whose name or description contains the query,
// case-insensitively, and that belong to the category when one is given
func FilterMenuItems(items []MenuItemResponse, f MenuItemFilter) []MenuItemResponse {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]MenuItemResponse, 0, len(items))
	for _, item := range items {
		if f.CategoryID != "" && item.CategoryID != f.CategoryID {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(item.Name), query) &&
			!strings.Contains(strings.ToLower(item.Description), query) {
			continue
		}
		out = append(out, item)
	}
	return out
}
