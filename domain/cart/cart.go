// Package cart holds the shopping cart state machine. It performs no I/O;
// persistence goes through Repository.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cardapio-digital/domain/models"
	"cardapio-digital/pkg/money"
)

type Option string

const (
	OptionFull Option = "full"
	OptionHalf Option = "half"
)

var ErrInvalidOption = errors.New("invalid cart option")

// ParseOption maps an empty selection to OptionFull
func ParseOption(s string) (Option, error) {
	switch Option(s) {
	case "", OptionFull:
		return OptionFull, nil
	case OptionHalf:
		return OptionHalf, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidOption, s)
	}
}

// Label is the customer-facing name of the portion size
func (o Option) Label() string {
	if o == OptionHalf {
		return "Meia porção"
	}
	return "Porção inteira"
}

// Product is the catalog data copied into a cart line
type Product struct {
	ID          string
	Name        string
	Description string
	Image       string
	Price       money.Cents
	HalfPrice   money.Cents
	Promotion   *models.Promotion
}

func ProductFromMenuItem(m *models.MenuItem) Product {
	p := Product{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Image:       m.Image,
		Price:       m.Price,
		HalfPrice:   m.HalfPrice,
	}
	if m.Promotion != nil {
		promo := *m.Promotion
		p.Promotion = &promo
	}
	return p
}

// Item is one cart line, keyed by UniqueID
type Item struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Description    string       `json:"description,omitempty"`
	Image          string       `json:"image,omitempty"`
	Price          money.Cents  `json:"price"`
	HalfPrice      money.Cents  `json:"halfPrice,omitempty"`
	PromotionPrice *money.Cents `json:"promotionPrice,omitempty"`
	CategoryName   string       `json:"categoryName"`
	Quantity       int          `json:"quantity"`
	SelectedOption Option       `json:"selectedOption"`
	UniqueID       string       `json:"uniqueId"`
}

func (i Item) InPromotion() bool {
	return i.PromotionPrice != nil
}

func UniqueID(itemID string, option Option) string {
	return itemID + "-" + string(option)
}

// Cart keeps lines in insertion order
type Cart struct {
	Items []Item `json:"items"`
}

func New() *Cart {
	return &Cart{Items: []Item{}}
}

// AddItem increments the line for (product, option) or appends a new one with quantity 1
func (c *Cart) AddItem(product Product, categoryName string, option Option) Item {
	if option == "" {
		option = OptionFull
	}
	uid := UniqueID(product.ID, option)

	for i := range c.Items {
		if c.Items[i].UniqueID == uid {
			c.Items[i].Quantity++
			return c.Items[i]
		}
	}

	line := Item{
		ID:             product.ID,
		Name:           product.Name,
		Description:    product.Description,
		Image:          product.Image,
		Price:          product.Price,
		HalfPrice:      product.HalfPrice,
		CategoryName:   categoryName,
		Quantity:       1,
		SelectedOption: option,
		UniqueID:       uid,
	}
	if product.Promotion != nil {
		price := product.Promotion.Price
		line.PromotionPrice = &price
	}
	c.Items = append(c.Items, line)
	return line
}

// RemoveItem reports whether a line was removed
func (c *Cart) RemoveItem(uniqueID string) bool {
	for i := range c.Items {
		if c.Items[i].UniqueID == uniqueID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateQuantity sets max(0, quantity) and drops the line when it reaches zero.
// It reports whether a line matched.
func (c *Cart) UpdateQuantity(uniqueID string, quantity int) bool {
	if quantity < 0 {
		quantity = 0
	}

	found := false
	kept := c.Items[:0]
	for _, line := range c.Items {
		if line.UniqueID == uniqueID {
			found = true
			line.Quantity = quantity
		}
		if line.Quantity > 0 {
			kept = append(kept, line)
		}
	}
	c.Items = kept
	return found
}

// UnitPrice resolves half portion first, then an active promotion, then the regular price
func UnitPrice(line Item) money.Cents {
	if line.SelectedOption == OptionHalf {
		return line.HalfPrice
	}
	if line.PromotionPrice != nil {
		return *line.PromotionPrice
	}
	return line.Price
}

func LineTotal(line Item) money.Cents {
	return UnitPrice(line) * money.Cents(line.Quantity)
}

func (c *Cart) Total() money.Cents {
	var total money.Cents
	for _, line := range c.Items {
		total += LineTotal(line)
	}
	return total
}

// Count is the number of units across all lines
func (c *Cart) Count() int {
	n := 0
	for _, line := range c.Items {
		n += line.Quantity
	}
	return n
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) Clear() {
	c.Items = []Item{}
}

func (c *Cart) Find(uniqueID string) (Item, bool) {
	for _, line := range c.Items {
		if line.UniqueID == uniqueID {
			return line, true
		}
	}
	return Item{}, false
}

// ========== Persistence ==========

// Repository stores one cart per session
type Repository interface {
	Load(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, sessionID string, c *Cart) error
}

func Marshal(c *Cart) ([]byte, error) {
	if c == nil {
		c = New()
	}
	return json.Marshal(c)
}

// Unmarshal always returns a usable cart. Malformed content yields an empty cart
// together with the decode error so callers can log it.
func Unmarshal(data []byte) (*Cart, error) {
	c := New()
	if len(data) == 0 {
		return c, nil
	}
	if err := json.Unmarshal(data, c); err != nil {
		return New(), err
	}
	if err := c.sanitize(); err != nil {
		return New(), err
	}
	return c, nil
}

// sanitize rejects lines that could not have been produced by the state machine
func (c *Cart) sanitize() error {
	if c.Items == nil {
		c.Items = []Item{}
	}
	seen := make(map[string]bool, len(c.Items))
	for _, line := range c.Items {
		if line.ID == "" || line.Quantity < 1 {
			return fmt.Errorf("cart line %q is malformed", line.UniqueID)
		}
		if _, err := ParseOption(string(line.SelectedOption)); err != nil || line.SelectedOption == "" {
			return fmt.Errorf("cart line %q has option %q", line.UniqueID, line.SelectedOption)
		}
		if line.UniqueID != UniqueID(line.ID, line.SelectedOption) || seen[line.UniqueID] {
			return fmt.Errorf("cart line %q has an inconsistent key", line.UniqueID)
		}
		seen[line.UniqueID] = true
	}
	return nil
}
