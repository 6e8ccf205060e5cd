package models

import (
	"time"

	"cardapio-digital/pkg/money"
)

// Promotion is present only while an item is on sale; a nil *Promotion means no promotion
type Promotion struct {
	Price money.Cents
}

type MenuItem struct {
	ID          string
	Name        string
	Description string
	Price       money.Cents
	HalfPrice   money.Cents
	Image       string
	CategoryID  string
	Promotion   *Promotion
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (m *MenuItem) InPromotion() bool {
	return m != nil && m.Promotion != nil
}

// EffectivePrice is the full-portion price a customer pays
func (m *MenuItem) EffectivePrice() money.Cents {
	if m.InPromotion() {
		return m.Promotion.Price
	}
	return m.Price
}

// MenuItemWithCategory is a joined listing row
type MenuItemWithCategory struct {
	MenuItem
	Category *Category
}

// NewPromotion maps the stored {inPromotion, promotionPrice} pair to the in-memory form
func NewPromotion(inPromotion bool, price money.Cents) *Promotion {
	if !inPromotion {
		return nil
	}
	return &Promotion{Price: price}
}
