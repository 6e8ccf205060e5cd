package postgres

import (
	"time"

	"github.com/google/uuid"

	"cardapio-digital/domain/models"
	"cardapio-digital/pkg/money"
)

type categoryRow struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	Name      string `gorm:"size:100;not null;index"`
	Slug      string `gorm:"size:120;index"`
	Image     string `gorm:"size:500"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (categoryRow) TableName() string {
	return "categories"
}

// promotionColumns is stored as promotion_in_promotion / promotion_price
type promotionColumns struct {
	InPromotion bool  `gorm:"not null;default:false"`
	Price       int64 `gorm:"not null;default:0"`
}

type menuItemRow struct {
	ID          string           `gorm:"primaryKey;type:uuid"`
	Name        string           `gorm:"size:100;not null;index"`
	Description string           `gorm:"type:text"`
	Price       int64            `gorm:"not null"`
	HalfPrice   int64            `gorm:"not null;default:0"`
	Image       string           `gorm:"size:500"`
	CategoryID  string           `gorm:"type:uuid;not null;index"`
	Promotion   promotionColumns `gorm:"embedded;embeddedPrefix:promotion_"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (menuItemRow) TableName() string {
	return "menu_items"
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (r *categoryRow) toModel() *models.Category {
	return &models.Category{
		ID:        r.ID,
		Name:      r.Name,
		Slug:      r.Slug,
		Image:     r.Image,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (r *menuItemRow) toModel() *models.MenuItem {
	return &models.MenuItem{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       money.Cents(r.Price),
		HalfPrice:   money.Cents(r.HalfPrice),
		Image:       r.Image,
		CategoryID:  r.CategoryID,
		Promotion:   models.NewPromotion(r.Promotion.InPromotion, money.Cents(r.Promotion.Price)),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func menuItemRowFromModel(item *models.MenuItem) *menuItemRow {
	row := &menuItemRow{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       int64(item.Price),
		HalfPrice:   int64(item.HalfPrice),
		Image:       item.Image,
		CategoryID:  item.CategoryID,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
	if item.Promotion != nil {
		row.Promotion = promotionColumns{InPromotion: true, Price: int64(item.Promotion.Price)}
	}
	return row
}
