package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"cardapio-digital/domain/models"
	"cardapio-digital/pkg/money"
)

type categoryRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Slug      string             `bson:"slug,omitempty"`
	Image     string             `bson:"image,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// promotionRecord is the stored sub-document. Older documents carry the
// price under "price" instead of "promotionPrice".
type promotionRecord struct {
	InPromotion    bool  `bson:"inPromotion"`
	PromotionPrice int64 `bson:"promotionPrice,omitempty"`
	LegacyPrice    int64 `bson:"price,omitempty"`
}

type menuItemRecord struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Price       int64              `bson:"price"`
	HalfPrice   int64              `bson:"halfPrice,omitempty"`
	Image       string             `bson:"image,omitempty"`
	Category    primitive.ObjectID `bson:"category"`
	Promotion   *promotionRecord   `bson:"promotion,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

// joinedRecord is one row of the $lookup aggregation
type joinedRecord struct {
	menuItemRecord `bson:",inline"`
	CategoryDoc    categoryRecord `bson:"categoryDoc"`
}

func parseID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

func (r *categoryRecord) toModel() *models.Category {
	return &models.Category{
		ID:        r.ID.Hex(),
		Name:      r.Name,
		Slug:      r.Slug,
		Image:     r.Image,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (r *promotionRecord) toModel() *models.Promotion {
	if r == nil || !r.InPromotion {
		return nil
	}
	price := r.PromotionPrice
	if price == 0 {
		price = r.LegacyPrice
	}
	return &models.Promotion{Price: money.Cents(price)}
}

func promotionFromModel(p *models.Promotion) *promotionRecord {
	if p == nil {
		return &promotionRecord{InPromotion: false}
	}
	return &promotionRecord{InPromotion: true, PromotionPrice: int64(p.Price)}
}

func (r *menuItemRecord) toModel() *models.MenuItem {
	item := &models.MenuItem{
		ID:          r.ID.Hex(),
		Name:        r.Name,
		Description: r.Description,
		Price:       money.Cents(r.Price),
		HalfPrice:   money.Cents(r.HalfPrice),
		Image:       r.Image,
		Promotion:   r.Promotion.toModel(),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if !r.Category.IsZero() {
		item.CategoryID = r.Category.Hex()
	}
	return item
}

func menuItemFromModel(item *models.MenuItem, categoryID primitive.ObjectID) *menuItemRecord {
	return &menuItemRecord{
		Name:        item.Name,
		Description: item.Description,
		Price:       int64(item.Price),
		HalfPrice:   int64(item.HalfPrice),
		Image:       item.Image,
		Category:    categoryID,
		Promotion:   promotionFromModel(item.Promotion),
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func (r *joinedRecord) toModel() *models.MenuItemWithCategory {
	return &models.MenuItemWithCategory{
		MenuItem: *r.menuItemRecord.toModel(),
		Category: r.CategoryDoc.toModel(),
	}
}
