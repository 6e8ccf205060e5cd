package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cardapio-digital/domain/models"
	"cardapio-digital/domain/repositories"
)

type MenuItemRepositoryImpl struct {
	db *gorm.DB
}

func NewMenuItemRepository(db *gorm.DB) repositories.MenuItemRepository {
	return &MenuItemRepositoryImpl{db: db}
}

func (r *MenuItemRepositoryImpl) Create(ctx context.Context, item *models.MenuItem) error {
	if !validID(item.CategoryID) {
		return repositories.NewStoreError("menu_items.create", errors.New("invalid category id"))
	}
	row := menuItemRowFromModel(item)
	row.ID = uuid.NewString()

	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return wrap("menu_items.create", err)
	}
	item.ID = row.ID
	item.CreatedAt = row.CreatedAt
	item.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *MenuItemRepositoryImpl) GetByID(ctx context.Context, id string) (*models.MenuItem, error) {
	if !validID(id) {
		return nil, nil
	}
	var row menuItemRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, wrap("menu_items.getById", err)
	}
	return row.toModel(), nil
}

func (r *MenuItemRepositoryImpl) Update(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	if !validID(item.ID) {
		return nil, nil
	}
	row := menuItemRowFromModel(item)
	res := r.db.WithContext(ctx).Model(&menuItemRow{}).Where("id = ?", item.ID).Updates(map[string]any{
		"name":                   row.Name,
		"description":            row.Description,
		"price":                  row.Price,
		"half_price":             row.HalfPrice,
		"image":                  row.Image,
		"category_id":            row.CategoryID,
		"promotion_in_promotion": row.Promotion.InPromotion,
		"promotion_price":        row.Promotion.Price,
		"updated_at":             time.Now().UTC(),
	})
	if res.Error != nil {
		return nil, wrap("menu_items.update", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, item.ID)
}

func (r *MenuItemRepositoryImpl) Delete(ctx context.Context, id string) (*models.MenuItem, error) {
	item, err := r.GetByID(ctx, id)
	if err != nil || item == nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&menuItemRow{}).Error; err != nil {
		return nil, wrap("menu_items.delete", err)
	}
	return item, nil
}

func (r *MenuItemRepositoryImpl) DeleteByCategory(ctx context.Context, categoryID string) (int64, error) {
	if !validID(categoryID) {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Where("category_id = ?", categoryID).Delete(&menuItemRow{})
	if res.Error != nil {
		return 0, wrap("menu_items.deleteByCategory", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *MenuItemRepositoryImpl) ListByCategory(ctx context.Context, categoryID string) ([]*models.MenuItem, error) {
	if !validID(categoryID) {
		return []*models.MenuItem{}, nil
	}
	var rows []menuItemRow
	if err := r.db.WithContext(ctx).Where("category_id = ?", categoryID).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, wrap("menu_items.listByCategory", err)
	}
	items := make([]*models.MenuItem, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].toModel())
	}
	return items, nil
}

func (r *MenuItemRepositoryImpl) ListAllWithCategory(ctx context.Context) ([]*models.MenuItemWithCategory, error) {
	var rows []menuItemRow
	if err := r.db.WithContext(ctx).
		Joins("JOIN categories ON categories.id = menu_items.category_id").
		Order("menu_items.name ASC").
		Find(&rows).Error; err != nil {
		return nil, wrap("menu_items.listAll", err)
	}

	var categories []categoryRow
	if err := r.db.WithContext(ctx).Find(&categories).Error; err != nil {
		return nil, wrap("menu_items.listAll", err)
	}
	byID := make(map[string]*models.Category, len(categories))
	for i := range categories {
		byID[categories[i].ID] = categories[i].toModel()
	}

	result := make([]*models.MenuItemWithCategory, 0, len(rows))
	for i := range rows {
		category, ok := byID[rows[i].CategoryID]
		if !ok {
			continue
		}
		result = append(result, &models.MenuItemWithCategory{MenuItem: *rows[i].toModel(), Category: category})
	}
	return result, nil
}
