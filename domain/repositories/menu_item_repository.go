package repositories

import (
	"context"

	"cardapio-digital/domain/models"
)

type MenuItemRepository interface {
	Create(ctx context.Context, item *models.MenuItem) error
	GetByID(ctx context.Context, id string) (*models.MenuItem, error)
	Update(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error)
	// Delete returns the removed item, or nil when nothing matched
	Delete(ctx context.Context, id string) (*models.MenuItem, error)
	DeleteByCategory(ctx context.Context, categoryID string) (int64, error)
	ListByCategory(ctx context.Context, categoryID string) ([]*models.MenuItem, error)
	// ListAllWithCategory joins each item with its category, ordered by item name.
	// Items whose category no longer exists are left out.
	ListAllWithCategory(ctx context.Context) ([]*models.MenuItemWithCategory, error)
}
