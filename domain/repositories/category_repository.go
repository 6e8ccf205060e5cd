package repositories

import (
	"context"

	"cardapio-digital/domain/models"
)

// CategoryRepository returns (nil, nil) for absent or malformed ids
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id string) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	// Update replaces name, slug and image; returns the stored record or nil when absent
	Update(ctx context.Context, category *models.Category) (*models.Category, error)
	// Delete removes the category record only, items are left to DeleteByCategory
	Delete(ctx context.Context, id string) error
	// List is ordered by name ascending
	List(ctx context.Context) ([]*models.Category, error)
}
