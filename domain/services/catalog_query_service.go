package services

import (
	"context"

	"cardapio-digital/domain/dto"
)

// CatalogQueryService serves the storefront and admin read views.
// Absence is reported as a nil result, never as an error.
type CatalogQueryService interface {
	// ListCategories ordered by name
	ListCategories(ctx context.Context) ([]dto.CategoryResponse, error)

	GetCategory(ctx context.Context, id string) (*dto.CategoryResponse, error)

	GetCategoryBySlug(ctx context.Context, slug string) (*dto.CategoryResponse, error)

	// ListMenuItems returns the category with its items, nil when the category does not exist
	ListMenuItems(ctx context.Context, categoryID string) (*dto.CategoryMenuResponse, error)

	// ListMenuItemsCompressed returns the {items:[...]} payload as gzip+base64 text
	ListMenuItemsCompressed(ctx context.Context, categoryID string) (*dto.CompressedPayload, error)

	// ListAllMenuItems joins every item with its category, ordered by item name
	ListAllMenuItems(ctx context.Context) ([]dto.MenuItemResponse, error)

	// SearchMenuItems is ListAllMenuItems narrowed by a text query and a category
	SearchMenuItems(ctx context.Context, filter dto.MenuItemFilter) ([]dto.MenuItemResponse, error)

	// ListPromotions is ListAllMenuItems restricted to items on sale
	ListPromotions(ctx context.Context) ([]dto.MenuItemResponse, error)
}
