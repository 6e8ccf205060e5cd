package services

import (
	"context"

	"cardapio-digital/domain/dto"
)

// CatalogActionService runs the admin mutations. Every method answers with an
// ActionResult and never returns raw store errors.
type CatalogActionService interface {
	CreateCategory(ctx context.Context, form *dto.CategoryForm) *dto.ActionResult
	UpdateCategory(ctx context.Context, id string, form *dto.CategoryForm) *dto.ActionResult
	// DeleteCategory removes the category and then every item that references it
	DeleteCategory(ctx context.Context, id string) *dto.ActionResult

	CreateMenuItem(ctx context.Context, form *dto.MenuItemForm) *dto.ActionResult
	UpdateMenuItem(ctx context.Context, id string, form *dto.MenuItemForm) *dto.ActionResult
	DeleteMenuItem(ctx context.Context, id string) *dto.ActionResult
}
