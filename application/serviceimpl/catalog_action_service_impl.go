package serviceimpl

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"cardapio-digital/domain/dto"
	"cardapio-digital/domain/models"
	"cardapio-digital/domain/ports"
	"cardapio-digital/domain/repositories"
	"cardapio-digital/domain/services"
	"cardapio-digital/pkg/logger"
)

const (
	entityCategory = "category"
	entityMenuItem = "menu_item"
)

const (
	msgCreateCategoryFailed = "Erro ao criar categoria"
	msgUpdateCategoryFailed = "Erro ao atualizar categoria"
	msgDeleteCategoryFailed = "Erro ao deletar categoria"
	msgCreateItemFailed     = "Erro ao criar item"
	msgUpdateItemFailed     = "Erro ao atualizar item"
	msgDeleteItemFailed     = "Erro ao deletar item"
	msgCategoryNotFound     = "Categoria não encontrada"
	msgItemNotFound         = "Item não encontrado"
)

type CatalogActionServiceImpl struct {
	categoryRepo repositories.CategoryRepository
	menuItemRepo repositories.MenuItemRepository
	health       ports.StoreHealth
	cache        ports.ViewCache
	events       ports.EventPublisher
}

// NewCatalogActionService wires the admin mutations; cache and events may be nil
func NewCatalogActionService(
	categoryRepo repositories.CategoryRepository,
	menuItemRepo repositories.MenuItemRepository,
	health ports.StoreHealth,
	cache ports.ViewCache,
	events ports.EventPublisher,
) services.CatalogActionService {
	return &CatalogActionServiceImpl{
		categoryRepo: categoryRepo,
		menuItemRepo: menuItemRepo,
		health:       health,
		cache:        cache,
		events:       events,
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// Categories
// ═══════════════════════════════════════════════════════════════════════════════

func (s *CatalogActionServiceImpl) CreateCategory(ctx context.Context, form *dto.CategoryForm) *dto.ActionResult {
	if result := validateCategoryForm(form); result != nil {
		return result
	}
	if !s.verify(ctx, "createCategory") {
		return dto.ActionFailed(msgCreateCategoryFailed)
	}

	categorySlug, err := s.uniqueSlug(ctx, form.Name, "")
	if err != nil {
		logger.ErrorContext(ctx, "Failed to resolve category slug", "name", form.Name, "error", err)
		return dto.ActionFailed(msgCreateCategoryFailed)
	}

	category := &models.Category{
		Name:  form.Name,
		Slug:  categorySlug,
		Image: form.Image,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		logger.ErrorContext(ctx, "Failed to create category", "name", form.Name, "error", err)
		return dto.ActionFailed(msgCreateCategoryFailed)
	}

	logger.InfoContext(ctx, "Category created", "category_id", category.ID, "name", category.Name)
	s.revalidate(ctx, entityCategory, category.ID, ports.CatalogCreated, ports.ViewAdmin, ports.ViewHome)
	return dto.ActionOK(dto.CategoryToResponse(category))
}

func (s *CatalogActionServiceImpl) UpdateCategory(ctx context.Context, id string, form *dto.CategoryForm) *dto.ActionResult {
	if result := validateCategoryForm(form); result != nil {
		return result
	}
	if !s.verify(ctx, "updateCategory") {
		return dto.ActionFailed(msgUpdateCategoryFailed)
	}

	categorySlug, err := s.uniqueSlug(ctx, form.Name, id)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to resolve category slug", "category_id", id, "error", err)
		return dto.ActionFailed(msgUpdateCategoryFailed)
	}

	updated, err := s.categoryRepo.Update(ctx, &models.Category{
		ID:    id,
		Name:  form.Name,
		Slug:  categorySlug,
		Image: form.Image,
	})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to update category", "category_id", id, "error", err)
		return dto.ActionFailed(msgUpdateCategoryFailed)
	}
	if updated == nil {
		logger.WarnContext(ctx, "Category not found for update", "category_id", id)
		return dto.ActionNotFound(msgCategoryNotFound)
	}

	logger.InfoContext(ctx, "Category updated", "category_id", id)
	// promotions carry the category name and the half-portion flag
	s.revalidate(ctx, entityCategory, id, ports.CatalogUpdated,
		ports.ViewAdmin, ports.ViewHome, ports.ViewCategory(id), ports.ViewPromotions)
	return dto.ActionOK(dto.CategoryToResponse(updated))
}

// DeleteCategory runs the record delete and the item cascade as two independent
// operations; a failed cascade leaves orphans that the joined listing skips.
func (s *CatalogActionServiceImpl) DeleteCategory(ctx context.Context, id string) *dto.ActionResult {
	if !s.verify(ctx, "deleteCategory") {
		return dto.ActionFailed(msgDeleteCategoryFailed)
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		logger.ErrorContext(ctx, "Failed to delete category", "category_id", id, "error", err)
		return dto.ActionFailed(msgDeleteCategoryFailed)
	}

	removed, err := s.menuItemRepo.DeleteByCategory(ctx, id)
	paths := []string{ports.ViewAdmin, ports.ViewHome, ports.ViewCategory(id), ports.ViewPromotions}
	if err != nil {
		logger.ErrorContext(ctx, "Failed to delete category items", "category_id", id, "error", err)
		s.revalidate(ctx, entityCategory, id, ports.CatalogDeleted, paths...)
		return dto.ActionFailed(msgDeleteCategoryFailed)
	}

	logger.InfoContext(ctx, "Category deleted", "category_id", id, "items_removed", removed)
	s.revalidate(ctx, entityCategory, id, ports.CatalogDeleted, paths...)
	return dto.ActionOK(nil)
}

// ═══════════════════════════════════════════════════════════════════════════════
// Menu items
// ═══════════════════════════════════════════════════════════════════════════════

func (s *CatalogActionServiceImpl) CreateMenuItem(ctx context.Context, form *dto.MenuItemForm) *dto.ActionResult {
	if result := validateMenuItemForm(form); result != nil {
		return result
	}
	if !s.verify(ctx, "createMenuItem") {
		return dto.ActionFailed(msgCreateItemFailed)
	}

	category, result := s.resolveCategory(ctx, form.CategoryID, msgCreateItemFailed)
	if result != nil {
		return result
	}

	item := menuItemFromForm(form)
	if err := s.menuItemRepo.Create(ctx, item); err != nil {
		logger.ErrorContext(ctx, "Failed to create menu item", "name", form.Name, "error", err)
		return dto.ActionFailed(msgCreateItemFailed)
	}

	logger.InfoContext(ctx, "Menu item created", "menu_item_id", item.ID, "category_id", item.CategoryID)
	s.revalidate(ctx, entityMenuItem, item.ID, ports.CatalogCreated,
		ports.ViewAdmin, ports.ViewCategory(item.CategoryID), ports.ViewPromotions)
	return dto.ActionOK(dto.MenuItemToResponse(item, category))
}

func (s *CatalogActionServiceImpl) UpdateMenuItem(ctx context.Context, id string, form *dto.MenuItemForm) *dto.ActionResult {
	if result := validateMenuItemForm(form); result != nil {
		return result
	}
	if !s.verify(ctx, "updateMenuItem") {
		return dto.ActionFailed(msgUpdateItemFailed)
	}

	existing, err := s.menuItemRepo.GetByID(ctx, id)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load menu item", "menu_item_id", id, "error", err)
		return dto.ActionFailed(msgUpdateItemFailed)
	}
	if existing == nil {
		logger.WarnContext(ctx, "Menu item not found for update", "menu_item_id", id)
		return dto.ActionNotFound(msgItemNotFound)
	}

	category, result := s.resolveCategory(ctx, form.CategoryID, msgUpdateItemFailed)
	if result != nil {
		return result
	}

	item := menuItemFromForm(form)
	item.ID = id
	updated, err := s.menuItemRepo.Update(ctx, item)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to update menu item", "menu_item_id", id, "error", err)
		return dto.ActionFailed(msgUpdateItemFailed)
	}
	if updated == nil {
		return dto.ActionNotFound(msgItemNotFound)
	}

	paths := []string{ports.ViewAdmin, ports.ViewCategory(updated.CategoryID), ports.ViewPromotions}
	if existing.CategoryID != updated.CategoryID {
		paths = append(paths, ports.ViewCategory(existing.CategoryID))
	}

	logger.InfoContext(ctx, "Menu item updated", "menu_item_id", id, "category_id", updated.CategoryID)
	s.revalidate(ctx, entityMenuItem, id, ports.CatalogUpdated, paths...)
	return dto.ActionOK(dto.MenuItemToResponse(updated, category))
}

// DeleteMenuItem succeeds for an absent id and then only the admin view is refreshed
func (s *CatalogActionServiceImpl) DeleteMenuItem(ctx context.Context, id string) *dto.ActionResult {
	if !s.verify(ctx, "deleteMenuItem") {
		return dto.ActionFailed(msgDeleteItemFailed)
	}

	removed, err := s.menuItemRepo.Delete(ctx, id)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to delete menu item", "menu_item_id", id, "error", err)
		return dto.ActionFailed(msgDeleteItemFailed)
	}

	if removed == nil {
		logger.InfoContext(ctx, "Menu item already absent", "menu_item_id", id)
		s.revalidate(ctx, entityMenuItem, id, ports.CatalogDeleted, ports.ViewAdmin)
		return dto.ActionOK(nil)
	}

	logger.InfoContext(ctx, "Menu item deleted", "menu_item_id", id, "category_id", removed.CategoryID)
	s.revalidate(ctx, entityMenuItem, id, ports.CatalogDeleted,
		ports.ViewAdmin, ports.ViewCategory(removed.CategoryID), ports.ViewPromotions)
	return dto.ActionOK(nil)
}

// ========== Helpers ==========

func validateCategoryForm(form *dto.CategoryForm) *dto.ActionResult {
	if form == nil {
		return dto.ActionInvalid(&dto.FormError{Message: "Dados inválidos"})
	}
	if err := form.Validate(); err != nil {
		return dto.ActionInvalid(err)
	}
	return nil
}

func validateMenuItemForm(form *dto.MenuItemForm) *dto.ActionResult {
	if form == nil {
		return dto.ActionInvalid(&dto.FormError{Message: "Dados inválidos"})
	}
	if err := form.Validate(); err != nil {
		return dto.ActionInvalid(err)
	}
	return nil
}

func menuItemFromForm(form *dto.MenuItemForm) *models.MenuItem {
	return &models.MenuItem{
		Name:        form.Name,
		Description: form.Description,
		Price:       form.Price,
		HalfPrice:   form.HalfPrice,
		Image:       form.Image,
		CategoryID:  form.CategoryID,
		Promotion:   models.NewPromotion(form.InPromotion, form.PromotionPrice),
	}
}

// resolveCategory turns a missing category into a validation failure on categoryId
func (s *CatalogActionServiceImpl) resolveCategory(ctx context.Context, id, failure string) (*models.Category, *dto.ActionResult) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load category", "category_id", id, "error", err)
		return nil, dto.ActionFailed(failure)
	}
	if category == nil {
		return nil, dto.ActionInvalid(&dto.FormError{
			Message: "Dados inválidos",
			Fields:  map[string]string{dto.FormCategoryID: msgCategoryNotFound},
		})
	}
	return category, nil
}

func (s *CatalogActionServiceImpl) verify(ctx context.Context, op string) bool {
	if s.health == nil {
		return true
	}
	if err := s.health.Verify(ctx); err != nil {
		logger.ErrorContext(ctx, "Catalog store unavailable", "op", op, "error", err)
		return false
	}
	return true
}

// uniqueSlug slugifies name, suffixing it when another category already owns the slug
func (s *CatalogActionServiceImpl) uniqueSlug(ctx context.Context, name, selfID string) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = "categoria"
	}

	existing, err := s.categoryRepo.GetBySlug(ctx, base)
	if err != nil {
		return "", err
	}
	if existing == nil || existing.ID == selfID {
		return base, nil
	}
	return base + "-" + uuid.NewString()[:8], nil
}

// revalidate drops the cached views and announces the change; failures are only logged
func (s *CatalogActionServiceImpl) revalidate(ctx context.Context, entity, id string, action ports.CatalogAction, paths ...string) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, paths...); err != nil {
			logger.WarnContext(ctx, "View cache invalidation failed", "paths", paths, "error", err)
		}
	}

	if s.events == nil {
		return
	}
	event := &ports.CatalogChangedEvent{
		Entity:   entity,
		EntityID: id,
		Action:   action,
		Paths:    paths,
		At:       time.Now().UTC(),
	}
	if err := s.events.PublishCatalogChanged(ctx, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish catalog change", "entity", entity, "entity_id", id, "error", err)
	}
}
