package serviceimpl

import (
	"context"
	"math"

	"cardapio-digital/domain/dto"
	"cardapio-digital/domain/ports"
	"cardapio-digital/domain/repositories"
	"cardapio-digital/domain/services"
	"cardapio-digital/pkg/envelope"
	"cardapio-digital/pkg/logger"
)

type CatalogQueryServiceImpl struct {
	categoryRepo repositories.CategoryRepository
	menuItemRepo repositories.MenuItemRepository
	cache        ports.ViewCache
}

// NewCatalogQueryService builds the read side; cache may be nil when Redis is disabled
func NewCatalogQueryService(
	categoryRepo repositories.CategoryRepository,
	menuItemRepo repositories.MenuItemRepository,
	cache ports.ViewCache,
) services.CatalogQueryService {
	return &CatalogQueryServiceImpl{
		categoryRepo: categoryRepo,
		menuItemRepo: menuItemRepo,
		cache:        cache,
	}
}

func (s *CatalogQueryServiceImpl) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	var cached []dto.CategoryResponse
	if s.fromCache(ctx, ports.ViewHome, &cached) {
		return cached, nil
	}

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list categories", "error", err)
		return nil, err
	}

	resp := dto.CategoriesToResponses(categories)
	s.toCache(ctx, ports.ViewHome, resp)
	return resp, nil
}

func (s *CatalogQueryServiceImpl) GetCategory(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to get category", "category_id", id, "error", err)
		return nil, err
	}
	return dto.CategoryToResponse(category), nil
}

func (s *CatalogQueryServiceImpl) GetCategoryBySlug(ctx context.Context, slug string) (*dto.CategoryResponse, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to get category by slug", "slug", slug, "error", err)
		return nil, err
	}
	return dto.CategoryToResponse(category), nil
}

func (s *CatalogQueryServiceImpl) ListMenuItems(ctx context.Context, categoryID string) (*dto.CategoryMenuResponse, error) {
	key := ports.ViewCategory(categoryID)

	var cached dto.CategoryMenuResponse
	if s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to get category", "category_id", categoryID, "error", err)
		return nil, err
	}
	if category == nil {
		return nil, nil
	}

	items, err := s.menuItemRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list menu items", "category_id", categoryID, "error", err)
		return nil, err
	}

	resp := &dto.CategoryMenuResponse{
		Category: *dto.CategoryToResponse(category),
		Items:    dto.MenuItemsToResponses(items, category),
	}
	s.toCache(ctx, key, resp)
	return resp, nil
}

func (s *CatalogQueryServiceImpl) ListMenuItemsCompressed(ctx context.Context, categoryID string) (*dto.CompressedPayload, error) {
	menu, err := s.ListMenuItems(ctx, categoryID)
	if err != nil || menu == nil {
		return nil, err
	}

	data, err := envelope.Encode(dto.MenuItemsPayload{Items: menu.Items})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to compress menu items", "category_id", categoryID, "error", err)
		return nil, err
	}

	logger.DebugContext(ctx, "Menu items compressed",
		"category_id", categoryID,
		"items", len(menu.Items),
		"bytes", len(data),
	)

	return &dto.CompressedPayload{
		Category: menu.Category,
		Encoding: envelope.Encoding,
		Data:     data,
		SizeKB:   math.Round(float64(len(data))/1024*100) / 100,
	}, nil
}

func (s *CatalogQueryServiceImpl) ListAllMenuItems(ctx context.Context) ([]dto.MenuItemResponse, error) {
	var cached []dto.MenuItemResponse
	if s.fromCache(ctx, ports.ViewAdmin, &cached) {
		return cached, nil
	}

	rows, err := s.menuItemRepo.ListAllWithCategory(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list menu items", "error", err)
		return nil, err
	}

	resp := dto.JoinedItemsToResponses(rows)
	s.toCache(ctx, ports.ViewAdmin, resp)
	return resp, nil
}

// SearchMenuItems filters the cached admin view instead of querying the store again
func (s *CatalogQueryServiceImpl) SearchMenuItems(ctx context.Context, filter dto.MenuItemFilter) ([]dto.MenuItemResponse, error) {
	items, err := s.ListAllMenuItems(ctx)
	if err != nil {
		return nil, err
	}
	return dto.FilterMenuItems(items, filter), nil
}

func (s *CatalogQueryServiceImpl) ListPromotions(ctx context.Context) ([]dto.MenuItemResponse, error) {
	var cached []dto.MenuItemResponse
	if s.fromCache(ctx, ports.ViewPromotions, &cached) {
		return cached, nil
	}

	rows, err := s.menuItemRepo.ListAllWithCategory(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list promotions", "error", err)
		return nil, err
	}

	resp := make([]dto.MenuItemResponse, 0)
	for _, item := range dto.JoinedItemsToResponses(rows) {
		if item.Promotion != nil {
			resp = append(resp, item)
		}
	}
	s.toCache(ctx, ports.ViewPromotions, resp)
	return resp, nil
}

// ========== View cache ==========

// fromCache reports a hit; cache errors degrade to a miss
func (s *CatalogQueryServiceImpl) fromCache(ctx context.Context, key string, dest any) bool {
	if s.cache == nil {
		return false
	}
	found, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		logger.WarnContext(ctx, "View cache read failed", "view", key, "error", err)
		return false
	}
	return found
}

func (s *CatalogQueryServiceImpl) toCache(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value); err != nil {
		logger.WarnContext(ctx, "View cache write failed", "view", key, "error", err)
	}
}
