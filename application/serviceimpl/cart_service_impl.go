package serviceimpl

import (
	"context"

	"cardapio-digital/domain/cart"
	"cardapio-digital/domain/dto"
	"cardapio-digital/domain/repositories"
	"cardapio-digital/domain/services"
	"cardapio-digital/pkg/logger"
)

type CartServiceImpl struct {
	carts        cart.Repository
	categoryRepo repositories.CategoryRepository
	menuItemRepo repositories.MenuItemRepository
	locks        *SessionLocks
}

// NewCartService shares locks with the checkout service so a hand-off never races an add
func NewCartService(
	carts cart.Repository,
	categoryRepo repositories.CategoryRepository,
	menuItemRepo repositories.MenuItemRepository,
	locks *SessionLocks,
) services.CartService {
	if locks == nil {
		locks = NewSessionLocks()
	}
	return &CartServiceImpl{
		carts:        carts,
		categoryRepo: categoryRepo,
		menuItemRepo: menuItemRepo,
		locks:        locks,
	}
}

func (s *CartServiceImpl) Get(ctx context.Context, sessionID string) (*dto.CartResponse, error) {
	c, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load cart", "error", err)
		return nil, err
	}
	return dto.CartToResponse(c), nil
}

func (s *CartServiceImpl) AddItem(ctx context.Context, sessionID string, req *dto.AddCartItemRequest) (*dto.CartResponse, error) {
	option, err := cart.ParseOption(req.SelectedOption)
	if err != nil {
		return nil, err
	}

	item, err := s.menuItemRepo.GetByID(ctx, req.MenuItemID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load menu item", "menu_item_id", req.MenuItemID, "error", err)
		return nil, err
	}
	if item == nil {
		return nil, services.ErrMenuItemNotFound
	}

	category, err := s.categoryRepo.GetByID(ctx, item.CategoryID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load category", "category_id", item.CategoryID, "error", err)
		return nil, err
	}
	// an item whose category is gone is not on the menu anymore
	if category == nil {
		return nil, services.ErrMenuItemNotFound
	}

	if option == cart.OptionHalf && (!category.IsPortions() || item.HalfPrice <= 0) {
		return nil, services.ErrHalfNotSelectable
	}

	return s.mutate(ctx, sessionID, func(c *cart.Cart) error {
		line := c.AddItem(cart.ProductFromMenuItem(item), category.Name, option)
		logger.InfoContext(ctx, "Cart item added", "unique_id", line.UniqueID, "quantity", line.Quantity)
		return nil
	})
}

func (s *CartServiceImpl) UpdateQuantity(ctx context.Context, sessionID, uniqueID string, quantity int) (*dto.CartResponse, error) {
	return s.mutate(ctx, sessionID, func(c *cart.Cart) error {
		if !c.UpdateQuantity(uniqueID, quantity) {
			return services.ErrCartLineNotFound
		}
		return nil
	})
}

func (s *CartServiceImpl) RemoveItem(ctx context.Context, sessionID, uniqueID string) (*dto.CartResponse, error) {
	return s.mutate(ctx, sessionID, func(c *cart.Cart) error {
		if !c.RemoveItem(uniqueID) {
			return services.ErrCartLineNotFound
		}
		return nil
	})
}

func (s *CartServiceImpl) Clear(ctx context.Context, sessionID string) error {
	_, err := s.mutate(ctx, sessionID, func(c *cart.Cart) error {
		c.Clear()
		return nil
	})
	return err
}

// mutate serializes load → change → save per session within this process
func (s *CartServiceImpl) mutate(ctx context.Context, sessionID string, change func(*cart.Cart) error) (*dto.CartResponse, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	c, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load cart", "error", err)
		return nil, err
	}
	if err := change(c); err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, sessionID, c); err != nil {
		logger.ErrorContext(ctx, "Failed to save cart", "error", err)
		return nil, err
	}
	return dto.CartToResponse(c), nil
}
