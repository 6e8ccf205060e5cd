package services

import (
	"context"
	"errors"

	"cardapio-digital/domain/dto"
)

var (
	ErrMenuItemNotFound   = errors.New("menu item not found")
	ErrCartLineNotFound   = errors.New("cart line not found")
	ErrHalfNotSelectable  = errors.New("half portion is only available for portions")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type CartService interface {
	Get(ctx context.Context, sessionID string) (*dto.CartResponse, error)
	// AddItem resolves prices from the catalog, never from the client
	AddItem(ctx context.Context, sessionID string, req *dto.AddCartItemRequest) (*dto.CartResponse, error)
	UpdateQuantity(ctx context.Context, sessionID, uniqueID string, quantity int) (*dto.CartResponse, error)
	RemoveItem(ctx context.Context, sessionID, uniqueID string) (*dto.CartResponse, error)
	Clear(ctx context.Context, sessionID string) error
}
