package services

import (
	"context"

	"cardapio-digital/domain/dto"
)

// CheckoutService hands the cart off as a pre-filled WhatsApp message
type CheckoutService interface {
	Checkout(ctx context.Context, sessionID string, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
}
