package ports

import (
	"context"

	"cardapio-digital/domain/models"
)

// OrderNotifier alerts the staff about a new order (Telegram, etc.)
type OrderNotifier interface {
	NotifyOrderPlaced(ctx context.Context, order *models.Order) error
}
