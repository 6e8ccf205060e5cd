package messaging

import (
	"context"

	"cardapio-digital/domain/models"
	"cardapio-digital/domain/ports"
	"cardapio-digital/pkg/logger"
)

// LocalEventPublisher is used when NATS is not configured: catalog changes go
// straight to this instance's broadcaster and orders are only logged.
type LocalEventPublisher struct {
	broadcaster ports.CatalogBroadcaster
}

func NewLocalEventPublisher(broadcaster ports.CatalogBroadcaster) ports.EventPublisher {
	return &LocalEventPublisher{broadcaster: broadcaster}
}

func (p *LocalEventPublisher) PublishCatalogChanged(ctx context.Context, event *ports.CatalogChangedEvent) error {
	if p.broadcaster != nil {
		p.broadcaster.BroadcastCatalogChanged(event)
	}
	return nil
}

func (p *LocalEventPublisher) PublishOrderPlaced(ctx context.Context, order *models.Order) error {
	logger.InfoContext(ctx, "Order placed",
		"order_id", order.ID,
		"items", len(order.Items),
		"total", order.Total.String(),
	)
	return nil
}
