package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"cardapio-digital/pkg/logger"
)

type Publisher struct {
	client *Client
}

func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// PublishOrderPlaced stores the order on the ORDERS stream
func (p *Publisher) PublishOrderPlaced(ctx context.Context, msg *OrderPlaced) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}

	ack, err := p.client.js.Publish(ctx, SubjectOrderPlaced, data)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to publish order", "order_id", msg.OrderID, "error", err)
		return fmt.Errorf("failed to publish order: %w", err)
	}

	logger.InfoContext(ctx, "Order published to JetStream",
		"order_id", msg.OrderID,
		"stream", ack.Stream,
		"sequence", ack.Sequence,
	)
	return nil
}

// PublishCatalogChanged is fire-and-forget core pub/sub
func (p *Publisher) PublishCatalogChanged(ctx context.Context, msg *CatalogChanged) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog change: %w", err)
	}
	if err := p.client.conn.Publish(SubjectCatalogChanged, data); err != nil {
		return fmt.Errorf("failed to publish catalog change: %w", err)
	}
	logger.DebugContext(ctx, "Catalog change published", "entity", msg.Entity, "entity_id", msg.EntityID)
	return nil
}
