package messaging

import (
	"context"

	"cardapio-digital/domain/ports"
	natspkg "cardapio-digital/infrastructure/nats"
	"cardapio-digital/pkg/logger"
)

// NATSCatalogSubscriber implements ports.CatalogSubscriber using NATS Pub/Sub
type NATSCatalogSubscriber struct {
	subscriber *natspkg.Subscriber
}

func NewNATSCatalogSubscriber(subscriber *natspkg.Subscriber) ports.CatalogSubscriber {
	return &NATSCatalogSubscriber{subscriber: subscriber}
}

func (s *NATSCatalogSubscriber) Subscribe(ctx context.Context, handler ports.CatalogHandler) error {
	s.subscriber.OnCatalogChanged(func(msg *natspkg.CatalogChanged) {
		if msg == nil || msg.Entity == "" {
			logger.WarnContext(ctx, "Ignoring catalog change without entity")
			return
		}
		handler(fromCatalogMessage(msg))
	})

	if s.subscriber.IsRunning() {
		return nil
	}
	return s.subscriber.Start()
}

func (s *NATSCatalogSubscriber) Unsubscribe() error {
	return s.subscriber.Stop()
}
