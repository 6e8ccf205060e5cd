package websocket

import (
	"context"
	"sync"

	"cardapio-digital/domain/ports"
	"cardapio-digital/pkg/logger"
)

// CatalogRelay forwards catalog changes received from messaging to the hub,
// so every API instance notifies its own websocket clients
type CatalogRelay struct {
	subscriber ports.CatalogSubscriber
	hub        ports.CatalogBroadcaster
	running    bool
	runningMu  sync.Mutex
}

func NewCatalogRelay(subscriber ports.CatalogSubscriber, hub ports.CatalogBroadcaster) *CatalogRelay {
	return &CatalogRelay{subscriber: subscriber, hub: hub}
}

func (r *CatalogRelay) Start(ctx context.Context) error {
	r.runningMu.Lock()
	defer r.runningMu.Unlock()
	if r.running {
		return nil
	}

	if err := r.subscriber.Subscribe(ctx, r.hub.BroadcastCatalogChanged); err != nil {
		return err
	}
	r.running = true

	logger.Info("Catalog relay started")
	return nil
}

func (r *CatalogRelay) Stop() error {
	r.runningMu.Lock()
	defer r.runningMu.Unlock()
	if !r.running {
		return nil
	}
	r.running = false
	return r.subscriber.Unsubscribe()
}
