package ports

import (
	"context"
	"time"

	"cardapio-digital/domain/models"
)

// ═══════════════════════════════════════════════════════════════════════════════
// Event Publisher Port - catalog changes and placed orders
// ═══════════════════════════════════════════════════════════════════════════════

const (
	SubjectCatalogChanged = "catalog.changed"
	SubjectOrderPlaced    = "orders.placed"
)

type CatalogAction string

const (
	CatalogCreated CatalogAction = "created"
	CatalogUpdated CatalogAction = "updated"
	CatalogDeleted CatalogAction = "deleted"
)

// CatalogChangedEvent - Plain struct, no transport dependency
type CatalogChangedEvent struct {
	Entity   string        `json:"entity"` // category, menu_item
	EntityID string        `json:"entityId"`
	Action   CatalogAction `json:"action"`
	Paths    []string      `json:"paths"`
	At       time.Time     `json:"at"`
}

type EventPublisher interface {
	PublishCatalogChanged(ctx context.Context, event *CatalogChangedEvent) error
	PublishOrderPlaced(ctx context.Context, order *models.Order) error
}

// CatalogHandler receives catalog changes published by any API instance
type CatalogHandler func(event *CatalogChangedEvent)

type CatalogSubscriber interface {
	Subscribe(ctx context.Context, handler CatalogHandler) error
	Unsubscribe() error
}

// CatalogBroadcaster pushes catalog changes to connected storefront clients
type CatalogBroadcaster interface {
	BroadcastCatalogChanged(event *CatalogChangedEvent)
}
