package nats

import "time"

// Stream and subject names
const (
	OrdersStreamName = "ORDERS"
	SubjectOrders    = "orders.>"

	// JetStream, kept for downstream consumers (kitchen display, reports)
	SubjectOrderPlaced = "orders.placed"

	// Core pub/sub, fan-out to every API instance
	SubjectCatalogChanged = "catalog.changed"
)

// ═══════════════════════════════════════════════════════════════════════════════
// CatalogChanged - API → API instances (Pub/Sub)
// ═══════════════════════════════════════════════════════════════════════════════
type CatalogChanged struct {
	Entity   string    `json:"entity"`
	EntityID string    `json:"entity_id"`
	Action   string    `json:"action"`
	Paths    []string  `json:"paths"`
	At       time.Time `json:"at"`
}

// ═══════════════════════════════════════════════════════════════════════════════
// OrderPlaced - API → consumers (via JetStream)
// ═══════════════════════════════════════════════════════════════════════════════
type OrderPlaced struct {
	OrderID    string           `json:"order_id"`
	Status     string           `json:"status"`
	Total      int64            `json:"total_cents"`
	Customer   OrderCustomer    `json:"customer"`
	Items      []OrderPlacedRow `json:"items"`
	CreatedAt  time.Time        `json:"created_at"`
	WhatsAppTo string           `json:"whatsapp_to,omitempty"`
}

type OrderCustomer struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	HasAccount bool   `json:"has_account"`
}

type OrderPlacedRow struct {
	MenuItemID     string `json:"menu_item_id"`
	Name           string `json:"name"`
	SelectedOption string `json:"selected_option"`
	Quantity       int    `json:"quantity"`
	UnitPrice      int64  `json:"unit_price_cents"`
}
