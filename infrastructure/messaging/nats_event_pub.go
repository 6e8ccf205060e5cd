package messaging

import (
	"context"

	"cardapio-digital/domain/models"
	"cardapio-digital/domain/ports"
	natspkg "cardapio-digital/infrastructure/nats"
)

// NATSEventPublisher implements ports.EventPublisher on top of the NATS publisher
type NATSEventPublisher struct {
	publisher  *natspkg.Publisher
	whatsAppTo string
}

func NewNATSEventPublisher(publisher *natspkg.Publisher, whatsAppTo string) ports.EventPublisher {
	return &NATSEventPublisher{publisher: publisher, whatsAppTo: whatsAppTo}
}

func (p *NATSEventPublisher) PublishCatalogChanged(ctx context.Context, event *ports.CatalogChangedEvent) error {
	return p.publisher.PublishCatalogChanged(ctx, toCatalogMessage(event))
}

func (p *NATSEventPublisher) PublishOrderPlaced(ctx context.Context, order *models.Order) error {
	msg := toOrderMessage(order)
	msg.WhatsAppTo = p.whatsAppTo
	return p.publisher.PublishOrderPlaced(ctx, msg)
}

func toCatalogMessage(event *ports.CatalogChangedEvent) *natspkg.CatalogChanged {
	return &natspkg.CatalogChanged{
		Entity:   event.Entity,
		EntityID: event.EntityID,
		Action:   string(event.Action),
		Paths:    event.Paths,
		At:       event.At,
	}
}

func fromCatalogMessage(msg *natspkg.CatalogChanged) *ports.CatalogChangedEvent {
	return &ports.CatalogChangedEvent{
		Entity:   msg.Entity,
		EntityID: msg.EntityID,
		Action:   ports.CatalogAction(msg.Action),
		Paths:    msg.Paths,
		At:       msg.At,
	}
}

func toOrderMessage(order *models.Order) *natspkg.OrderPlaced {
	rows := make([]natspkg.OrderPlacedRow, 0, len(order.Items))
	for _, item := range order.Items {
		rows = append(rows, natspkg.OrderPlacedRow{
			MenuItemID:     item.MenuItemID,
			Name:           item.ItemName,
			SelectedOption: item.SelectedOption,
			Quantity:       item.Quantity,
			UnitPrice:      int64(item.Price),
		})
	}
	return &natspkg.OrderPlaced{
		OrderID: order.ID,
		Status:  string(order.Status),
		Total:   int64(order.Total),
		Customer: natspkg.OrderCustomer{
			Name:       order.Customer.Name,
			Phone:      order.Customer.Phone,
			HasAccount: order.Customer.HasAccount,
		},
		Items:     rows,
		CreatedAt: order.CreatedAt,
	}
}
