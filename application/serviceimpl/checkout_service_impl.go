package serviceimpl

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"cardapio-digital/domain/cart"
	"cardapio-digital/domain/dto"
	"cardapio-digital/domain/models"
	"cardapio-digital/domain/ports"
	"cardapio-digital/domain/services"
	"cardapio-digital/pkg/logger"
	"cardapio-digital/pkg/money"
)

const whatsAppBaseURL = "https://wa.me/"

type CheckoutServiceImpl struct {
	carts          cart.Repository
	locks          *SessionLocks
	events         ports.EventPublisher
	notifier       ports.OrderNotifier
	whatsAppNumber string
}

// NewCheckoutService builds the hand-off; events and notifier may be nil
func NewCheckoutService(
	carts cart.Repository,
	locks *SessionLocks,
	events ports.EventPublisher,
	notifier ports.OrderNotifier,
	whatsAppNumber string,
) services.CheckoutService {
	if locks == nil {
		locks = NewSessionLocks()
	}
	return &CheckoutServiceImpl{
		carts:          carts,
		locks:          locks,
		events:         events,
		notifier:       notifier,
		whatsAppNumber: digitsOnly(whatsAppNumber),
	}
}

func (s *CheckoutServiceImpl) Checkout(ctx context.Context, sessionID string, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	order, err := s.takeOrder(ctx, sessionID, req)
	if err != nil {
		return nil, err
	}
	message := buildOrderMessage(order)
	link := whatsAppBaseURL + s.whatsAppNumber + "?text=" + encodeText(message)

	if s.events != nil {
		if err := s.events.PublishOrderPlaced(ctx, order); err != nil {
			logger.WarnContext(ctx, "Failed to publish order", "order_id", order.ID, "error", err)
		}
	}
	if s.notifier != nil {
		if err := s.notifier.NotifyOrderPlaced(ctx, order); err != nil {
			logger.WarnContext(ctx, "Failed to notify staff", "order_id", order.ID, "error", err)
		}
	}

	logger.InfoContext(ctx, "Order handed off",
		"order_id", order.ID,
		"items", len(order.Items),
		"total", order.Total.String(),
	)

	return &dto.CheckoutResponse{
		OrderID: order.ID,
		URL:     link,
		Message: message,
		Total:   order.Total.Amount(),
	}, nil
}

// takeOrder builds the order and empties the cart under the session lock
func (s *CheckoutServiceImpl) takeOrder(ctx context.Context, sessionID string, req *dto.CheckoutRequest) (*models.Order, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	c, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load cart", "error", err)
		return nil, err
	}
	if c.IsEmpty() {
		return nil, services.ErrEmptyCart
	}

	order := buildOrder(c, req)
	c.Clear()
	if err := s.carts.Save(ctx, sessionID, c); err != nil {
		logger.WarnContext(ctx, "Failed to clear cart after checkout", "order_id", order.ID, "error", err)
	}
	return order, nil
}

func buildOrder(c *cart.Cart, req *dto.CheckoutRequest) *models.Order {
	items := make([]models.OrderItem, 0, len(c.Items))
	for _, line := range c.Items {
		items = append(items, models.OrderItem{
			MenuItemID:     line.ID,
			ItemName:       line.Name,
			SelectedOption: string(line.SelectedOption),
			Quantity:       line.Quantity,
			Price:          cart.UnitPrice(line),
		})
	}

	return &models.Order{
		ID:     uuid.NewString(),
		Items:  items,
		Total:  c.Total(),
		Status: models.OrderStatusPending,
		Customer: models.OrderCustomer{
			Name:       strings.TrimSpace(req.CustomerName),
			Phone:      strings.TrimSpace(req.CustomerPhone),
			HasAccount: req.HasAccount != nil && *req.HasAccount,
		},
		CreatedAt: time.Now().UTC(),
	}
}

func buildOrderMessage(order *models.Order) string {
	var b strings.Builder
	b.WriteString("Olá! Gostaria de fazer um pedido:\n\n")

	for _, item := range order.Items {
		fmt.Fprintf(&b, "%dx %s (%s) - %s\n",
			item.Quantity,
			item.ItemName,
			cart.Option(item.SelectedOption).Label(),
			money.FormatBRL(item.Price*money.Cents(item.Quantity)),
		)
	}

	fmt.Fprintf(&b, "\nTotal: %s\n\n", money.FormatBRL(order.Total))
	fmt.Fprintf(&b, "Nome: %s\n", order.Customer.Name)
	fmt.Fprintf(&b, "Telefone: %s\n", order.Customer.Phone)
	if order.Customer.HasAccount {
		b.WriteString("Possui conta: Sim")
	} else {
		b.WriteString("Possui conta: Não")
	}
	return b.String()
}

// encodeText query-escapes s with %20 for spaces
func encodeText(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
