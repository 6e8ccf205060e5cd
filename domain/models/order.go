package models

import (
	"time"

	"cardapio-digital/pkg/money"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is the hand-off record published when a customer checks out; it is not persisted
type Order struct {
	ID        string        `json:"id"`
	Items     []OrderItem   `json:"items"`
	Total     money.Cents   `json:"total"`
	Status    OrderStatus   `json:"status"`
	Customer  OrderCustomer `json:"customer"`
	CreatedAt time.Time     `json:"createdAt"`
}

type OrderItem struct {
	MenuItemID     string      `json:"menuItemId"`
	ItemName       string      `json:"itemName"`
	SelectedOption string      `json:"selectedOption"`
	Quantity       int         `json:"quantity"`
	Price          money.Cents `json:"price"`
}

type OrderCustomer struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	HasAccount bool   `json:"hasAccount"`
}
