package dto

import "cardapio-digital/pkg/money"

type CheckoutRequest struct {
	CustomerName  string `json:"customerName" validate:"required,max=100"`
	CustomerPhone string `json:"customerPhone" validate:"required,min=8,max=20"`
	HasAccount    *bool  `json:"hasAccount" validate:"required"`
}

type CheckoutResponse struct {
	OrderID string       `json:"orderId"`
	URL     string       `json:"url"`
	Message string       `json:"message"`
	Total   money.Amount `json:"total"`
}
