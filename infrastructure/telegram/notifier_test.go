package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cardapio-digital/domain/models"
)

func sampleOrder() *models.Order {
	return &models.Order{
		ID:    "o-1",
		Total: 4400,
		Items: []models.OrderItem{
			{MenuItemID: "b", ItemName: "Batata", SelectedOption: "half", Quantity: 2, Price: 1200},
			{MenuItemID: "c", ItemName: "Coca <lata>", SelectedOption: "full", Quantity: 1, Price: 2000},
		},
		Customer: models.OrderCustomer{Name: "Ana", Phone: "11999999999", HasAccount: false},
	}
}

func TestFormatOrder(t *testing.T) {
	msg := formatOrder(sampleOrder())

	for _, want := range []string{
		"2x Batata (Meia porção) - R$ 24,00",
		"1x Coca &lt;lata&gt; (Porção inteira) - R$ 20,00",
		"<b>Total:</b> R$ 44,00",
		"Possui conta: Não",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestNotifyOrderPlacedDisabled(t *testing.T) {
	n := NewTelegramNotifier(Config{})
	if err := n.NotifyOrderPlaced(context.Background(), sampleOrder()); err != nil {
		t.Fatalf("disabled notifier should be a no-op: %v", err)
	}
}

func TestNotifyOrderPlacedSends(t *testing.T) {
	var got map[string]interface{}
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewTelegramNotifier(Config{BotToken: "tok", ChatID: "42", APIBase: srv.URL})
	if err := n.NotifyOrderPlaced(context.Background(), sampleOrder()); err != nil {
		t.Fatalf("NotifyOrderPlaced: %v", err)
	}
	if path != "/bottok/sendMessage" {
		t.Fatalf("path = %s", path)
	}
	if got["chat_id"] != "42" || got["parse_mode"] != "HTML" {
		t.Fatalf("payload = %v", got)
	}
}

func TestNotifyOrderPlacedAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	n := NewTelegramNotifier(Config{BotToken: "bad", ChatID: "42", APIBase: srv.URL})
	if err := n.NotifyOrderPlaced(context.Background(), sampleOrder()); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}
