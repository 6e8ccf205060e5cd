package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cardapio-digital/domain/cart"
	"cardapio-digital/domain/models"
	"cardapio-digital/domain/ports"
	"cardapio-digital/pkg/logger"
	"cardapio-digital/pkg/money"
)

const defaultAPIBase = "https://api.telegram.org"

type Config struct {
	BotToken string
	ChatID   string
	APIBase  string // overridden in tests
}

// TelegramNotifier alerts the staff chat when an order is handed off
type TelegramNotifier struct {
	cfg        Config
	httpClient *http.Client
}

func NewTelegramNotifier(cfg Config) ports.OrderNotifier {
	if cfg.APIBase == "" {
		cfg.APIBase = defaultAPIBase
	}
	return &TelegramNotifier{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (n *TelegramNotifier) IsEnabled() bool {
	return n.cfg.BotToken != "" && n.cfg.ChatID != ""
}

func (n *TelegramNotifier) NotifyOrderPlaced(ctx context.Context, order *models.Order) error {
	if !n.IsEnabled() {
		logger.DebugContext(ctx, "Telegram notification disabled, skipping")
		return nil
	}
	return n.sendMessage(ctx, formatOrder(order))
}

func (n *TelegramNotifier) sendMessage(ctx context.Context, message string) error {
	url := fmt.Sprintf("%s/bot%s/sendMessage", strings.TrimSuffix(n.cfg.APIBase, "/"), n.cfg.BotToken)

	payload := map[string]interface{}{
		"chat_id":    n.cfg.ChatID,
		"text":       message,
		"parse_mode": "HTML",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to send Telegram message", "error", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.ErrorContext(ctx, "Telegram API error", "status", resp.StatusCode)
		return fmt.Errorf("telegram API returned status %d", resp.StatusCode)
	}

	logger.InfoContext(ctx, "Telegram notification sent")
	return nil
}

func formatOrder(order *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🛎️ <b>Novo pedido</b> <code>%s</code>\n\n", escapeHTML(order.ID))

	for _, item := range order.Items {
		fmt.Fprintf(&b, "%dx %s (%s) - %s\n",
			item.Quantity,
			escapeHTML(item.ItemName),
			cart.Option(item.SelectedOption).Label(),
			money.FormatBRL(item.Price*money.Cents(item.Quantity)),
		)
	}

	fmt.Fprintf(&b, "\n<b>Total:</b> %s\n", money.FormatBRL(order.Total))
	fmt.Fprintf(&b, "👤 %s\n📞 %s\n", escapeHTML(order.Customer.Name), escapeHTML(order.Customer.Phone))
	if order.Customer.HasAccount {
		b.WriteString("Possui conta: Sim")
	} else {
		b.WriteString("Possui conta: Não")
	}
	return b.String()
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// escapeHTML escapes the characters Telegram's HTML parse mode reserves
func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
