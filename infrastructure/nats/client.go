package nats

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"cardapio-digital/pkg/logger"
)

// Client wraps NATS connection with JetStream context
type Client struct {
	conn         *nats.Conn
	js           jetstream.JetStream
	ordersStream jetstream.Stream
}

type ClientConfig struct {
	URL string // nats://localhost:4222
}

func NewClient(cfg ClientConfig) (*Client, error) {
	nc, err := nats.Connect(cfg.URL,
		nats.Name("cardapio-api"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	client := &Client{conn: nc, js: js}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.setupStreams(ctx); err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to setup stream: %w", err)
	}

	logger.Info("NATS client initialized", "url", cfg.URL, "stream", OrdersStreamName)
	return client, nil
}

func (c *Client) setupStreams(ctx context.Context) error {
	stream, err := c.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:        OrdersStreamName,
		Subjects:    []string{SubjectOrders},
		Storage:     jetstream.FileStorage,
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      7 * 24 * time.Hour,
		Replicas:    1,
		Description: "Placed orders handed off to WhatsApp",
	})
	if err != nil {
		return fmt.Errorf("failed to create/update orders stream: %w", err)
	}
	c.ordersStream = stream
	logger.Info("JetStream stream ready", "name", OrdersStreamName)
	return nil
}

func (c *Client) Conn() *nats.Conn {
	return c.conn
}

func (c *Client) JetStream() jetstream.JetStream {
	return c.js
}

// ═══════════════════════════════════════════════════════════════════════════════
// Lifecycle
// ═══════════════════════════════════════════════════════════════════════════════

func (c *Client) Close() error {
	if c.conn != nil {
		if err := c.conn.Drain(); err != nil {
			c.conn.Close()
		}
		logger.Info("NATS connection closed")
	}
	return nil
}

func (c *Client) Ping() error {
	return c.conn.FlushTimeout(5 * time.Second)
}

func (c *Client) IsConnected() bool {
	return c.conn != nil && c.conn.IsConnected()
}
