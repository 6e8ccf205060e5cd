package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"cardapio-digital/domain/cart"
	"cardapio-digital/pkg/logger"
)

const cartKeyPrefix = "cart:"

// CartRepository keeps each session's cart under "cart:{session}" with a sliding TTL
type CartRepository struct {
	client *Client
	ttl    time.Duration
}

func NewCartRepository(client *Client, ttl time.Duration) cart.Repository {
	return &CartRepository{client: client, ttl: ttl}
}

func (r *CartRepository) Load(ctx context.Context, sessionID string) (*cart.Cart, error) {
	data, err := r.client.GetBytes(ctx, cartKeyPrefix+sessionID)
	if errors.Is(err, redis.Nil) {
		return cart.New(), nil
	}
	if err != nil {
		return nil, err
	}

	c, err := cart.Unmarshal(data)
	if err != nil {
		logger.WarnContext(ctx, "Discarding malformed cart", "error", err)
	}
	return c, nil
}

func (r *CartRepository) Save(ctx context.Context, sessionID string, c *cart.Cart) error {
	key := cartKeyPrefix + sessionID
	if c == nil || c.IsEmpty() {
		return r.client.Del(ctx, key)
	}
	data, err := cart.Marshal(c)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, r.ttl)
}
