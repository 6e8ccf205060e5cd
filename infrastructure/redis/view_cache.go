package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"cardapio-digital/domain/ports"
	"cardapio-digital/pkg/logger"
)

const viewKeyPrefix = "view:"

// ViewCache stores rendered catalog views as JSON under "view:{path}"
type ViewCache struct {
	client *Client
	ttl    time.Duration
}

var _ ports.ViewCache = (*ViewCache)(nil)

func NewViewCache(client *Client, ttl time.Duration) *ViewCache {
	return &ViewCache{client: client, ttl: ttl}
}

func (v *ViewCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	err := v.client.GetJSON(ctx, viewKeyPrefix+key, dest)
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (v *ViewCache) Set(ctx context.Context, key string, value any) error {
	return v.client.SetJSON(ctx, viewKeyPrefix+key, value, v.ttl)
}

func (v *ViewCache) Invalidate(ctx context.Context, keys ...string) error {
	prefixed := make([]string, 0, len(keys))
	for _, k := range keys {
		prefixed = append(prefixed, viewKeyPrefix+k)
	}
	if err := v.client.Del(ctx, prefixed...); err != nil {
		return err
	}
	logger.DebugContext(ctx, "Views invalidated", "keys", keys)
	return nil
}

// InvalidateAll drops every cached view
func (v *ViewCache) InvalidateAll(ctx context.Context) (int64, error) {
	return v.client.ScanAndDelete(ctx, viewKeyPrefix+"*")
}
