package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
)

// NewRedis conecta e testa o Redis. URL vazia devolve (nil, nil): o cache e o
// pub/sub viram no-op.
func NewRedis(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, nil
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

const (
	KeyPublicServices = "catalog:public:services"
	KeyPublicBarbers  = "catalog:public:barbers"
)

// Catalog guarda as listagens públicas do catálogo. Um Catalog sem cliente
// sempre erra o cache, então o handler cai no banco.
type Catalog struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCatalog(rdb *redis.Client, ttl time.Duration) *Catalog {
	return &Catalog{rdb: rdb, ttl: ttl}
}

func (c *Catalog) Get(ctx context.Context, key string, dst any) bool {
	if c == nil || c.rdb == nil {
		return false
	}

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.WarnContext(ctx, "catalog cache get failed", "key", key, "err", err)
		}
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

func (c *Catalog) Set(ctx context.Context, key string, value any) {
	if c == nil || c.rdb == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		slog.WarnContext(ctx, "catalog cache set failed", "key", key, "err", err)
	}
}

// Invalidate é chamado depois de qualquer escrita no catálogo.
func (c *Catalog) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.rdb == nil || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		slog.WarnContext(ctx, "catalog cache invalidate failed", "err", err)
	}
}
