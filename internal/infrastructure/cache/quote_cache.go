// Package cache provides Redis-backed read caches.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	portfolioapp "github.com/fintrack/backend/internal/application/portfolio"
	"github.com/fintrack/backend/internal/domain/portfolio"
)

const quoteKeyPrefix = "quote:"

var _ portfolioapp.QuoteSource = (*RedisQuoteCache)(nil)

// RedisQuoteCache caches quotes from an upstream source with a TTL. Cache
// failures are logged and degrade to the upstream source rather than failing
// the lookup.
type RedisQuoteCache struct {
	client *redis.Client
	source portfolioapp.QuoteSource
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisQuoteCache wraps a quote source with a Redis cache
func NewRedisQuoteCache(client *redis.Client, source portfolioapp.QuoteSource, ttl time.Duration, logger *zap.Logger) *RedisQuoteCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisQuoteCache{
		client: client,
		source: source,
		ttl:    ttl,
		logger: logger,
	}
}

func quoteKey(symbol string) string {
	return quoteKeyPrefix + strings.ToUpper(symbol)
}

// GetQuote returns a cached quote when fresh, otherwise resolves it through
// the upstream source and stores the result
func (c *RedisQuoteCache) GetQuote(ctx context.Context, symbol string) (portfolio.Quote, error) {
	key := quoteKey(symbol)

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var quote portfolio.Quote
		if unmarshalErr := json.Unmarshal(raw, &quote); unmarshalErr == nil {
			return quote, nil
		}
		// Corrupt entry, drop it and fall through to the source
		c.client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("Quote cache read failed", zap.String("symbol", symbol), zap.Error(err))
	}

	quote, err := c.source.GetQuote(ctx, symbol)
	if err != nil {
		return portfolio.Quote{}, err
	}

	if raw, marshalErr := json.Marshal(quote); marshalErr == nil {
		if setErr := c.client.Set(ctx, key, raw, c.ttl).Err(); setErr != nil {
			c.logger.Warn("Quote cache write failed", zap.String("symbol", symbol), zap.Error(setErr))
		}
	}

	return quote, nil
}

// Invalidate removes a symbol from the cache
func (c *RedisQuoteCache) Invalidate(ctx context.Context, symbol string) error {
	return c.client.Del(ctx, quoteKey(symbol)).Err()
}
