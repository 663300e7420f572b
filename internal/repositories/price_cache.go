package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/amanah-wallet/internal/logger"
)

// ErrPriceNotCached is returned when no price is stored for the pair.
var ErrPriceNotCached = errors.New("price not found in cache")

// PriceCacheRepository mirrors the latest fiat price in Redis so that
// freshly started instances can serve it before their first feed refresh.
type PriceCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for cached prices
}

// NewPriceCacheRepository creates a new repository instance with the given TTL
func NewPriceCacheRepository(client *redis.Client, expiration time.Duration) *PriceCacheRepository {
	return &PriceCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func priceKey(asset, currency string) string {
	return fmt.Sprintf("price:%s:%s", asset, currency)
}

// GetPrice fetches the cached price of asset in currency
func (r *PriceCacheRepository) GetPrice(ctx context.Context, asset, currency string) (decimal.Decimal, error) {
	key := priceKey(asset, currency)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		logger.Log.Infow(
			"key", key,
			"result", val,
			"error", err,
		)
		if errors.Is(err, redis.Nil) {
			return decimal.Zero, ErrPriceNotCached
		}
		return decimal.Zero, err
	}

	price, err := decimal.NewFromString(val)

	logger.Log.Infow(
		"key", key,
		"value", val,
		"result", price,
		"error", err,
	)

	return price, err
}

// SetPrice caches a price in Redis with expiration
func (r *PriceCacheRepository) SetPrice(ctx context.Context, asset, currency string, price decimal.Decimal) error {
	key := priceKey(asset, currency)
	err := r.client.Set(ctx, key, price.String(), r.exp).Err()

	logger.Log.Infow(
		"key", key,
		"price", price,
		"result", "ok",
		"error", err,
	)

	return err
}
