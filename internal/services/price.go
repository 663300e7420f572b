package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/amanah-wallet/internal/logger"
	"github.com/sbilibin2017/amanah-wallet/internal/metrics"
)

//go:generate mockgen -source=price.go -destination=price_mock.go -package=services

const (
	// QuoteCurrency is the fiat currency every price is expressed in.
	QuoteCurrency = "USD"

	defaultPriceInterval = 5 * time.Minute
)

// PriceSource fetches the current price of an asset.
type PriceSource interface {
	GetPrice(ctx context.Context, asset, currency string) (decimal.Decimal, error)
}

// PriceCache shares the last price between instances.
type PriceCache interface {
	GetPrice(ctx context.Context, asset, currency string) (decimal.Decimal, error)
	SetPrice(ctx context.Context, asset, currency string, price decimal.Decimal) error
}

// PriceQuote is the price held by a PriceTracker.
type PriceQuote struct {
	Asset     string          `json:"asset"`
	Currency  string          `json:"currency"`
	Price     decimal.Decimal `json:"price"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// PriceTracker polls a PriceSource and holds the latest USD price of the
// native asset for the lifetime of the process.
type PriceTracker struct {
	source   PriceSource
	cache    PriceCache
	asset    string
	interval time.Duration

	mu    sync.RWMutex
	quote PriceQuote
	valid bool
}

// NewPriceTracker creates a PriceTracker. cache may be nil.
func NewPriceTracker(source PriceSource, cache PriceCache, asset string, interval time.Duration) *PriceTracker {
	if interval <= 0 {
		interval = defaultPriceInterval
	}
	return &PriceTracker{
		source:   source,
		cache:    cache,
		asset:    asset,
		interval: interval,
	}
}

// Refresh fetches the price once. When the source fails and no price is held
// yet, the cached price is used.
func (t *PriceTracker) Refresh(ctx context.Context) error {
	price, err := t.source.GetPrice(ctx, t.asset, QuoteCurrency)
	if err != nil {
		metrics.PriceFeedFailures.Inc()
		logger.Log.Errorw("failed to fetch price", "asset", t.asset, "error", err)

		if _, ok := t.USDPrice(); !ok && t.cache != nil {
			if cached, cacheErr := t.cache.GetPrice(ctx, t.asset, QuoteCurrency); cacheErr == nil {
				t.set(cached)
				logger.Log.Infow("using cached price", "asset", t.asset, "price", cached)
			}
		}
		return err
	}

	t.set(price)

	if t.cache != nil {
		if err := t.cache.SetPrice(ctx, t.asset, QuoteCurrency, price); err != nil {
			logger.Log.Warnw("failed to cache price", "asset", t.asset, "error", err)
		}
	}
	return nil
}

// Run refreshes immediately and then on every interval until ctx is done.
func (t *PriceTracker) Run(ctx context.Context) error {
	_ = t.Refresh(ctx)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			_ = t.Refresh(ctx)
		}
	}
}

// USDPrice returns the latest price and whether one has been fetched.
func (t *PriceTracker) USDPrice() (decimal.Decimal, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.quote.Price, t.valid
}

// Quote returns the latest quote and whether one has been fetched.
func (t *PriceTracker) Quote() (PriceQuote, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.quote, t.valid
}

func (t *PriceTracker) set(price decimal.Decimal) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.quote = PriceQuote{
		Asset:     t.asset,
		Currency:  QuoteCurrency,
		Price:     price,
		UpdatedAt: time.Now(),
	}
	t.valid = true
}
