package facades

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/amanah-wallet/internal/logger"
)

// DefaultPriceFeedURL is the public CoinGecko API.
const DefaultPriceFeedURL = "https://api.coingecko.com/api/v3"

// ErrNoPrice is returned when the feed has no price for the requested pair.
var ErrNoPrice = errors.New("price not available")

// PriceHTTPFacade reads prices from a CoinGecko compatible simple price API.
type PriceHTTPFacade struct {
	baseURL string
	client  *http.Client
}

// NewPriceHTTPFacade creates a facade for baseURL, e.g. DefaultPriceFeedURL.
func NewPriceHTTPFacade(baseURL string, timeout time.Duration) *PriceHTTPFacade {
	if baseURL == "" {
		baseURL = DefaultPriceFeedURL
	}
	return &PriceHTTPFacade{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// GetPrice fetches the price of asset (a CoinGecko coin id) in currency.
func (f *PriceHTTPFacade) GetPrice(ctx context.Context, asset, currency string) (decimal.Decimal, error) {
	vs := strings.ToLower(currency)

	q := url.Values{}
	q.Set("ids", asset)
	q.Set("vs_currencies", vs)
	endpoint := f.baseURL + "/simple/price?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		logger.Log.Errorw("failed to fetch price", "asset", asset, "currency", currency, "error", err)
		return decimal.Zero, fmt.Errorf("fetch price: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Log.Errorw("price feed returned an error", "asset", asset, "status", resp.StatusCode)
		return decimal.Zero, fmt.Errorf("price feed returned status %d", resp.StatusCode)
	}

	var body map[string]map[string]json.Number
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("decode price: %w", err)
	}

	raw, ok := body[asset][vs]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s/%s", ErrNoPrice, asset, currency)
	}

	price, err := decimal.NewFromString(raw.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse price %q: %w", raw, err)
	}

	logger.Log.Infow("price fetched", "asset", asset, "currency", currency, "price", price)
	return price, nil
}
