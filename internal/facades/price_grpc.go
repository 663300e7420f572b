package facades

import (
	"context"
	"fmt"

	pb "github.com/sbilibin2017/proto-exchange/exchange"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/amanah-wallet/internal/logger"
)

// ExchangeRatesGRPCFacade reads prices from the exchanger service over gRPC.
type ExchangeRatesGRPCFacade struct {
	client pb.ExchangeServiceClient
}

// NewExchangeRatesGRPCFacade creates a new facade with a gRPC client.
func NewExchangeRatesGRPCFacade(client pb.ExchangeServiceClient) *ExchangeRatesGRPCFacade {
	return &ExchangeRatesGRPCFacade{client: client}
}

// GetPrice fetches the rate of asset expressed in currency.
func (f *ExchangeRatesGRPCFacade) GetPrice(ctx context.Context, asset, currency string) (decimal.Decimal, error) {
	req := &pb.CurrencyRequest{
		FromCurrency: asset,
		ToCurrency:   currency,
	}

	resp, err := f.client.GetExchangeRateForCurrency(ctx, req)
	if err != nil {
		logger.Log.Errorw("failed to fetch exchange rate via gRPC",
			"from", asset, "to", currency, "error", err)
		return decimal.Zero, err
	}
	if resp.Rate <= 0 {
		return decimal.Zero, fmt.Errorf("%w: %s/%s", ErrNoPrice, asset, currency)
	}

	return decimal.NewFromFloat32(resp.Rate), nil
}
