package facades

import (
	"context"
	"errors"
	"testing"

	pb "github.com/sbilibin2017/proto-exchange/exchange"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc"
)

// --- Fake gRPC client ---
type fakeExchangeClient struct {
	rateForCurrency float32
	err             error
	lastReq         *pb.CurrencyRequest
}

func (f *fakeExchangeClient) GetExchangeRates(ctx context.Context, _ *pb.Empty, opts ...grpc.CallOption) (*pb.ExchangeRatesResponse, error) {
	return nil, errors.New("not used")
}

func (f *fakeExchangeClient) GetExchangeRateForCurrency(ctx context.Context, req *pb.CurrencyRequest, opts ...grpc.CallOption) (*pb.ExchangeRateResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &pb.ExchangeRateResponse{FromCurrency: req.FromCurrency, ToCurrency: req.ToCurrency, Rate: f.rateForCurrency}, nil
}

// --- Tests ---
func TestExchangeRatesGRPCFacade_GetPrice(t *testing.T) {
	client := &fakeExchangeClient{rateForCurrency: 27.5}
	facade := NewExchangeRatesGRPCFacade(client)

	price, err := facade.GetPrice(context.Background(), "AVAX", "USD")
	assert.NoError(t, err)
	assert.Equal(t, "27.5", price.String())
	assert.Equal(t, "AVAX", client.lastReq.FromCurrency)
	assert.Equal(t, "USD", client.lastReq.ToCurrency)
}

func TestExchangeRatesGRPCFacade_GetPrice_Error(t *testing.T) {
	client := &fakeExchangeClient{err: errors.New("grpc error")}
	facade := NewExchangeRatesGRPCFacade(client)

	price, err := facade.GetPrice(context.Background(), "AVAX", "USD")
	assert.Error(t, err)
	assert.True(t, price.IsZero())
}

func TestExchangeRatesGRPCFacade_GetPrice_ZeroRate(t *testing.T) {
	facade := NewExchangeRatesGRPCFacade(&fakeExchangeClient{})

	_, err := facade.GetPrice(context.Background(), "AVAX", "USD")
	assert.ErrorIs(t, err, ErrNoPrice)
}
