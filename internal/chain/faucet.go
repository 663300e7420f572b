package chain

import (
	"context"

	"github.com/sbilibin2017/amanah-wallet/internal/logger"
)

// LogFaucet stands in for a test-network faucet. It records the request and
// always reports success.
type LogFaucet struct{}

// Request asks the faucet to fund address.
func (LogFaucet) Request(ctx context.Context, address string) error {
	logger.Log.Infow("requesting test funds from faucet", "address", address)
	return nil
}
