package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sbilibin2017/amanah-wallet/internal/logger"
	"github.com/sbilibin2017/amanah-wallet/internal/metrics"
	"github.com/sbilibin2017/amanah-wallet/internal/models"
)

//go:generate mockgen -source=poller.go -destination=poller_mock.go -package=services

const defaultPollInterval = 30 * time.Second

// WalletLister lists every stored wallet.
type WalletLister interface {
	List(ctx context.Context) ([]models.WalletDB, error)
}

// BalancePoller keeps cached wallet balances in line with the chain.
type BalancePoller struct {
	wallets  WalletLister
	balances BalanceWriter
	chain    BalanceReader
	notifier Notifier
	interval time.Duration
}

// NewBalancePoller creates a BalancePoller. notifier may be nil.
func NewBalancePoller(wallets WalletLister, balances BalanceWriter, chain BalanceReader, notifier Notifier, interval time.Duration) *BalancePoller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &BalancePoller{
		wallets:  wallets,
		balances: balances,
		chain:    chain,
		notifier: notifier,
		interval: interval,
	}
}

// Run polls on every interval until ctx is done.
func (p *BalancePoller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			if err := p.PollOnce(ctx); err != nil {
				logger.Log.Errorw("balance poll finished with errors", "error", err)
			}
		}
	}
}

// PollOnce re-reads every wallet balance. A failing wallet is logged and
// skipped; the joined failures are returned after all wallets were visited.
func (p *BalancePoller) PollOnce(ctx context.Context) error {
	started := time.Now()
	defer func() {
		metrics.BalancePollDuration.Observe(time.Since(started).Seconds())
	}()

	wallets, err := p.wallets.List(ctx)
	if err != nil {
		return fmt.Errorf("list wallets: %w", err)
	}

	var errs []error
	for _, w := range wallets {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		if err := p.pollWallet(ctx, w); err != nil {
			metrics.BalancePollFailures.Inc()
			logger.Log.Errorw("failed to poll wallet balance", "walletID", w.WalletID, "address", w.Address, "error", err)
			errs = append(errs, fmt.Errorf("wallet %s: %w", w.WalletID, err))
		}
	}

	return errors.Join(errs...)
}

func (p *BalancePoller) pollWallet(ctx context.Context, w models.WalletDB) error {
	balance, err := p.chain.BalanceOf(ctx, w.Address)
	if err != nil {
		return err
	}
	if balance.Equal(w.Balance) {
		return nil
	}

	if err := p.balances.UpdateBalance(ctx, w.WalletID, balance); err != nil {
		return err
	}
	metrics.BalanceUpdates.Inc()

	if p.notifier != nil {
		p.notifier.Notify(w.UserID, models.NewBalanceUpdate(w.WalletID, balance))
	}
	return nil
}
