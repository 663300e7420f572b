package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/amanah-wallet/internal/chain"
	"github.com/sbilibin2017/amanah-wallet/internal/logger"
	"github.com/sbilibin2017/amanah-wallet/internal/metrics"
	"github.com/sbilibin2017/amanah-wallet/internal/models"
)

//go:generate mockgen -source=dispatcher.go -destination=dispatcher_mock.go -package=services

const (
	defaultConfirmations       = 2
	defaultConfirmationTimeout = 30 * time.Second
)

var (
	// ErrInsufficientFunds is returned when the source wallet cannot cover the transfer.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrConfirmationTimeout is returned when a broadcast transaction is not confirmed in time.
	ErrConfirmationTimeout = errors.New("transaction confirmation timeout")
)

// InsufficientFundsError carries the breakdown of a rejected transfer.
type InsufficientFundsError struct {
	Amount           decimal.Decimal
	EstimatedGasFees decimal.Decimal
	TotalRequired    decimal.Decimal
	CurrentBalance   decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: required %s, balance %s", e.TotalRequired, e.CurrentBalance)
}

func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// ConfirmationTimeoutError reports a broadcast transaction whose outcome is unknown.
type ConfirmationTimeoutError struct {
	TxHash string
}

func (e *ConfirmationTimeoutError) Error() string {
	return fmt.Sprintf("transaction %s not confirmed in time", e.TxHash)
}

func (e *ConfirmationTimeoutError) Is(target error) bool {
	return target == ErrConfirmationTimeout
}

// ChainTransactor is the chain client surface used for outbound transfers.
type ChainTransactor interface {
	BalanceOf(ctx context.Context, address string) (decimal.Decimal, error)
	EstimateTransfer(ctx context.Context, from, to string, amount decimal.Decimal) (*chain.FeeEstimate, error)
	SendTransfer(ctx context.Context, privateKeyHex, to string, amount decimal.Decimal, fee *chain.FeeEstimate) (string, error)
	WaitForConfirmations(ctx context.Context, txHash string, confirmations uint64) (*chain.Receipt, error)
}

// TxRunner runs fn inside one store transaction.
type TxRunner interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// BalanceWriter persists cached wallet balances.
type BalanceWriter interface {
	UpdateBalance(ctx context.Context, walletID uuid.UUID, balance decimal.Decimal) error
}

// TransactionWriter persists transaction records.
type TransactionWriter interface {
	Save(ctx context.Context, txn *models.TransactionDB) error
}

// Notifier pushes a message to a user's live connection, if any.
type Notifier interface {
	Notify(userID uuid.UUID, msg any) bool
}

// Dispatcher broadcasts transfers, waits for their confirmation and records
// the outcome. Transfer and Zakat payments share one Dispatcher so that both
// are serialised on the same per-wallet locks.
type Dispatcher struct {
	chain    ChainTransactor
	tx       TxRunner
	balances BalanceWriter
	txns     TransactionWriter
	notifier Notifier
	events   KafkaWriter
	locks    *walletLocks

	confirmations uint64
	timeout       time.Duration
}

// DispatcherOpt configures a Dispatcher.
type DispatcherOpt func(*Dispatcher)

// WithConfirmations sets the number of blocks a transfer must be buried under.
func WithConfirmations(n uint64) DispatcherOpt {
	return func(d *Dispatcher) {
		if n > 0 {
			d.confirmations = n
		}
	}
}

// WithConfirmationTimeout bounds the confirmation wait.
func WithConfirmationTimeout(timeout time.Duration) DispatcherOpt {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

// NewDispatcher creates a Dispatcher. notifier and events may be nil.
func NewDispatcher(
	chainClient ChainTransactor,
	tx TxRunner,
	balances BalanceWriter,
	txns TransactionWriter,
	notifier Notifier,
	events KafkaWriter,
	opts ...DispatcherOpt,
) *Dispatcher {
	d := &Dispatcher{
		chain:         chainClient,
		tx:            tx,
		balances:      balances,
		txns:          txns,
		notifier:      notifier,
		events:        events,
		locks:         newWalletLocks(),
		confirmations: defaultConfirmations,
		timeout:       defaultConfirmationTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// lockWallet holds the wallet for the whole check, submit and confirm sequence.
func (d *Dispatcher) lockWallet(ctx context.Context, walletID uuid.UUID) (func(), error) {
	return d.locks.Lock(ctx, walletID)
}

// submit broadcasts the transfer and waits for confirmations under the configured timeout.
func (d *Dispatcher) submit(ctx context.Context, kind string, src *models.WalletDB, to string, amount decimal.Decimal, fee *chain.FeeEstimate) (*chain.Receipt, error) {
	txHash, err := d.chain.SendTransfer(ctx, src.PrivateKey, to, amount, fee)
	if err != nil {
		metrics.Transfers.WithLabelValues(kind, "failed").Inc()
		logger.Log.Errorw("failed to broadcast transaction", "type", kind, "walletID", src.WalletID, "to", to, "error", err)
		return nil, err
	}

	waitCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	started := time.Now()
	receipt, err := d.chain.WaitForConfirmations(waitCtx, txHash, d.confirmations)
	metrics.ConfirmationWait.Observe(time.Since(started).Seconds())

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			metrics.Transfers.WithLabelValues(kind, "timeout").Inc()
			logger.Log.Warnw("transaction confirmation timed out", "type", kind, "txHash", txHash, "timeout", d.timeout)
			return nil, &ConfirmationTimeoutError{TxHash: txHash}
		}
		metrics.Transfers.WithLabelValues(kind, "failed").Inc()
		logger.Log.Errorw("transaction confirmation failed", "type", kind, "txHash", txHash, "error", err)
		return nil, err
	}

	metrics.Transfers.WithLabelValues(kind, "completed").Inc()
	return receipt, nil
}

// settle writes the completed record together with the refreshed balances of
// the touched wallets, then notifies both parties and publishes the event.
func (d *Dispatcher) settle(ctx context.Context, txn *models.TransactionDB, touched ...*models.WalletDB) error {
	type refresh struct {
		wallet  *models.WalletDB
		balance decimal.Decimal
	}

	var refreshed []refresh
	for _, w := range touched {
		if w == nil {
			continue
		}
		balance, err := d.chain.BalanceOf(ctx, w.Address)
		if err != nil {
			logger.Log.Warnw("failed to refresh balance after transfer", "walletID", w.WalletID, "error", err)
			continue
		}
		refreshed = append(refreshed, refresh{wallet: w, balance: balance})
	}

	err := d.tx.Do(ctx, func(ctx context.Context) error {
		if err := d.txns.Save(ctx, txn); err != nil {
			return fmt.Errorf("save transaction: %w", err)
		}
		for _, r := range refreshed {
			if err := d.balances.UpdateBalance(ctx, r.wallet.WalletID, r.balance); err != nil {
				return fmt.Errorf("update balance of %s: %w", r.wallet.WalletID, err)
			}
		}
		return nil
	})
	if err != nil {
		logger.Log.Errorw("failed to record confirmed transaction", "txHash", txn.Metadata.TxHash, "error", err)
		return err
	}

	if d.notifier != nil {
		for _, r := range refreshed {
			r.wallet.Balance = r.balance
			d.notifier.Notify(r.wallet.UserID, models.NewBalanceUpdate(r.wallet.WalletID, r.balance))
		}
		d.notifier.Notify(txn.FromUserID, models.NewTransactionUpdate(txn.TransactionID))
		if txn.ToUserID != txn.FromUserID {
			d.notifier.Notify(txn.ToUserID, models.NewTransactionUpdate(txn.TransactionID))
		}
	}

	publishTransaction(ctx, d.events, txn)
	return nil
}
