package services

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/amanah-wallet/internal/logger"
	"github.com/sbilibin2017/amanah-wallet/internal/models"
)

// DefaultZakatAddress is the collection address used when none is configured.
const DefaultZakatAddress = "0x1234567890123456789012345678901234567890"

var (
	// NisabUSD is the wealth threshold above which Zakat is due.
	NisabUSD = decimal.NewFromInt(5000)
	// ZakatRate is the share of wealth due.
	ZakatRate = decimal.RequireFromString("0.025")
)

// ErrPriceUnavailable is returned while no fiat price has been fetched yet.
var ErrPriceUnavailable = errors.New("price unavailable")

// ZakatAssessment is the Zakat position of a user across all their wallets.
// Amounts are in native units unless suffixed with USD.
type ZakatAssessment struct {
	TotalWealth    decimal.Decimal `json:"totalWealth"`
	TotalWealthUSD decimal.Decimal `json:"totalWealthUsd"`
	Price          decimal.Decimal `json:"price"`
	NisabUSD       decimal.Decimal `json:"nisabUsd"`
	Eligible       bool            `json:"eligible"`
	ZakatDue       decimal.Decimal `json:"zakatDue"`
}

// ZakatPayment is a confirmed Zakat transfer.
type ZakatPayment struct {
	TransactionID uuid.UUID
	TxHash        string
}

// ZakatService assesses and pays Zakat from a user's daily wallet.
type ZakatService struct {
	wallets    WalletReader
	chain      ChainTransactor
	price      PriceReader
	dispatcher *Dispatcher
	address    string
}

// NewZakatService creates a new ZakatService paying to address.
func NewZakatService(wallets WalletReader, chainClient ChainTransactor, price PriceReader, dispatcher *Dispatcher, address string) *ZakatService {
	if address == "" {
		address = DefaultZakatAddress
	}
	return &ZakatService{
		wallets:    wallets,
		chain:      chainClient,
		price:      price,
		dispatcher: dispatcher,
		address:    address,
	}
}

// Pay transfers amount to the collection address. The sufficiency check uses
// the cached balance and leaves gas out.
func (s *ZakatService) Pay(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*ZakatPayment, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	source, err := s.dailyWallet(ctx, userID)
	if err != nil {
		return nil, err
	}

	unlock, err := s.dispatcher.lockWallet(ctx, source.WalletID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	// The cached balance may have changed while waiting for the lock.
	source, err = s.dailyWallet(ctx, userID)
	if err != nil {
		return nil, err
	}

	if source.Balance.LessThan(amount) {
		return nil, ErrInsufficientFunds
	}

	fee, err := s.chain.EstimateTransfer(ctx, source.Address, s.address, amount)
	if err != nil {
		logger.Log.Errorw("failed to estimate zakat gas", "walletID", source.WalletID, "error", err)
		return nil, err
	}

	receipt, err := s.dispatcher.submit(ctx, models.TransactionTypeZakat, source, s.address, amount, fee)
	if err != nil {
		return nil, err
	}

	txn := &models.TransactionDB{
		FromUserID: userID,
		ToUserID:   userID,
		Amount:     amount,
		Type:       models.TransactionTypeZakat,
		Status:     models.TransactionStatusCompleted,
		Metadata: models.TransactionMetadata{
			TxHash:      receipt.TxHash,
			BlockNumber: receipt.BlockNumber,
			GasUsed:     strconv.FormatUint(receipt.GasUsed, 10),
		},
	}
	if err := s.dispatcher.settle(ctx, txn, source); err != nil {
		return nil, err
	}

	return &ZakatPayment{TransactionID: txn.TransactionID, TxHash: receipt.TxHash}, nil
}

func (s *ZakatService) dailyWallet(ctx context.Context, userID uuid.UUID) (*models.WalletDB, error) {
	wallet, err := s.wallets.GetByUserIDAndType(ctx, userID, models.WalletTypeDaily)
	if err != nil {
		logger.Log.Errorw("failed to look up zakat source wallet", "userID", userID, "error", err)
		return nil, err
	}
	if wallet == nil {
		return nil, ErrInsufficientFunds
	}
	return wallet, nil
}

// Assess sums the cached balances of every wallet of the user and compares
// their USD value with the Nisab.
func (s *ZakatService) Assess(ctx context.Context, userID uuid.UUID) (*ZakatAssessment, error) {
	price, ok := s.price.USDPrice()
	if !ok {
		return nil, ErrPriceUnavailable
	}

	wallets, err := s.wallets.GetByUserID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get wallets for zakat", "userID", userID, "error", err)
		return nil, err
	}

	total := decimal.Zero
	for _, w := range wallets {
		total = total.Add(w.Balance)
	}
	totalUSD := total.Mul(price)
	eligible := totalUSD.GreaterThanOrEqual(NisabUSD)

	due := decimal.Zero
	if eligible {
		due = total.Mul(ZakatRate)
	}

	return &ZakatAssessment{
		TotalWealth:    total,
		TotalWealthUSD: totalUSD,
		Price:          price,
		NisabUSD:       NisabUSD,
		Eligible:       eligible,
		ZakatDue:       due,
	}, nil
}
