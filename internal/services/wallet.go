package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/amanah-wallet/internal/logger"
	"github.com/sbilibin2017/amanah-wallet/internal/models"
)

//go:generate mockgen -source=wallet.go -destination=wallet_mock.go -package=services

var (
	// ErrInvalidWalletType is returned for a type outside models.WalletTypes.
	ErrInvalidWalletType = errors.New("invalid wallet type. Must be one of: " + strings.Join(models.WalletTypes, ", "))
	// ErrDailyWalletExists is returned when a user asks for a second daily wallet.
	ErrDailyWalletExists = models.ErrDailyWalletExists
	// ErrWalletNameRequired is returned when the wallet name is blank.
	ErrWalletNameRequired = errors.New("wallet name is required")
)

// WalletReader defines methods for reading wallets.
type WalletReader interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]models.WalletDB, error)
	GetByUserIDAndType(ctx context.Context, userID uuid.UUID, walletType string) (*models.WalletDB, error)
}

// WalletWriter defines methods for storing wallets.
type WalletWriter interface {
	Save(ctx context.Context, wallet *models.WalletDB) error
}

// KeyGenerator creates keypairs for new wallets.
type KeyGenerator interface {
	Generate() (address, privateKeyHex string, err error)
}

// BalanceReader reads on-chain balances.
type BalanceReader interface {
	BalanceOf(ctx context.Context, address string) (decimal.Decimal, error)
}

// Faucet requests test funds for a fresh address.
type Faucet interface {
	Request(ctx context.Context, address string) error
}

// PriceReader returns the last known fiat price of the native asset.
type PriceReader interface {
	USDPrice() (decimal.Decimal, bool)
}

// WalletService provisions and lists wallets.
type WalletService struct {
	reader   WalletReader
	writer   WalletWriter
	balances BalanceWriter
	keys     KeyGenerator
	chain    BalanceReader
	faucet   Faucet
	price    PriceReader
}

// NewWalletService creates a new WalletService. faucet may be nil.
func NewWalletService(
	reader WalletReader,
	writer WalletWriter,
	balances BalanceWriter,
	keys KeyGenerator,
	chain BalanceReader,
	faucet Faucet,
	price PriceReader,
) *WalletService {
	return &WalletService{
		reader:   reader,
		writer:   writer,
		balances: balances,
		keys:     keys,
		chain:    chain,
		faucet:   faucet,
		price:    price,
	}
}

// Create generates a keypair, asks the faucet for funds, reads the initial
// balance and stores the wallet.
func (s *WalletService) Create(ctx context.Context, userID uuid.UUID, name, walletType string) (*models.WalletDB, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrWalletNameRequired
	}
	if !slices.Contains(models.WalletTypes, walletType) {
		return nil, ErrInvalidWalletType
	}

	if walletType == models.WalletTypeDaily {
		existing, err := s.reader.GetByUserIDAndType(ctx, userID, models.WalletTypeDaily)
		if err != nil {
			logger.Log.Errorw("failed to check daily wallet", "userID", userID, "error", err)
			return nil, err
		}
		if existing != nil {
			return nil, ErrDailyWalletExists
		}
	}

	address, privateKey, err := s.keys.Generate()
	if err != nil {
		logger.Log.Errorw("failed to generate wallet key", "userID", userID, "error", err)
		return nil, fmt.Errorf("generate wallet: %w", err)
	}

	logger.Log.Infow("created new wallet", "userID", userID, "address", address, "type", walletType)

	if s.faucet != nil {
		if err := s.faucet.Request(ctx, address); err != nil {
			logger.Log.Warnw("failed to request test funds", "address", address, "error", err)
		}
	}

	balance, err := s.chain.BalanceOf(ctx, address)
	if err != nil {
		logger.Log.Errorw("failed to read initial balance", "address", address, "error", err)
		return nil, err
	}

	wallet := &models.WalletDB{
		UserID:     userID,
		Name:       name,
		Type:       walletType,
		Address:    address,
		PrivateKey: privateKey,
		Balance:    balance,
	}
	if err := s.writer.Save(ctx, wallet); err != nil {
		logger.Log.Errorw("failed to save wallet", "userID", userID, "address", address, "error", err)
		return nil, err
	}

	return wallet, nil
}

// List returns the user's wallets with fresh balances and their USD value.
// A balance that cannot be read from the chain falls back to the cached one.
func (s *WalletService) List(ctx context.Context, userID uuid.UUID) ([]models.WalletWithUSD, error) {
	wallets, err := s.reader.GetByUserID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get wallets", "userID", userID, "error", err)
		return nil, err
	}

	price, _ := s.price.USDPrice()

	result := make([]models.WalletWithUSD, 0, len(wallets))
	for _, w := range wallets {
		balance, err := s.chain.BalanceOf(ctx, w.Address)
		switch {
		case err != nil:
			logger.Log.Warnw("failed to refresh wallet balance", "walletID", w.WalletID, "error", err)
		case !balance.Equal(w.Balance):
			if err := s.balances.UpdateBalance(ctx, w.WalletID, balance); err != nil {
				logger.Log.Warnw("failed to store wallet balance", "walletID", w.WalletID, "error", err)
			}
			w.Balance = balance
		}

		result = append(result, models.WalletWithUSD{
			WalletDB:   w,
			USDBalance: w.Balance.Mul(price),
		})
	}

	return result, nil
}
