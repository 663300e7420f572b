package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Supported wallet types
const (
	WalletTypeDaily  = "daily"  // Spending wallet, source of transfers and Zakat
	WalletTypeFamily = "family" // Savings set aside for family
	WalletTypeZakat  = "zakat"  // Funds reserved for charitable giving
)

// ErrDailyWalletExists is returned when a user asks for a second daily wallet.
var ErrDailyWalletExists = errors.New("daily wallet already exists")

// WalletTypes lists every wallet type accepted on provisioning.
var WalletTypes = []string{WalletTypeDaily, WalletTypeFamily, WalletTypeZakat}

// WalletDB represents a wallet row in the database
type WalletDB struct {
	WalletID   uuid.UUID       `json:"id" db:"wallet_id"`         // Unique wallet identifier
	UserID     uuid.UUID       `json:"userId" db:"user_id"`       // Identifier of the wallet's owner
	Name       string          `json:"name" db:"name"`            // Display name
	Type       string          `json:"type" db:"type"`            // Wallet type (daily, family, zakat)
	Address    string          `json:"address" db:"address"`      // Chain address, 0x-prefixed
	PrivateKey string          `json:"-" db:"private_key"`        // Hex-encoded private key held by the custodian
	Balance    decimal.Decimal `json:"balance" db:"balance"`      // Cached on-chain balance in native units
	CreatedAt  time.Time       `json:"createdAt" db:"created_at"` // Timestamp when the wallet was created
	UpdatedAt  time.Time       `json:"updatedAt" db:"updated_at"` // Timestamp of the last balance update
}

// WalletWithUSD is a wallet augmented with its fiat equivalent.
type WalletWithUSD struct {
	WalletDB
	USDBalance decimal.Decimal `json:"usdBalance"`
}
