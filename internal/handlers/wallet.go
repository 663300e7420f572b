package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/amanah-wallet/internal/logger"
	"github.com/sbilibin2017/amanah-wallet/internal/models"
	"github.com/sbilibin2017/amanah-wallet/internal/services"
)

//go:generate mockgen -source=wallet.go -destination=wallet_mock.go -package=handlers

// WalletCreator provisions a new custodial wallet.
type WalletCreator interface {
	Create(ctx context.Context, userID uuid.UUID, name, walletType string) (*models.WalletDB, error)
}

// WalletLister lists a user's wallets with their USD value.
type WalletLister interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.WalletWithUSD, error)
}

// CreateWalletRequest represents the JSON body for wallet creation
// swagger:model CreateWalletRequest
type CreateWalletRequest struct {
	// Display name
	// required: true
	// default: Spending
	Name string `json:"name" validate:"required"`

	// Wallet type: daily, family or zakat
	// required: true
	// default: daily
	Type string `json:"type" validate:"required"`
}

// CreateWalletResponse represents a provisioned wallet
// swagger:model CreateWalletResponse
type CreateWalletResponse struct {
	Success bool            `json:"success"`
	Address string          `json:"address"`
	Balance decimal.Decimal `json:"balance"`
}

// NewCreateWalletHandler returns an HTTP handler that provisions a wallet.
// @Summary Create wallet
// @Description Generates a keypair held by the server, requests faucet funds and stores the wallet. A user may hold one daily wallet.
// @Tags wallets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param createWalletRequest body handlers.CreateWalletRequest true "Wallet name and type"
// @Success 200 {object} handlers.CreateWalletResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid wallet type / daily wallet already exists"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ErrorResponse "Failed to create wallet"
// @Router /wallets [post]
func NewCreateWalletHandler(svc WalletCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		var req CreateWalletRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, validationMessage(err))
			return
		}

		wallet, err := svc.Create(r.Context(), userID, req.Name, req.Type)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidWalletType),
				errors.Is(err, services.ErrWalletNameRequired):
				writeError(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, services.ErrDailyWalletExists):
				writeError(w, http.StatusBadRequest, "Daily wallet already exists")
			default:
				logger.Log.Errorw("failed to create wallet", "userID", userID, "err", err)
				writeError(w, http.StatusInternalServerError, "Failed to create wallet")
			}
			return
		}

		writeJSON(w, http.StatusOK, CreateWalletResponse{
			Success: true,
			Address: wallet.Address,
			Balance: wallet.Balance,
		})
	}
}

// NewListWalletsHandler returns an HTTP handler listing the caller's wallets.
// @Summary List wallets
// @Description Returns the caller's wallets with refreshed balances and their USD value
// @Tags wallets
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.WalletWithUSD
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /wallets [get]
func NewListWalletsHandler(svc WalletLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		wallets, err := svc.List(r.Context(), userID)
		if err != nil {
			logger.Log.Errorw("failed to list wallets", "userID", userID, "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if wallets == nil {
			wallets = []models.WalletWithUSD{}
		}

		writeJSON(w, http.StatusOK, wallets)
	}
}
