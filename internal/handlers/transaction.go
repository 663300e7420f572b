package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/amanah-wallet/internal/logger"
	"github.com/sbilibin2017/amanah-wallet/internal/models"
	"github.com/sbilibin2017/amanah-wallet/internal/services"
)

//go:generate mockgen -source=transaction.go -destination=transaction_mock.go -package=handlers

// TransactionLister lists the transactions a user took part in.
type TransactionLister interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.TransactionDB, error)
}

// Sender performs an outbound transfer.
type Sender interface {
	Send(ctx context.Context, userID uuid.UUID, params services.SendParams) (*services.SendResult, error)
}

// SendRequest represents the JSON body of a transfer
// swagger:model SendRequest
type SendRequest struct {
	// Recipient username, or a hex address when useAddress is set
	// default: jane_doe
	Recipient string `json:"recipient" validate:"required_without=RecipientUsername"`

	// Recipient username, used when recipient is empty
	RecipientUsername string `json:"recipientUsername"`

	// Amount in native units
	// required: true
	// default: 0.5
	Amount decimal.Decimal `json:"amount" swaggertype:"string"`

	// Free-form note stored with the transaction
	Note string `json:"note"`

	// Treat recipient as a raw address
	UseAddress bool `json:"useAddress"`
}

// SendResponse represents a confirmed transfer
// swagger:model SendResponse
type SendResponse struct {
	Success     bool   `json:"success"`
	TxHash      string `json:"txHash"`
	BlockNumber uint64 `json:"blockNumber"`
	GasUsed     string `json:"gasUsed"`
}

// InsufficientFundsDetails is the cost breakdown of a rejected transfer
// swagger:model InsufficientFundsDetails
type InsufficientFundsDetails struct {
	Amount           decimal.Decimal `json:"amount" swaggertype:"string"`
	EstimatedGasFees decimal.Decimal `json:"estimatedGasFees" swaggertype:"string"`
	TotalRequired    decimal.Decimal `json:"totalRequired" swaggertype:"string"`
	CurrentBalance   decimal.Decimal `json:"currentBalance" swaggertype:"string"`
}

// InsufficientFundsResponse is returned when balance does not cover amount plus gas
// swagger:model InsufficientFundsResponse
type InsufficientFundsResponse struct {
	// default: INSUFFICIENT_FUNDS
	Error   string                   `json:"error"`
	Details InsufficientFundsDetails `json:"details"`
}

// TimeoutResponse is returned when a broadcast transaction is not confirmed in time
// swagger:model TimeoutResponse
type TimeoutResponse struct {
	// default: Transaction confirmation timeout
	Error  string `json:"error"`
	TxHash string `json:"txHash"`
}

// NewListTransactionsHandler returns an HTTP handler listing the caller's transactions.
// @Summary List transactions
// @Description Returns transactions where the caller is sender or recipient, newest first
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.TransactionDB
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /transactions [get]
func NewListTransactionsHandler(svc TransactionLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		txns, err := svc.List(r.Context(), userID)
		if err != nil {
			logger.Log.Errorw("failed to list transactions", "userID", userID, "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if txns == nil {
			txns = []models.TransactionDB{}
		}

		writeJSON(w, http.StatusOK, txns)
	}
}

// NewSendHandler returns an HTTP handler for outbound transfers.
// @Summary Send funds
// @Description Sends from the caller's daily wallet to a user or address after a balance and gas check, then waits for 2 confirmations
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sendRequest body handlers.SendRequest true "Transfer"
// @Success 200 {object} handlers.SendResponse
// @Failure 400 {object} handlers.InsufficientFundsResponse "Insufficient funds / validation error"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 408 {object} handlers.TimeoutResponse "Transaction confirmation timeout"
// @Failure 500 {object} handlers.ErrorResponse "Failed to process transaction"
// @Router /transactions/send [post]
func NewSendHandler(svc Sender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		var req SendRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, validationMessage(err))
			return
		}

		recipient := req.Recipient
		if recipient == "" {
			recipient = req.RecipientUsername
		}

		res, err := svc.Send(r.Context(), userID, services.SendParams{
			Recipient:  recipient,
			Amount:     req.Amount,
			Note:       req.Note,
			UseAddress: req.UseAddress,
		})
		if err != nil {
			writeTransferError(w, userID, err)
			return
		}

		writeJSON(w, http.StatusOK, SendResponse{
			Success:     true,
			TxHash:      res.TxHash,
			BlockNumber: res.BlockNumber,
			GasUsed:     strconv.FormatUint(res.GasUsed, 10),
		})
	}
}

// writeTransferError maps transfer and Zakat failures to responses.
func writeTransferError(w http.ResponseWriter, userID uuid.UUID, err error) {
	var (
		funds   *services.InsufficientFundsError
		timeout *services.ConfirmationTimeoutError
	)

	switch {
	case errors.As(err, &funds):
		writeJSON(w, http.StatusBadRequest, InsufficientFundsResponse{
			Error: "INSUFFICIENT_FUNDS",
			Details: InsufficientFundsDetails{
				Amount:           funds.Amount,
				EstimatedGasFees: funds.EstimatedGasFees,
				TotalRequired:    funds.TotalRequired,
				CurrentBalance:   funds.CurrentBalance,
			},
		})
	case errors.Is(err, services.ErrInsufficientFunds):
		writeError(w, http.StatusBadRequest, "Insufficient funds")
	case errors.As(err, &timeout):
		writeJSON(w, http.StatusRequestTimeout, TimeoutResponse{
			Error:  "Transaction confirmation timeout",
			TxHash: timeout.TxHash,
		})
	case errors.Is(err, services.ErrRecipientNotFound):
		writeError(w, http.StatusBadRequest, "Recipient not found")
	case errors.Is(err, services.ErrRecipientWalletNotFound):
		writeError(w, http.StatusBadRequest, "Recipient wallet not found")
	case errors.Is(err, services.ErrSenderWalletNotFound):
		writeError(w, http.StatusBadRequest, "Sender wallet not found")
	case errors.Is(err, services.ErrInvalidRecipientAddress):
		writeError(w, http.StatusBadRequest, "Invalid recipient address format")
	case errors.Is(err, services.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, "Amount must be positive")
	default:
		logger.Log.Errorw("transaction failed", "userID", userID, "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to process transaction")
	}
}
