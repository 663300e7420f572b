package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/amanah-wallet/internal/logger"
	"github.com/sbilibin2017/amanah-wallet/internal/services"
)

//go:generate mockgen -source=zakat.go -destination=zakat_mock.go -package=handlers

// ZakatPayer pays Zakat from the caller's daily wallet.
type ZakatPayer interface {
	Pay(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*services.ZakatPayment, error)
}

// ZakatAssessor computes the caller's Zakat position.
type ZakatAssessor interface {
	Assess(ctx context.Context, userID uuid.UUID) (*services.ZakatAssessment, error)
}

// ZakatRequest represents the JSON body of a Zakat payment
// swagger:model ZakatRequest
type ZakatRequest struct {
	// Amount in native units
	// required: true
	// default: 0.1
	Amount decimal.Decimal `json:"amount" swaggertype:"string"`
}

// ZakatResponse represents a confirmed Zakat payment
// swagger:model ZakatResponse
type ZakatResponse struct {
	Success bool   `json:"success"`
	TxHash  string `json:"txHash"`
}

// NewPayZakatHandler returns an HTTP handler for Zakat payments.
// @Summary Pay Zakat
// @Description Sends amount from the caller's daily wallet to the Zakat collection address
// @Tags zakat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param zakatRequest body handlers.ZakatRequest true "Zakat amount"
// @Success 200 {object} handlers.ZakatResponse
// @Failure 400 {object} handlers.ErrorResponse "Insufficient funds"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 408 {object} handlers.TimeoutResponse "Transaction confirmation timeout"
// @Failure 500 {object} handlers.ErrorResponse "Failed to process transaction"
// @Router /transactions/zakat [post]
func NewPayZakatHandler(svc ZakatPayer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		var req ZakatRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, validationMessage(err))
			return
		}

		payment, err := svc.Pay(r.Context(), userID, req.Amount)
		if err != nil {
			writeTransferError(w, userID, err)
			return
		}

		writeJSON(w, http.StatusOK, ZakatResponse{Success: true, TxHash: payment.TxHash})
	}
}

// NewAssessZakatHandler returns an HTTP handler for the Zakat calculator.
// @Summary Zakat assessment
// @Description Sums the caller's wallet balances and compares their USD value with the Nisab
// @Tags zakat
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.ZakatAssessment
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 503 {object} handlers.ErrorResponse "Price unavailable"
// @Router /zakat [get]
func NewAssessZakatHandler(svc ZakatAssessor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		assessment, err := svc.Assess(r.Context(), userID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrPriceUnavailable):
				writeError(w, http.StatusServiceUnavailable, "Price unavailable")
			default:
				logger.Log.Errorw("failed to assess zakat", "userID", userID, "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusOK, assessment)
	}
}
