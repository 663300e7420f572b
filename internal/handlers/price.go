package handlers

import (
	"net/http"

	"github.com/sbilibin2017/amanah-wallet/internal/services"
)

//go:generate mockgen -source=price.go -destination=price_mock.go -package=handlers

// PriceQuoter exposes the latest tracked price.
type PriceQuoter interface {
	Quote() (services.PriceQuote, bool)
}

// NewGetPriceHandler returns an HTTP handler for the current USD price.
// @Summary Current price
// @Description Returns the latest USD price of the native asset
// @Tags price
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.PriceQuote
// @Failure 503 {object} handlers.ErrorResponse "Price unavailable"
// @Router /price [get]
func NewGetPriceHandler(tracker PriceQuoter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quote, ok := tracker.Quote()
		if !ok {
			writeError(w, http.StatusServiceUnavailable, "Price unavailable")
			return
		}
		writeJSON(w, http.StatusOK, quote)
	}
}
