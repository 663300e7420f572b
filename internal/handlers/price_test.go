package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sbilibin2017/amanah-wallet/internal/services"
)

func TestGetPriceHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("tracked", func(t *testing.T) {
		updated := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
		tracker := NewMockPriceQuoter(ctrl)
		tracker.EXPECT().Quote().Return(services.PriceQuote{
			Asset:     "avalanche-2",
			Currency:  services.QuoteCurrency,
			Price:     decimal.RequireFromString("31.5"),
			UpdatedAt: updated,
		}, true)

		rr := httptest.NewRecorder()
		NewGetPriceHandler(tracker)(rr, httptest.NewRequest(http.MethodGet, "/api/price", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"asset":"avalanche-2","currency":"USD","price":"31.5","updatedAt":"2025-01-02T03:04:05Z"}`, rr.Body.String())
	})

	t.Run("not yet fetched", func(t *testing.T) {
		tracker := NewMockPriceQuoter(ctrl)
		tracker.EXPECT().Quote().Return(services.PriceQuote{}, false)

		rr := httptest.NewRecorder()
		NewGetPriceHandler(tracker)(rr, httptest.NewRequest(http.MethodGet, "/api/price", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.JSONEq(t, `{"error":"Price unavailable"}`, rr.Body.String())
	})
}
