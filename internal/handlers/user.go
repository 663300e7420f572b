package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/sbilibin2017/amanah-wallet/internal/logger"
	"github.com/sbilibin2017/amanah-wallet/internal/models"
	"github.com/sbilibin2017/amanah-wallet/internal/services"
)

//go:generate mockgen -source=user.go -destination=user_mock.go -package=handlers

// UserGetter loads the profile of the authenticated user.
type UserGetter interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
}

// NewGetUserHandler returns an HTTP handler for the current user.
// @Summary Current user
// @Description Returns the profile of the authenticated user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UserDB
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /user [get]
func NewGetUserHandler(svc UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		user, err := svc.GetUser(r.Context(), userID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserDoesNotExist):
				writeError(w, http.StatusUnauthorized, "User session invalid")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}
