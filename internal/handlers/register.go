package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/amanah-wallet/internal/logger"
	"github.com/sbilibin2017/amanah-wallet/internal/models"
	"github.com/sbilibin2017/amanah-wallet/internal/services"
)

//go:generate mockgen -source=register.go -destination=register_mock.go -package=handlers

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, params services.RegisterParams) (*models.UserDB, error)
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Username
	// required: true
	// default: john_doe
	Username string `json:"username" validate:"required,min=3"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password" validate:"required,min=6"`

	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email" validate:"required,email"`

	// Phone number
	// required: true
	// default: +60123456789
	Phone string `json:"phone" validate:"required"`

	// Full name
	// required: true
	// default: John Doe
	FullName string `json:"fullName" validate:"required"`

	// Country of residence
	// required: true
	// default: Malaysia
	Country string `json:"country" validate:"required"`
}

// RegisterResponse represents a successful registration response
// swagger:model RegisterResponse
type RegisterResponse struct {
	// Success message
	// default: User registered successfully
	Message string         `json:"message"`
	User    *models.UserDB `json:"user"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account. Username, email and phone must be unique. Password is hashed before storing.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "User registration request"
// @Success 201 {object} handlers.RegisterResponse "User successfully registered"
// @Failure 400 {object} handlers.ErrorResponse "Username, email or phone already exists / invalid request"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, validationMessage(err))
			return
		}

		user, err := svc.Register(r.Context(), services.RegisterParams{
			Username: req.Username,
			Password: req.Password,
			Email:    req.Email,
			Phone:    req.Phone,
			FullName: req.FullName,
			Country:  req.Country,
		})
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserAlreadyExists):
				writeError(w, http.StatusBadRequest, "Username, email or phone already exists")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, RegisterResponse{
			Message: "User registered successfully",
			User:    user,
		})
	}
}
