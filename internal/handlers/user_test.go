package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/amanah-wallet/internal/jwt"
	"github.com/sbilibin2017/amanah-wallet/internal/models"
	"github.com/sbilibin2017/amanah-wallet/internal/services"
)

// authed attaches userID to req the way the auth middleware does.
func authed(req *http.Request, userID uuid.UUID) *http.Request {
	return req.WithContext(jwt.WithUserID(req.Context(), userID))
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error
}

func TestGetUserHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	tests := []struct {
		name          string
		authenticated bool
		mockSetup     func(m *MockUserGetter)
		expectedCode  int
		expectedError string
	}{
		{
			name:          "success",
			authenticated: true,
			mockSetup: func(m *MockUserGetter) {
				m.EXPECT().GetUser(gomock.Any(), userID).
					Return(&models.UserDB{UserID: userID, Username: "john", PasswordHash: "hash"}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:          "not authenticated",
			authenticated: false,
			expectedCode:  http.StatusUnauthorized,
			expectedError: "unauthorized",
		},
		{
			name:          "user deleted",
			authenticated: true,
			mockSetup: func(m *MockUserGetter) {
				m.EXPECT().GetUser(gomock.Any(), userID).Return(nil, services.ErrUserDoesNotExist)
			},
			expectedCode:  http.StatusUnauthorized,
			expectedError: "User session invalid",
		},
		{
			name:          "store error",
			authenticated: true,
			mockSetup: func(m *MockUserGetter) {
				m.EXPECT().GetUser(gomock.Any(), userID).Return(nil, errors.New("db down"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockUserGetter(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
			if tt.authenticated {
				req = authed(req, userID)
			}
			rr := httptest.NewRecorder()
			NewGetUserHandler(mockSvc)(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, decodeError(t, rr))
				return
			}

			var user map[string]any
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &user))
			assert.Equal(t, userID.String(), user["id"])
			assert.NotContains(t, user, "passwordHash")
		})
	}
}
