package live

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/sbilibin2017/amanah-wallet/internal/jwt"
	"github.com/sbilibin2017/amanah-wallet/internal/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// NewServeWSHandler upgrades an authenticated request to the user's live
// connection. It must run behind the auth middleware.
// @Summary Live updates
// @Description Upgrades to a WebSocket that receives BALANCE_UPDATE and TRANSACTION_UPDATE messages
// @Tags live
// @Security BearerAuth
// @Success 101 {string} string "Switching Protocols"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /ws [get]
func NewServeWSHandler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := jwt.UserIDFromContext(r.Context())
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Log.Warnw("websocket upgrade failed", "userID", userID, "error", err)
			return
		}

		c := hub.register(userID, conn)
		go c.writePump()
		c.readPump()
	}
}
