package live

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/amanah-wallet/internal/jwt"
	"github.com/sbilibin2017/amanah-wallet/internal/models"
)

// newTestServer serves the live handler with userID already authenticated.
func newTestServer(t *testing.T, hub *Hub, userID uuid.UUID) *httptest.Server {
	t.Helper()
	handler := NewServeWSHandler(hub)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler(w, r.WithContext(jwt.WithUserID(r.Context(), userID)))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, time.Second, 5*time.Millisecond)
}

func TestHub_NotifyDelivers(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()
	srv := newTestServer(t, hub, userID)

	conn := dial(t, srv)
	waitFor(t, func() bool { return hub.Connected(userID) })

	walletID := uuid.New()
	assert.True(t, hub.Notify(userID, models.NewBalanceUpdate(walletID, decimal.RequireFromString("1.25"))))

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg map[string]string
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, models.MessageTypeBalanceUpdate, msg["type"])
	assert.Equal(t, walletID.String(), msg["walletId"])
	assert.Equal(t, "1.25", msg["balance"])
}

func TestHub_NotifyWithoutConnectionIsDropped(t *testing.T) {
	hub := NewHub()
	assert.False(t, hub.Notify(uuid.New(), models.NewTransactionUpdate(uuid.New())))
}

func TestHub_DisconnectUnregisters(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()
	srv := newTestServer(t, hub, userID)

	conn := dial(t, srv)
	waitFor(t, func() bool { return hub.Connected(userID) })

	conn.Close()
	waitFor(t, func() bool { return !hub.Connected(userID) })
	assert.False(t, hub.Notify(userID, models.NewTransactionUpdate(uuid.New())))
}

func TestHub_NewConnectionReplacesOld(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()
	srv := newTestServer(t, hub, userID)

	first := dial(t, srv)
	waitFor(t, func() bool { return hub.Connected(userID) })

	hub.mu.RLock()
	firstClient := hub.clients[userID]
	hub.mu.RUnlock()

	second := dial(t, srv)
	waitFor(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return hub.clients[userID] != firstClient
	})

	// the replaced connection receives a close frame
	first.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err := first.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure))

	txnID := uuid.New()
	require.True(t, hub.Notify(userID, models.NewTransactionUpdate(txnID)))

	second.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := second.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"TRANSACTION_UPDATE","transactionId":"`+txnID.String()+`"}`, string(data))
	assert.True(t, hub.Connected(userID))
}

func TestHub_Close(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()
	srv := newTestServer(t, hub, userID)

	conn := dial(t, srv)
	waitFor(t, func() bool { return hub.Connected(userID) })

	hub.Close()
	assert.False(t, hub.Connected(userID))

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func TestServeWS_Unauthenticated(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(NewServeWSHandler(hub))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
