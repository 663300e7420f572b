// Package live pushes balance and transaction notifications to connected
// clients over WebSocket. Each user holds at most one connection.
package live

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/sbilibin2017/amanah-wallet/internal/logger"
	"github.com/sbilibin2017/amanah-wallet/internal/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

// Hub tracks the live connection of every user.
type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]*client
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[uuid.UUID]*client)}
}

type client struct {
	hub    *Hub
	userID uuid.UUID
	conn   *websocket.Conn
	send   chan []byte
	done   chan struct{}
	once   sync.Once
}

// register makes conn the user's live connection, closing any previous one.
func (h *Hub) register(userID uuid.UUID, conn *websocket.Conn) *client {
	c := &client{
		hub:    h,
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		done:   make(chan struct{}),
	}

	h.mu.Lock()
	prev := h.clients[userID]
	h.clients[userID] = c
	h.mu.Unlock()

	if prev != nil {
		prev.close()
	} else {
		metrics.LiveConnections.Inc()
	}

	logger.Log.Infow("live client connected", "userID", userID, "replaced", prev != nil)
	return c
}

// unregister removes c if it is still the user's current connection.
func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	current := h.clients[c.userID] == c
	if current {
		delete(h.clients, c.userID)
	}
	h.mu.Unlock()

	if current {
		metrics.LiveConnections.Dec()
		logger.Log.Infow("live client disconnected", "userID", c.userID)
	}
	c.close()
}

// Notify queues msg for the user's connection. It reports false and drops the
// message when the user is not connected or the connection is backed up.
func (h *Hub) Notify(userID uuid.UUID, msg any) bool {
	h.mu.RLock()
	c := h.clients[userID]
	h.mu.RUnlock()

	if c == nil {
		metrics.LiveDropped.Inc()
		return false
	}

	data, err := json.Marshal(msg)
	if err != nil {
		logger.Log.Errorw("failed to marshal live message", "userID", userID, "error", err)
		return false
	}

	select {
	case c.send <- data:
		return true
	case <-c.done:
	default:
	}
	metrics.LiveDropped.Inc()
	return false
}

// Connected reports whether the user has a live connection.
func (h *Hub) Connected(userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[uuid.UUID]*client)
	h.mu.Unlock()

	for _, c := range clients {
		metrics.LiveConnections.Dec()
		c.close()
	}
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
	})
}

// writePump sends queued messages and keepalive pings until the client is closed.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				logger.Log.Warnw("failed to write live message", "userID", c.userID, "error", err)
				c.hub.unregister(c)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.hub.unregister(c)
				return
			}
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

// readPump discards client frames and detects disconnects.
func (c *client) readPump() {
	defer c.hub.unregister(c)

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
