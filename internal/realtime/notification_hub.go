package realtime

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/healthscript/healthscript-backend/internal/model"
)

const (
	EventReady               = "realtime.ready"
	EventNotificationCreated = "notification.created"
	EventNotificationRead    = "notification.read"
	EventPing                = "ping"
	EventPong                = "pong"
	EventError               = "error"
)

type Envelope struct {
	Type      string          `json:"type"`
	RequestID string          `json:"requestId,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// Hub fans notification changes out to every open connection of the
// owning user.
type Hub struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu            sync.RWMutex
	clientsByID   map[string]*client
	clientsByUser map[int64]map[string]*client
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
		clientsByID:   make(map[string]*client),
		clientsByUser: make(map[int64]map[string]*client),
	}
}

// ServeWS upgrades the request and blocks until the connection closes. The
// caller has already resolved userID.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID int64) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("notification websocket upgrade failed", "error", err)
		return
	}

	client := &client{
		id:     uuid.NewString(),
		userID: userID,
		conn:   conn,
		hub:    h,
		send:   make(chan Envelope, 64),
		closed: make(chan struct{}),
	}

	h.register(client)
	h.logger.Debug("notification websocket connected", "user_id", userID, "client_id", client.id)
	client.enqueue(newEnvelope(EventReady, "", map[string]any{"userId": userID, "clientId": client.id}))
	go client.writeLoop()
	client.readLoop()
}

func (h *Hub) NotificationCreated(n model.Notification) {
	h.broadcast(n.UserID, newEnvelope(EventNotificationCreated, "", map[string]any{"notification": n}))
}

func (h *Hub) NotificationRead(n model.Notification) {
	h.broadcast(n.UserID, newEnvelope(EventNotificationRead, "", map[string]any{"notification": n}))
}

func (h *Hub) Connections(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clientsByUser[userID])
}

func (h *Hub) broadcast(userID int64, envelope Envelope) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clientsByUser[userID] {
		client.enqueue(envelope)
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clientsByID[c.id] = c
	user := h.clientsByUser[c.userID]
	if user == nil {
		user = make(map[string]*client)
		h.clientsByUser[c.userID] = user
	}
	user[c.id] = c
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clientsByID, c.id)
	user := h.clientsByUser[c.userID]
	if user == nil {
		return
	}
	delete(user, c.id)
	if len(user) == 0 {
		delete(h.clientsByUser, c.userID)
	}
}

type client struct {
	id     string
	userID int64
	conn   *websocket.Conn
	hub    *Hub
	send   chan Envelope

	closeOnce sync.Once
	closed    chan struct{}
}

func (c *client) readLoop() {
	defer c.close()
	_ = c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		var envelope Envelope
		if err := c.conn.ReadJSON(&envelope); err != nil {
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		c.handleEnvelope(envelope)
	}
}

func (c *client) handleEnvelope(envelope Envelope) {
	switch envelope.Type {
	case EventPing:
		c.enqueue(newEnvelope(EventPong, envelope.RequestID, map[string]any{"ts": time.Now().UTC().Format(time.RFC3339Nano)}))
	default:
		c.enqueue(errorEnvelope(envelope.RequestID, "unsupported realtime event"))
	}
}

func (c *client) writeLoop() {
	ticker := time.NewTicker(25 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case envelope, ok := <-c.send:
			if !ok {
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteJSON(envelope); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(10*time.Second)); err != nil {
				return
			}
		case <-c.closed:
			return
		}
	}
}

// enqueue drops the envelope when the client is not keeping up.
func (c *client) enqueue(envelope Envelope) {
	select {
	case c.send <- envelope:
	default:
		c.hub.logger.Debug("notification websocket queue full", "client_id", c.id)
	}
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		c.hub.unregister(c)
		close(c.closed)
		close(c.send)
		_ = c.conn.Close()
		c.hub.logger.Debug("notification websocket closed", "user_id", c.userID, "client_id", c.id)
	})
}

func newEnvelope(eventType string, requestID string, payload any) Envelope {
	rawPayload := json.RawMessage("{}")
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err == nil {
			rawPayload = encoded
		}
	}
	return Envelope{
		Type:      eventType,
		RequestID: requestID,
		Payload:   rawPayload,
	}
}

func errorEnvelope(requestID string, message string) Envelope {
	return newEnvelope(EventError, requestID, map[string]any{"error": message})
}
