package realtime

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/healthscript/healthscript-backend/internal/model"
)

func dialHub(t *testing.T, hub *Hub, userID int64) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, userID)
	}))
	t.Cleanup(ts.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial websocket: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if env := readEnvelope(t, conn); env.Type != EventReady {
		t.Fatalf("expected ready event, got %s", env.Type)
	}
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var env Envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read envelope: %v", err)
	}
	return env
}

func TestNotificationEventsReachOwnerOnly(t *testing.T) {
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	owner := dialHub(t, hub, 1)
	stranger := dialHub(t, hub, 2)

	hub.NotificationCreated(model.Notification{ID: 9, UserID: 1, Title: "Refill"})

	env := readEnvelope(t, owner)
	if env.Type != EventNotificationCreated {
		t.Fatalf("expected created event, got %s", env.Type)
	}
	var payload struct {
		Notification model.Notification `json:"notification"`
	}
	if err := json.Unmarshal(env.Payload, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.Notification.ID != 9 {
		t.Fatalf("unexpected notification id %d", payload.Notification.ID)
	}

	// The other user only sees its own traffic: a ping answered by pong.
	if err := stranger.WriteJSON(Envelope{Type: EventPing, RequestID: "r1"}); err != nil {
		t.Fatalf("write ping: %v", err)
	}
	env = readEnvelope(t, stranger)
	if env.Type != EventPong || env.RequestID != "r1" {
		t.Fatalf("expected pong for r1, got %s/%s", env.Type, env.RequestID)
	}
}

func TestUnknownEventGetsError(t *testing.T) {
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	conn := dialHub(t, hub, 3)
	if hub.Connections(3) != 1 {
		t.Fatalf("expected one registered connection")
	}

	if err := conn.WriteJSON(Envelope{Type: "subscribe"}); err != nil {
		t.Fatalf("write event: %v", err)
	}
	if env := readEnvelope(t, conn); env.Type != EventError {
		t.Fatalf("expected error event, got %s", env.Type)
	}
}
