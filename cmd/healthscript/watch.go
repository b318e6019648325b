package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/healthscript/healthscript-backend/internal/model"
	"github.com/healthscript/healthscript-backend/internal/realtime"
)

const watchPingInterval = 25 * time.Second

// realtimeURL turns the REST base URL into the notification feed URL.
func realtimeURL(apiURL, token string) (string, error) {
	parsed, err := url.Parse(apiURL)
	if err != nil {
		return "", err
	}
	switch parsed.Scheme {
	case "http":
		parsed.Scheme = "ws"
	case "https":
		parsed.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported api url scheme %q", parsed.Scheme)
	}
	parsed.Path = strings.TrimRight(parsed.Path, "/") + "/realtime"
	query := url.Values{}
	query.Set("token", token)
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

func (e *env) watch(ctx context.Context) error {
	token := e.api.Client.Tokens().Get()
	if token == "" {
		return errors.New("not signed in (run `healthscript login` first)")
	}
	endpoint, err := realtimeURL(e.opts.apiURL, token)
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return fmt.Errorf("notification feed dial failed: %w", err)
	}

	var writeMu sync.Mutex
	send := func(envelope realtime.Envelope) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		return conn.WriteJSON(envelope)
	}
	var closeOnce sync.Once
	shutdown := func() {
		closeOnce.Do(func() {
			writeMu.Lock()
			_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
			writeMu.Unlock()
			_ = conn.Close()
		})
	}
	defer shutdown()

	go func() {
		ticker := time.NewTicker(watchPingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				shutdown()
				return
			case <-ticker.C:
				if err := send(realtime.Envelope{Type: realtime.EventPing, RequestID: "ping_" + uuid.NewString()[:8]}); err != nil {
					e.logger.Debug("ping failed", "error", err)
					return
				}
			}
		}
	}()

	for {
		var envelope realtime.Envelope
		_ = conn.SetReadDeadline(time.Now().Add(2 * watchPingInterval))
		if err := conn.ReadJSON(&envelope); err != nil {
			if ctx.Err() != nil || isExpectedClose(err) {
				fmt.Fprintln(e.out, "Notification feed closed")
				return nil
			}
			return fmt.Errorf("notification feed read failed: %w", err)
		}
		printEvent(e.out, envelope)
	}
}

func printEvent(w io.Writer, envelope realtime.Envelope) {
	switch envelope.Type {
	case realtime.EventReady:
		fmt.Fprintln(w, "Watching notifications (Ctrl-C to stop)")
	case realtime.EventNotificationCreated, realtime.EventNotificationRead:
		var payload struct {
			Notification model.Notification `json:"notification"`
		}
		if err := json.Unmarshal(envelope.Payload, &payload); err != nil {
			fmt.Fprintf(w, "%s (unreadable payload)\n", envelope.Type)
			return
		}
		n := payload.Notification
		verb := "new"
		if envelope.Type == realtime.EventNotificationRead {
			verb = "read"
		}
		fmt.Fprintf(w, "[%s] #%d %s (%s, %s priority): %s\n", verb, n.ID, n.Title, n.Type, n.Priority, n.Message)
	case realtime.EventPong:
	case realtime.EventError:
		fmt.Fprintf(w, "server error: %s\n", string(envelope.Payload))
	default:
		fmt.Fprintf(w, "%s\n", envelope.Type)
	}
}

func isExpectedClose(err error) bool {
	if errors.Is(err, io.EOF) {
		return true
	}
	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) {
		return closeErr.Code == websocket.CloseNormalClosure || closeErr.Code == websocket.CloseGoingAway
	}
	return false
}
