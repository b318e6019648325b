package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/healthscript/healthscript-backend/internal/api"
	"github.com/healthscript/healthscript-backend/internal/app"
	"github.com/healthscript/healthscript-backend/internal/auth"
	"github.com/healthscript/healthscript-backend/internal/model"
	"github.com/healthscript/healthscript-backend/internal/realtime"
	"github.com/healthscript/healthscript-backend/internal/store"
)

func startServer(t *testing.T) string {
	t.Helper()
	repo := store.NewMemory()
	hash, err := auth.HashPassword(store.DemoPassword)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if err := store.SeedDemoData(context.Background(), repo, hash, time.Now()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	server := api.NewServer(app.Config{
		Environment:       "test",
		JWTSecret:         "cli-secret",
		TokenTTL:          time.Hour,
		CORSOrigins:       []string{"*"},
		RateLimitRequests: 1000,
		RateLimitWindow:   time.Minute,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)), repo)
	ts := httptest.NewServer(server.Router())
	t.Cleanup(ts.Close)
	return ts.URL + "/api"
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), err
}

func TestCLISessionFlow(t *testing.T) {
	apiURL := startServer(t)
	tokenFile := filepath.Join(t.TempDir(), "token")
	global := []string{"-api-url", apiURL, "-token-file", tokenFile}

	out, err := runCLI(t, append(global, "login", "-email", store.DemoEmail, "-password", store.DemoPassword)...)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.Contains(out, "Signed in as John Doe") {
		t.Fatalf("unexpected login output: %q", out)
	}

	out, err = runCLI(t, append(global, "prescriptions", "-status", "Active")...)
	if err != nil {
		t.Fatalf("list prescriptions: %v", err)
	}
	if !strings.Contains(out, "Amoxicillin") || !strings.Contains(out, "2 total") {
		t.Fatalf("unexpected prescriptions output: %q", out)
	}

	out, err = runCLI(t, append(global, "stats")...)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !strings.Contains(out, "Health score") {
		t.Fatalf("unexpected stats output: %q", out)
	}

	if _, err := runCLI(t, append(global, "logout")...); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := runCLI(t, append(global, "prescriptions", "get", "abc")...); err == nil {
		t.Fatalf("expected invalid id to fail")
	}
}

func TestRealtimeURL(t *testing.T) {
	got, err := realtimeURL("https://api.example.com/api/", "a.b.c")
	if err != nil {
		t.Fatalf("realtime url: %v", err)
	}
	if got != "wss://api.example.com/api/realtime?token=a.b.c" {
		t.Fatalf("unexpected url: %s", got)
	}
	if _, err := realtimeURL("ftp://example.com", "x"); err == nil {
		t.Fatalf("expected unsupported scheme to fail")
	}
}

func TestPrintEventFormatsNotifications(t *testing.T) {
	payload, _ := json.Marshal(map[string]any{"notification": model.Notification{
		ID: 7, Title: "Refill ready", Message: "Pick up today", Type: "refill", Priority: "high",
	}})
	var out bytes.Buffer
	printEvent(&out, realtime.Envelope{Type: realtime.EventNotificationCreated, Payload: payload})

	if got := out.String(); got != "[new] #7 Refill ready (refill, high priority): Pick up today\n" {
		t.Fatalf("unexpected event line: %q", got)
	}
}
