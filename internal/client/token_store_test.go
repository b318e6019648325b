package client

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestFileTokenStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	store := NewFileTokenStore(path)

	if got := store.Get(); got != "" {
		t.Fatalf("missing file should read as empty, got %q", got)
	}
	if err := store.Set("first"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set("second"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := store.Get(); got != "second" {
		t.Fatalf("expected last write to win, got %q", got)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat token file: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0o600 {
			t.Fatalf("unexpected permissions: %o", perm)
		}
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got := store.Get(); got != "" {
		t.Fatalf("expected empty after clear, got %q", got)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("second clear should be a no-op: %v", err)
	}
}

func TestFileTokenStoreUnreadableDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()
	store := NewFileTokenStore(dir)
	if got := store.Get(); got != "" {
		t.Fatalf("reading a directory should degrade to empty, got %q", got)
	}
}

func TestMemoryTokenStore(t *testing.T) {
	store := NewMemoryTokenStore()
	_ = store.Set("token")
	if store.Get() != "token" {
		t.Fatalf("expected stored token")
	}
	_ = store.Clear()
	if store.Get() != "" {
		t.Fatalf("expected cleared token")
	}
}
