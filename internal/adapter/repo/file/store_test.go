package filestore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"idletycoon/internal/app/ports"
)

func TestStoreRoundTrip(t *testing.T) {
	s, err := NewStore(filepath.Join(t.TempDir(), "saves"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()
	payload := []byte(`{"money":100,"items":[]}`)

	if err := s.Put(ctx, "tycoon_save_v4", payload); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := s.Get(ctx, "tycoon_save_v4")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("payload mismatch: got=%q want=%q", got, payload)
	}

	raw, err := os.ReadFile(filepath.Join(s.Dir, "tycoon_save_v4.json.zst"))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(raw) == string(payload) {
		t.Fatalf("expected compressed bytes on disk")
	}
	if _, err := os.Stat(filepath.Join(s.Dir, "tycoon_save_v4.json.zst.tmp")); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}

func TestStoreOverwrite(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()
	if err := s.Put(ctx, "k", []byte("first")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Put(ctx, "k", []byte("second")); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "second" {
		t.Fatalf("expected overwrite, got %q", got)
	}
}

func TestStoreMissingKey(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, err := s.Get(context.Background(), "tycoon_save_v3"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreRejectsPathTraversal(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	for _, key := range []string{"../escape", "a/b", "", ".."} {
		if err := s.Put(context.Background(), key, []byte("x")); !errors.Is(err, ErrInvalidKey) {
			t.Fatalf("key %q: expected ErrInvalidKey, got %v", key, err)
		}
	}
}

func TestStoreCorruptFile(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := os.WriteFile(filepath.Join(s.Dir, "bad.json.zst"), []byte("not zstd"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := s.Get(context.Background(), "bad"); err == nil || errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected decode error, got %v", err)
	}
}
