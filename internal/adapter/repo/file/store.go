package filestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"idletycoon/internal/app/ports"

	"github.com/klauspost/compress/zstd"
)

var ErrInvalidKey = errors.New("invalid save key")

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

const fileSuffix = ".json.zst"

// Store keeps one zstd-compressed file per key under Dir. Writes go to a
// temp file first and are renamed into place.
type Store struct {
	Dir string
}

func NewStore(dir string) (Store, error) {
	if dir == "" {
		return Store{}, fmt.Errorf("empty save dir")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Store{}, fmt.Errorf("create save dir: %w", err)
	}
	return Store{Dir: dir}, nil
}

func (s Store) Get(_ context.Context, key string) ([]byte, error) {
	path, err := s.pathFor(key)
	if err != nil {
		return nil, err
	}
	compressed, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	out, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decode %s: %w", key, err)
	}
	return out, nil
}

func (s Store) Put(_ context.Context, key string, payload []byte) error {
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	compressed := enc.EncodeAll(payload, nil)
	if err := enc.Close(); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, compressed, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func (s Store) pathFor(key string) (string, error) {
	if !keyPattern.MatchString(key) || key == "." || key == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.Dir, key+fileSuffix), nil
}

var _ ports.SaveStore = Store{}
