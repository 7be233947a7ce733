package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// FileBackend persists one JSON file per key under a data directory —
// the process-local equivalent of a browser profile. Writes go through a
// temp file + rename so a crash mid-write leaves the previous value
// intact (a torn write would otherwise surface as a corrupt read).
type FileBackend struct {
	dir string
}

func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create data dir: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

func (b *FileBackend) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(b.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrAbsent
	}
	return data, err
}

func (b *FileBackend) Put(key string, data []byte) error {
	path := b.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		if isNoSpace(err) {
			os.Remove(tmp)
			return ErrFull
		}
		return err
	}
	return os.Rename(tmp, path)
}

func (b *FileBackend) Delete(key string) error {
	err := os.Remove(b.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return ErrAbsent
	}
	return err
}

// path flattens the key into a single file name; the namespace separator
// must not become a directory separator or an invalid file name.
func (b *FileBackend) path(key string) string {
	name := strings.NewReplacer(":", "_", "/", "_").Replace(key)
	return filepath.Join(b.dir, name+".json")
}

func isNoSpace(err error) bool {
	return errors.Is(err, syscall.ENOSPC) || errors.Is(err, syscall.EDQUOT)
}
