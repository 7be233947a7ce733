// Package store owns the persisted operational state. It is the single
// source of truth: views and services never keep a long-lived mutable
// copy that is not re-validated against a fresh read.
//
// A Store is constructed once per process with an injected Backend — no
// package-level state — so tests substitute an in-memory backend.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/europeuzinho/sitechama-ops/internal/apperror"
	"github.com/europeuzinho/sitechama-ops/internal/bus"
)

// Backend is the raw byte persistence under the Store. ErrAbsent marks a
// missing key; ErrFull marks an out-of-space condition.
type Backend interface {
	Get(key string) ([]byte, error)
	Put(key string, data []byte) error
	Delete(key string) error
}

var (
	// ErrAbsent is returned by Backend.Get for keys never written.
	ErrAbsent = errors.New("store: key absent")
	// ErrFull is returned by Backend.Put when the underlying storage is
	// out of space.
	ErrFull = errors.New("store: storage full")
)

// Store serializes values to JSON, persists them through the Backend and
// announces every successful write on the change bus.
type Store struct {
	backend Backend
	bus     bus.Bus
}

func New(backend Backend, b bus.Bus) *Store {
	return &Store{backend: backend, bus: b}
}

// Read deserializes the value under key into v and reports whether a
// usable value was found. Absent keys and corrupt JSON both read as
// "not found": corrupted state must never take a workstation down, so
// the caller falls back to its zero value. The corruption is logged.
func (s *Store) Read(key string, v any) bool {
	data, err := s.backend.Get(key)
	if err != nil {
		if !errors.Is(err, ErrAbsent) {
			log.Warn().Err(err).Str("key", key).Msg("store: read failed, using default")
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("store: corrupt value, using default")
		return false
	}
	return true
}

// Write serializes v, persists it and publishes the change topic mapped
// to the key. A full backend maps to apperror.ErrArmazenamentoCheio so
// callers can show a "could not save" notice while keeping prior state.
func (s *Store) Write(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: marshal %s: %w", key, err)
	}
	if err := s.backend.Put(key, data); err != nil {
		if errors.Is(err, ErrFull) {
			return fmt.Errorf("store: write %s: %w", key, apperror.ErrArmazenamentoCheio)
		}
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	if topic := TopicForKey(key); topic != "" {
		if err := s.bus.Publish(ctx, topic); err != nil {
			// The write itself succeeded; subscribers converge on their
			// ticker fallback.
			log.Warn().Err(err).Str("topic", topic).Msg("store: publish failed")
		}
	}
	return nil
}

// Delete removes the value under key. Missing keys are not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.backend.Delete(key); err != nil && !errors.Is(err, ErrAbsent) {
		return fmt.Errorf("store: delete %s: %w", key, err)
	}
	if topic := TopicForKey(key); topic != "" {
		if err := s.bus.Publish(ctx, topic); err != nil {
			log.Warn().Err(err).Str("topic", topic).Msg("store: publish failed")
		}
	}
	return nil
}
