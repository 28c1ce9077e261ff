// Package session persists the device-local authentication state as a JSON file.
package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/capigrow/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.SessionStore using a single JSON file readable only by the owner.
type Store struct {
	path string

	mu      sync.Mutex
	current *domain.Session
}

// NewStore creates a Store backed by the file at path. Nothing is read until Load.
func NewStore(path string) *Store {
	return &Store{path: filepath.Clean(path)}
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Load returns the stored session, or the zero Session when none is stored.
func (s *Store) Load() (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		return *s.current, nil
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.current = &domain.Session{}
			return domain.Session{}, nil
		}
		return domain.Session{}, zerr.With(zerr.Wrap(err, "failed to read session"), "path", s.path)
	}

	var sess domain.Session
	if len(data) > 0 {
		if err := json.Unmarshal(data, &sess); err != nil {
			return domain.Session{}, zerr.With(zerr.Wrap(err, "failed to parse session"), "path", s.path)
		}
	}
	s.current = &sess
	return sess, nil
}

// Save replaces the stored session. The file is written atomically.
func (s *Store) Save(sess domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal session")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create session directory"), "path", dir)
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return zerr.Wrap(err, "failed to create session file")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.Wrap(err, "failed to write session")
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return zerr.Wrap(err, "failed to set session permissions")
	}
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(err, "failed to write session")
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to replace session"), "path", s.path)
	}

	s.current = &sess
	return nil
}

// Clear removes the session file. Clearing an empty store is not an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, "failed to remove session"), "path", s.path)
	}
	s.current = &domain.Session{}
	return nil
}
