package ports

import "go.trai.ch/capigrow/internal/core/domain"

// SessionStore persists authentication state on the device.
//
//go:generate go run go.uber.org/mock/mockgen -source=session.go -destination=mocks/mock_session.go -package=mocks
type SessionStore interface {
	// Load returns the stored session. A missing session is the zero Session, not an error.
	Load() (domain.Session, error)

	// Save replaces the stored session.
	Save(session domain.Session) error

	// Clear removes every persisted token and profile field.
	Clear() error
}
