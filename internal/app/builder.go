package app

import (
	"go.trai.ch/capigrow/internal/core/domain"
	"go.trai.ch/capigrow/internal/core/ports"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App      *App
	Logger   ports.Logger
	Config   *domain.Config
	Sessions ports.SessionStore
}
