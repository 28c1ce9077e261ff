package gateway

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/capigrow/internal/adapters/config"
	"go.trai.ch/capigrow/internal/adapters/logger"
	"go.trai.ch/capigrow/internal/adapters/session"
	"go.trai.ch/capigrow/internal/core/domain"
	"go.trai.ch/capigrow/internal/core/ports"
)

// NodeID is the unique identifier for the gateway Graft node.
const NodeID graft.ID = "adapter.gateway"

func init() {
	graft.Register(graft.Node[ports.Gateway]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID, session.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Gateway, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			sessions, err := graft.Dep[ports.SessionStore](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(OptionsFromConfig(cfg), sessions, log), nil
		},
	})
}
