package mutation

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/capigrow/internal/adapters/config" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/capigrow/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/capigrow/internal/core/domain"
	"go.trai.ch/capigrow/internal/core/ports"
	"go.trai.ch/capigrow/internal/engine/query"
)

// NodeID is the unique identifier for the mutation runner Graft node.
const NodeID graft.ID = "engine.mutation"

func init() {
	graft.Register(graft.Node[*Runner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.SettingsNodeID,
			logger.NodeID,
			query.NodeID,
		},
		Run: func(ctx context.Context) (*Runner, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			client, err := graft.Dep[*query.Client](ctx)
			if err != nil {
				return nil, err
			}

			return NewRunner(client, log, cfg.WriteAttempts), nil
		},
	})
}
