package query

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/capigrow/internal/adapters/config"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/capigrow/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/capigrow/internal/adapters/metrics"            //nolint:depguard // Wired in engine wiring
	"go.trai.ch/capigrow/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/capigrow/internal/core/domain"
	"go.trai.ch/capigrow/internal/core/ports"
)

// NodeID is the unique identifier for the query client Graft node.
const NodeID graft.ID = "engine.query"

func init() {
	graft.Register(graft.Node[*Client]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.SettingsNodeID,
			logger.NodeID,
			metrics.NodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Client, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			observer, err := graft.Dep[ports.QueryObserver](ctx)
			if err != nil {
				return nil, err
			}

			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return NewClient(log, observer, tel, SettingsFromConfig(cfg)), nil
		},
	})
}
