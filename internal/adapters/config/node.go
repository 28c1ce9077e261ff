package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/capigrow/internal/adapters/logger"
	"go.trai.ch/capigrow/internal/core/domain"
	"go.trai.ch/capigrow/internal/core/ports"
)

// NodeID is the unique identifier for the configuration loader Graft node.
const NodeID graft.ID = "adapter.config_loader"

// SettingsNodeID is the unique identifier for the resolved configuration Graft node.
const SettingsNodeID graft.ID = "adapter.config_settings"

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})

	graft.Register(graft.Node[*domain.Config]{
		ID:        SettingsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*domain.Config, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			cfg, err := loader.Load(DefaultPath())
			if err != nil {
				return nil, err
			}
			if l, ok := log.(interface{ SetLevel(domain.LogLevel) }); ok {
				l.SetLevel(cfg.LogLevel)
			}
			return cfg, nil
		},
	})
}
