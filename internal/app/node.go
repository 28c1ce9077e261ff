package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/capigrow/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/capigrow/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/capigrow/internal/adapters/metrics"            //nolint:depguard // Wired in app layer
	"go.trai.ch/capigrow/internal/adapters/session"            //nolint:depguard // Wired in app layer
	"go.trai.ch/capigrow/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/capigrow/internal/core/domain"
	"go.trai.ch/capigrow/internal/core/ports"
	"go.trai.ch/capigrow/internal/resources/auth"
	"go.trai.ch/capigrow/internal/resources/investments"
	"go.trai.ch/capigrow/internal/resources/notifications"
	"go.trai.ch/capigrow/internal/resources/profile"
	"go.trai.ch/capigrow/internal/resources/transactions"
	"go.trai.ch/capigrow/internal/resources/verification"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			auth.NodeID,
			profile.NodeID,
			investments.NodeID,
			transactions.NodeID,
			notifications.NodeID,
			verification.NodeID,
			logger.NodeID,
			metrics.CollectorNodeID,
			progrock.RecorderNodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.SettingsNodeID,
			session.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	var (
		svc Services
		err error
	)
	if svc.Auth, err = graft.Dep[*auth.Service](ctx); err != nil {
		return nil, err
	}
	if svc.Profile, err = graft.Dep[*profile.Service](ctx); err != nil {
		return nil, err
	}
	if svc.Investments, err = graft.Dep[*investments.Service](ctx); err != nil {
		return nil, err
	}
	if svc.Transactions, err = graft.Dep[*transactions.Service](ctx); err != nil {
		return nil, err
	}
	if svc.Notifications, err = graft.Dep[*notifications.Service](ctx); err != nil {
		return nil, err
	}
	if svc.Verification, err = graft.Dep[*verification.Service](ctx); err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	collector, err := graft.Dep[*metrics.Collector](ctx)
	if err != nil {
		return nil, err
	}

	recorder, err := graft.Dep[*progrock.Recorder](ctx)
	if err != nil {
		return nil, err
	}

	return New(svc, log, collector, recorder), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	cfg, err := graft.Dep[*domain.Config](ctx)
	if err != nil {
		return nil, err
	}

	sessions, err := graft.Dep[ports.SessionStore](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:      app,
		Logger:   log,
		Config:   cfg,
		Sessions: sessions,
	}, nil
}
