package resource

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/capigrow/internal/adapters/gateway"
	"go.trai.ch/capigrow/internal/adapters/logger"
	"go.trai.ch/capigrow/internal/adapters/session"
	"go.trai.ch/capigrow/internal/core/ports"
	"go.trai.ch/capigrow/internal/engine/mutation"
	"go.trai.ch/capigrow/internal/engine/query"
)

// NodeID is the unique identifier for the shared resource dependencies Graft node.
const NodeID graft.ID = "resource.deps"

func init() {
	graft.Register(graft.Node[*Deps]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			gateway.NodeID,
			query.NodeID,
			mutation.NodeID,
			session.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Deps, error) {
			gw, err := graft.Dep[ports.Gateway](ctx)
			if err != nil {
				return nil, err
			}
			client, err := graft.Dep[*query.Client](ctx)
			if err != nil {
				return nil, err
			}
			runner, err := graft.Dep[*mutation.Runner](ctx)
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
			return &Deps{Gateway: gw, Query: client, Mutations: runner, Sessions: sessions, Logger: log}, nil
		},
	})
}
