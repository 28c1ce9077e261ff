package transactions

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/capigrow/internal/resources/resource"
)

// NodeID is the unique identifier for the transactions service Graft node.
const NodeID graft.ID = "resource.transactions"

func init() {
	graft.Register(graft.Node[*Service]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{resource.NodeID},
		Run: func(ctx context.Context) (*Service, error) {
			deps, err := graft.Dep[*resource.Deps](ctx)
			if err != nil {
				return nil, err
			}
			return New(deps), nil
		},
	})
}
