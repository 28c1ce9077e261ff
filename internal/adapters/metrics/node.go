package metrics

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/capigrow/internal/core/ports"
)

// NodeID is the unique identifier for the metrics collector Graft node.
const NodeID graft.ID = "adapter.metrics"

// CollectorNodeID exposes the concrete collector for callers that read the counters.
const CollectorNodeID graft.ID = "adapter.metrics_collector"

func init() {
	graft.Register(graft.Node[*Collector]{
		ID:        CollectorNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Collector, error) {
			return NewCollector(), nil
		},
	})

	graft.Register(graft.Node[ports.QueryObserver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{CollectorNodeID},
		Run: func(ctx context.Context) (ports.QueryObserver, error) {
			c, err := graft.Dep[*Collector](ctx)
			if err != nil {
				return nil, err
			}
			return c, nil
		},
	})
}
