package progrock

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/capigrow/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the telemetry adapter node.
	NodeID graft.ID = "adapter.telemetry"
	// RecorderNodeID exposes the concrete recorder for callers that print its summary.
	RecorderNodeID graft.ID = "adapter.telemetry_recorder"
)

func init() {
	graft.Register(graft.Node[*Recorder]{
		ID:        RecorderNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Recorder, error) {
			return New(), nil
		},
	})

	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{RecorderNodeID},
		Run: func(ctx context.Context) (ports.Telemetry, error) {
			rec, err := graft.Dep[*Recorder](ctx)
			if err != nil {
				return nil, err
			}
			return rec, nil
		},
	})
}
