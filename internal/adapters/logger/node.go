package logger

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/capigrow/internal/core/domain"
	"go.trai.ch/capigrow/internal/core/ports"
)

// NodeID is the unique identifier for the logger Graft node.
const NodeID graft.ID = "adapter.logger"

// EnvLevel sets the level before the configuration is read, so that configuration
// loading itself can be traced. The resolved configuration may change it afterwards.
const EnvLevel = "CAPIGROW_LOG_LEVEL"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Logger, error) {
			lg := NewWithWriter(os.Stderr)
			if v := os.Getenv(EnvLevel); v != "" {
				lg.SetLevel(domain.ParseLogLevel(v))
			}
			return lg, nil
		},
	})
}
