package ports

import (
	"context"

	"go.trai.ch/capigrow/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Telemetry records units of work (remote fetches and writes) for progress display.
type Telemetry interface {
	// Record starts a new vertex named after the unit of work.
	Record(ctx context.Context, name string) (context.Context, Vertex)

	// Close flushes and closes the recording session.
	Close() error
}

// Vertex is one recorded unit of work.
type Vertex interface {
	// Log records a message against the vertex.
	Log(level domain.LogLevel, msg string)
	// Cached marks the vertex as served from cache.
	Cached()
	// Complete marks the vertex as finished, successfully when err is nil.
	Complete(err error)
}
