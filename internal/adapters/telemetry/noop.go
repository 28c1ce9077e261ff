// Package telemetry holds the telemetry adapters. The progrock subpackage records work
// units for display; this package provides the no-op recorder.
package telemetry

import (
	"context"

	"go.trai.ch/capigrow/internal/core/domain"
	"go.trai.ch/capigrow/internal/core/ports"
)

// Noop is a ports.Telemetry that records nothing.
type Noop struct{}

// NewNoop creates a new Noop recorder.
func NewNoop() *Noop {
	return &Noop{}
}

// Record returns ctx unchanged and a vertex that discards everything.
func (n *Noop) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, NoopVertex{}
}

// Close does nothing.
func (n *Noop) Close() error {
	return nil
}

// NoopVertex is a no-op implementation of ports.Vertex.
type NoopVertex struct{}

// Log does nothing.
func (NoopVertex) Log(domain.LogLevel, string) {}

// Cached does nothing.
func (NoopVertex) Cached() {}

// Complete does nothing.
func (NoopVertex) Complete(error) {}
