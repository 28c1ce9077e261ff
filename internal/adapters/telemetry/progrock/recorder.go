// Package progrock provides the Progrock implementation of the telemetry adapter.
package progrock

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/capigrow/internal/core/ports"
)

// Recorder implements the ports.Telemetry interface using the vito/progrock library.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder
	seq atomic.Uint64
}

// New creates a new Recorder writing to a Summary.
func New() *Recorder {
	return NewRecorder(NewSummary())
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Writer returns the writer the recorder sends status updates to.
func (r *Recorder) Writer() progrock.Writer {
	return r.w
}

// Record starts recording a new vertex. Every call gets its own vertex, even when
// the same unit of work is recorded repeatedly.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	d := digest.FromString(fmt.Sprintf("%s#%d", name, r.seq.Add(1)))
	return ctx, &Vertex{vertex: r.rec.Vertex(d, name)}
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	return r.w.Close()
}
