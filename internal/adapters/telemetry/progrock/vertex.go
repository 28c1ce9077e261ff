package progrock

import (
	"fmt"
	"io"

	"github.com/vito/progrock"
	"go.trai.ch/capigrow/internal/core/domain"
)

// Vertex implements ports.Vertex for one fetch or write.
type Vertex struct {
	vertex *progrock.VertexRecorder
}

// Log writes msg to the vertex. Warnings and errors go to its stderr stream, so retry
// failures stay apart from progress lines.
func (v *Vertex) Log(level domain.LogLevel, msg string) {
	var w io.Writer = v.vertex.Stdout()
	if level >= domain.LogLevelWarn {
		w = v.vertex.Stderr()
	}
	_, _ = fmt.Fprintf(w, "[%s] %s\n", level, msg)
}

// Cached marks the vertex as served from the query cache.
func (v *Vertex) Cached() {
	v.vertex.Cached()
}

// Complete finishes the vertex; a non-nil err marks the request as failed.
func (v *Vertex) Complete(err error) {
	v.vertex.Done(err)
}
