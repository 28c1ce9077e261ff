package app

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"go.trai.ch/capigrow/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/zerr"
)

// ReportOptions select the diagnostics printed after a command.
type ReportOptions struct {
	// Trace prints one line per remote fetch and write.
	Trace bool
	// Stats prints the cache and write counters.
	Stats bool
}

// Report closes the telemetry session and writes the selected diagnostics to w.
func (a *App) Report(w io.Writer, opts ReportOptions) error {
	if a.recorder != nil {
		if err := a.recorder.Close(); err != nil {
			return zerr.Wrap(err, "failed to close telemetry")
		}
	}

	if opts.Trace && a.recorder != nil {
		if summary, ok := a.recorder.Writer().(*progrock.Summary); ok {
			if err := summary.Print(w); err != nil {
				return err
			}
		}
	}

	if opts.Stats && a.metrics != nil {
		counts, err := a.metrics.Counts()
		if err != nil {
			return zerr.Wrap(err, "failed to gather metrics")
		}
		for _, name := range slices.Sorted(maps.Keys(counts)) {
			if _, err := fmt.Fprintf(w, "%s %g\n", name, counts[name]); err != nil {
				return err
			}
		}
	}
	return nil
}
