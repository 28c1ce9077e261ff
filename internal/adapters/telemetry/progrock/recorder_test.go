package progrock_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/capigrow/internal/adapters/telemetry/progrock"
	"go.trai.ch/capigrow/internal/core/domain"
)

func TestRecorder_Summary(t *testing.T) {
	summary := progrock.NewSummary()
	recorder := progrock.NewRecorder(summary)
	ctx := context.Background()

	_, fetch := recorder.Record(ctx, "fetch portfolio")
	fetch.Log(domain.LogLevelWarn, "attempt 1: server error")
	fetch.Complete(nil)

	_, hit := recorder.Record(ctx, "read portfolio")
	hit.Cached()
	hit.Complete(nil)

	_, failed := recorder.Record(ctx, "write invest")
	failed.Complete(errors.New("insufficient wallet balance"))

	_, again := recorder.Record(ctx, "fetch portfolio")
	again.Complete(nil)

	require.NoError(t, recorder.Close())

	entries := summary.Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, "fetch portfolio", entries[0].Name)
	assert.True(t, entries[0].Done)
	assert.True(t, entries[1].Cached)
	assert.Equal(t, "insufficient wallet balance", entries[2].Error)
	assert.Equal(t, "fetch portfolio", entries[3].Name)

	var out bytes.Buffer
	require.NoError(t, summary.Print(&out))
	assert.Contains(t, out.String(), "✘ write invest: insufficient wallet balance")
	assert.Contains(t, out.String(), "⚡ read portfolio")
}

func TestNew(t *testing.T) {
	recorder := progrock.New()
	assert.NotNil(t, recorder)
	assert.IsType(t, &progrock.Summary{}, recorder.Writer())
}
