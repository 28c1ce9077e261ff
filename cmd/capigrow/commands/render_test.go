package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderFields_EveryPair(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderFields(&buf, "A", "1", "B", "2", "C", "3"))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	for i, want := range [][2]string{{"A:", "1"}, {"B:", "2"}, {"C:", "3"}} {
		assert.Equal(t, []string{want[0], want[1]}, strings.Fields(lines[i]))
	}
}

func TestRenderFields_SinglePairAndEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderFields(&buf, "Status", "pending"))
	assert.Equal(t, []string{"Status:", "pending"}, strings.Fields(buf.String()))

	buf.Reset()
	require.NoError(t, renderFields(&buf))
	assert.Empty(t, buf.String())
}
