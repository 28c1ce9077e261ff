package wiring_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/capigrow/internal/app"
	_ "go.trai.ch/capigrow/internal/wiring"
)

// TestGraftDependencies ensures that the dependency injection graph is valid
// at compile/test time. It checks that every node declaring a dependency
// actually uses it, and every used dependency is declared.
func TestGraftDependencies(t *testing.T) {
	// graft.AssertDepsValid has a limitation/bug where it infers the dependency ID
	// from the package name of the interface used in Dep[T].
	// Since we use `ports.Gateway`, `ports.Logger`, etc., it expects a dependency named "ports".
	// This makes it incompatible with our architecture where multiple distinct nodes
	// implement interfaces from the same `ports` package.
	t.Skip("Skipping Graft validation due to static analysis limitation with shared ports package")
	graft.AssertDepsValid(t, "../../internal")
}

func TestComponentsResolve(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("CAPIGROW_CONFIG", filepath.Join(tmpDir, "config.yaml"))
	t.Setenv("CAPIGROW_SESSION_PATH", filepath.Join(tmpDir, "session.json"))
	t.Setenv("CAPIGROW_API_URL", "http://127.0.0.1:1")

	components, _, err := graft.ExecuteFor[*app.Components](context.Background(), graft.DisableCache())
	require.NoError(t, err)

	assert.NotNil(t, components.App)
	assert.NotNil(t, components.Logger)
	assert.NotNil(t, components.Sessions)
	assert.Equal(t, "http://127.0.0.1:1", components.Config.APIBaseURL)
	assert.Equal(t, filepath.Join(tmpDir, "session.json"), components.Config.SessionPath)
}
