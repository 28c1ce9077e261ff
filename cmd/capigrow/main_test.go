package main

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/capigrow/cmd/capigrow/commands"
	"go.trai.ch/capigrow/internal/adapters/mockapi"
)

// setupEnv points the client at a fresh mock backend with its files in a temp dir.
func setupEnv(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(mockapi.New())
	t.Cleanup(srv.Close)

	tmpDir := t.TempDir()
	t.Setenv("CAPIGROW_CONFIG", filepath.Join(tmpDir, "config.yaml"))
	t.Setenv("CAPIGROW_SESSION_PATH", filepath.Join(tmpDir, "session.json"))
	t.Setenv("CAPIGROW_API_URL", srv.URL)
	t.Setenv("CAPIGROW_READ_ATTEMPTS", "1")
	return tmpDir
}

func runWith(t *testing.T, args ...string) (int, string) {
	t.Helper()
	// Components are cached across executions; each run must build its own.
	graft.ResetDefaultCache()
	t.Cleanup(graft.ResetDefaultCache)

	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()
	os.Args = append([]string{"capigrow"}, args...)

	var out bytes.Buffer
	code := run(func(c *commands.CLI) { c.SetOutput(&out) })
	return code, out.String()
}

func TestRun(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		expectedExit int
	}{
		{name: "Version", args: []string{"version"}, expectedExit: 0},
		{name: "Help", args: []string{"--help"}, expectedExit: 0},
		{name: "Signed out read", args: []string{"portfolio"}, expectedExit: 1},
		{name: "Unknown command", args: []string{"frobnicate"}, expectedExit: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupEnv(t)
			exitCode, _ := runWith(t, tt.args...)
			assert.Equal(t, tt.expectedExit, exitCode)
		})
	}
}

func TestRun_SessionSurvivesRestart(t *testing.T) {
	tmpDir := setupEnv(t)

	code, out := runWith(t, "login", "--email", mockapi.DemoEmail, "--password", mockapi.DemoPassword)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Signed in as Ada Okafor")
	assert.FileExists(t, filepath.Join(tmpDir, "session.json"))

	code, out = runWith(t, "portfolio")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Treasury Bills")

	code, _ = runWith(t, "logout")
	assert.Equal(t, 0, code)
	assert.NoFileExists(t, filepath.Join(tmpDir, "session.json"))

	code, _ = runWith(t, "me")
	assert.Equal(t, 1, code)
}

func TestRun_ConfigError(t *testing.T) {
	tmpDir := setupEnv(t)

	configPath := filepath.Join(tmpDir, "config.yaml")
	err := os.WriteFile(configPath, []byte("api: [not, a, mapping"), 0o600)
	if err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	exitCode, _ := runWith(t, "me")
	assert.Equal(t, 1, exitCode)
}

func TestRun_ConfigFlag(t *testing.T) {
	tmpDir := setupEnv(t)

	broken := filepath.Join(tmpDir, "broken.yaml")
	err := os.WriteFile(broken, []byte("cache: {staleTime: soon"), 0o600)
	if err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	exitCode, _ := runWith(t, "version", "--config", broken)
	assert.Equal(t, 1, exitCode)

	exitCode, _ = runWith(t, "version", "-c", filepath.Join(tmpDir, "absent.yaml"))
	assert.Equal(t, 0, exitCode)
}
