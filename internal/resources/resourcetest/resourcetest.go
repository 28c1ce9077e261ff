// Package resourcetest wires resource services against the in-memory mock backend.
package resourcetest

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/cenkalti/backoff/v5"
	"go.trai.ch/capigrow/internal/adapters/gateway"
	"go.trai.ch/capigrow/internal/adapters/logger"
	"go.trai.ch/capigrow/internal/adapters/metrics"
	"go.trai.ch/capigrow/internal/adapters/mockapi"
	"go.trai.ch/capigrow/internal/adapters/session"
	"go.trai.ch/capigrow/internal/core/domain"
	"go.trai.ch/capigrow/internal/engine/mutation"
	"go.trai.ch/capigrow/internal/engine/query"
	"go.trai.ch/capigrow/internal/resources/resource"
)

// Env is a fully wired resource stack talking to a mock backend over HTTP.
type Env struct {
	Backend  *mockapi.Server
	Sessions *session.Store
	Metrics  *metrics.Collector
	Deps     *resource.Deps
}

// New starts a mock backend and wires a signed-out stack against it. Retries run without
// delay.
func New(t testing.TB) *Env {
	t.Helper()

	backend := mockapi.New()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	log := logger.NewWithWriter(io.Discard)
	sessions := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	collector := metrics.NewCollector()

	gw := gateway.New(gateway.Options{BaseURL: srv.URL, HTTPClient: srv.Client()}, sessions, log)
	client := query.NewClient(log, collector, nil, query.Settings{
		Backoff: func() backoff.BackOff { return &backoff.ZeroBackOff{} },
	})

	return &Env{
		Backend:  backend,
		Sessions: sessions,
		Metrics:  collector,
		Deps: &resource.Deps{
			Gateway:   gw,
			Query:     client,
			Mutations: mutation.NewRunner(client, log, 0),
			Sessions:  sessions,
			Logger:    log,
		},
	}
}

// SignIn logs the demo account in and stores its session.
func (e *Env) SignIn(t testing.TB) domain.Session {
	t.Helper()

	tokens, err := resource.Call[domain.AuthTokens](context.Background(), e.Deps.Gateway, domain.APIRequest{
		Method:    http.MethodPost,
		Path:      "/auth/login",
		Body:      domain.LoginRequest{Email: mockapi.DemoEmail, Password: mockapi.DemoPassword},
		Anonymous: true,
	})
	if err != nil {
		t.Fatalf("sign in failed: %v", err)
	}
	sess := domain.NewSession(tokens)
	if err := e.Sessions.Save(sess); err != nil {
		t.Fatalf("saving session failed: %v", err)
	}
	return sess
}

// Hits returns the number of requests the backend served on route, e.g. "GET /portfolio".
func (e *Env) Hits(route string) int {
	return e.Backend.Hits(route)
}
