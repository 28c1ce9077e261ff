// Package resource holds the plumbing shared by the per-resource services: the engines,
// the gateway and the session they read the bearer token from.
package resource

import (
	"context"
	"net/http"
	"net/url"

	"go.trai.ch/capigrow/internal/core/domain"
	"go.trai.ch/capigrow/internal/core/ports"
	"go.trai.ch/capigrow/internal/engine/mutation"
	"go.trai.ch/capigrow/internal/engine/query"
)

// Deps bundles what every resource service needs.
type Deps struct {
	Gateway   ports.Gateway
	Query     *query.Client
	Mutations *mutation.Runner
	Sessions  ports.SessionStore
	Logger    ports.Logger
}

// Authenticated reports whether a bearer token is stored. Token-gated reads are
// disabled without one. A session that cannot be loaded counts as signed out.
func (d *Deps) Authenticated() bool {
	sess, err := d.Sessions.Load()
	if err != nil {
		d.Logger.Warn("session unavailable: " + err.Error())
		return false
	}
	return sess.HasToken()
}

// EnabledIf gates a read on cond as well as on a stored token.
func (d *Deps) EnabledIf(cond bool) query.Option {
	return query.Enabled(cond && d.Authenticated())
}

// Call sends req and decodes the payload into T.
func Call[T any](ctx context.Context, gw ports.Gateway, req domain.APIRequest) (T, error) {
	resp, err := gw.Call(ctx, req)
	if err != nil {
		var zero T
		return zero, err
	}
	return domain.DecodeAs[T](resp)
}

// Get returns a fetcher for a GET of path.
func Get[T any](gw ports.Gateway, path string, fields map[string]string) query.Fetcher[T] {
	req := domain.APIRequest{Method: http.MethodGet, Path: path}
	if len(fields) > 0 {
		req.Query = make(url.Values, len(fields))
		for k, v := range fields {
			req.Query.Set(k, v)
		}
	}
	return func(ctx context.Context) (T, error) {
		return Call[T](ctx, gw, req)
	}
}

// Send returns a sender that issues method on path with the request as JSON body.
func Send[Req, T any](gw ports.Gateway, method, path string) func(context.Context, Req) (T, error) {
	return func(ctx context.Context, body Req) (T, error) {
		return Call[T](ctx, gw, domain.APIRequest{Method: method, Path: path, Body: body})
	}
}

// Read runs a token-gated read of key. opts apply after the token gate, so a caller's
// Enabled replaces it.
func Read[T any](ctx context.Context, d *Deps, key domain.CacheKey, fetch query.Fetcher[T], opts ...query.Option) domain.QueryResult[T] {
	opts = append([]query.Option{query.Enabled(d.Authenticated())}, opts...)
	return query.Read(ctx, d.Query, key, fetch, opts...)
}
