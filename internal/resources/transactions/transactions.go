// Package transactions reads the user's transaction history.
package transactions

import (
	"context"
	"net/url"

	"go.trai.ch/capigrow/internal/core/domain"
	"go.trai.ch/capigrow/internal/resources/resource"
)

// All is the prefix of every transaction entry.
var All = domain.Key(domain.ResourceTransactions)

// ListKey addresses one page of history narrowed by filter.
func ListKey(filter domain.TransactionFilter) domain.CacheKey {
	return All.Append(domain.Text("list"), domain.Object(filter.Fields()))
}

// DetailKey addresses a single transaction.
func DetailKey(id string) domain.CacheKey {
	return All.Append(domain.Text("detail"), domain.Text(id))
}

// Service exposes transaction reads. Transactions are written by the server as a side
// effect of investment writes, which invalidate All.
type Service struct {
	deps *resource.Deps
}

// New creates a Service.
func New(deps *resource.Deps) *Service {
	return &Service{deps: deps}
}

// List returns one page of history narrowed by filter, newest first.
func (s *Service) List(ctx context.Context, filter domain.TransactionFilter) domain.QueryResult[[]domain.Transaction] {
	return resource.Read(ctx, s.deps, ListKey(filter),
		resource.Get[[]domain.Transaction](s.deps.Gateway, "/transactions", filter.Fields()))
}

// Get returns one transaction. The read is disabled for an empty id.
func (s *Service) Get(ctx context.Context, id string) domain.QueryResult[domain.Transaction] {
	return resource.Read(ctx, s.deps, DetailKey(id),
		resource.Get[domain.Transaction](s.deps.Gateway, "/transactions/"+url.PathEscape(id), nil),
		s.deps.EnabledIf(id != ""))
}
