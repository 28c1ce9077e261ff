// Package investments reads the product catalogue and the user's portfolio, and places
// and redeems investments.
package investments

import (
	"context"
	"net/http"
	"net/url"

	"go.trai.ch/capigrow/internal/core/domain"
	"go.trai.ch/capigrow/internal/engine/mutation"
	"go.trai.ch/capigrow/internal/resources/resource"
	"go.trai.ch/capigrow/internal/resources/transactions"
)

// Keys identifying catalogue and portfolio reads.
var (
	// All is the prefix of every catalogue entry.
	All = domain.Key(domain.ResourceInvestments)
	// PortfolioKey addresses the user's portfolio.
	PortfolioKey = domain.Key(domain.ResourcePortfolio)
)

// ListKey addresses the catalogue narrowed by filter.
func ListKey(filter domain.InvestmentFilter) domain.CacheKey {
	return All.Append(domain.Text("list"), domain.Object(filter.Fields()))
}

// DetailKey addresses a single product.
func DetailKey(id string) domain.CacheKey {
	return All.Append(domain.Text("detail"), domain.Text(id))
}

// Service exposes catalogue and portfolio reads and the investment writes.
type Service struct {
	deps *resource.Deps
}

// New creates a Service.
func New(deps *resource.Deps) *Service {
	return &Service{deps: deps}
}

// List returns the catalogue narrowed by filter.
func (s *Service) List(ctx context.Context, filter domain.InvestmentFilter) domain.QueryResult[[]domain.Investment] {
	return resource.Read(ctx, s.deps, ListKey(filter),
		resource.Get[[]domain.Investment](s.deps.Gateway, "/investments", filter.Fields()))
}

// Get returns one product. The read is disabled for an empty id.
func (s *Service) Get(ctx context.Context, id string) domain.QueryResult[domain.Investment] {
	return resource.Read(ctx, s.deps, DetailKey(id),
		resource.Get[domain.Investment](s.deps.Gateway, "/investments/"+url.PathEscape(id), nil),
		s.deps.EnabledIf(id != ""))
}

// Portfolio returns the user's holdings and balances.
func (s *Service) Portfolio(ctx context.Context) domain.QueryResult[domain.Portfolio] {
	return resource.Read(ctx, s.deps, PortfolioKey,
		resource.Get[domain.Portfolio](s.deps.Gateway, "/portfolio", nil))
}

// affected are the prefixes a money movement makes stale.
func affected() mutation.Option {
	return mutation.Invalidates(All, PortfolioKey, transactions.All)
}

// Invest subscribes to a product.
func (s *Service) Invest(ctx context.Context, req domain.InvestRequest) domain.MutationResult[domain.Transaction] {
	return mutation.Submit(ctx, s.deps.Mutations, &req,
		resource.Send[*domain.InvestRequest, domain.Transaction](s.deps.Gateway, http.MethodPost, "/investments/invest"),
		mutation.Name("investments.invest"),
		affected(),
	)
}

// Withdraw redeems all or part of a holding.
func (s *Service) Withdraw(ctx context.Context, req domain.WithdrawRequest) domain.MutationResult[domain.Transaction] {
	return mutation.Submit(ctx, s.deps.Mutations, &req,
		resource.Send[*domain.WithdrawRequest, domain.Transaction](s.deps.Gateway, http.MethodPost, "/investments/withdraw"),
		mutation.Name("investments.withdraw"),
		affected(),
	)
}

// WatchPortfolio calls fn whenever the cached portfolio is invalidated.
func (s *Service) WatchPortfolio(fn func(domain.CacheKey)) (cancel func()) {
	return s.deps.Query.Subscribe(PortfolioKey, fn)
}

// ExpirePortfolio marks the cached portfolio for refetch.
func (s *Service) ExpirePortfolio() int {
	return s.deps.Query.Invalidate(PortfolioKey)
}
