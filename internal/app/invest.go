package app

import (
	"context"
	"slices"

	"go.trai.ch/capigrow/internal/core/domain"
	"go.trai.ch/capigrow/internal/uistate"
	"go.trai.ch/zerr"
)

// Portfolio returns the user's holdings and balances.
func (a *App) Portfolio(ctx context.Context) (domain.Portfolio, error) {
	return value(a.logger, a.svc.Investments.Portfolio(ctx))
}

// Investments returns the catalogue as the filter bar describes it. With search text the
// catalogue is ranked by match and narrowed locally. Without it the server filters.
func (a *App) Investments(ctx context.Context, filters uistate.InvestmentFilterState) ([]domain.Investment, error) {
	if filters.Search == "" {
		list, err := value(a.logger, a.svc.Investments.List(ctx, filters.Filter()))
		if err != nil {
			return nil, err
		}
		return uistate.SortInvestments(list, filters.Sort), nil
	}

	ranked, err := value(a.logger, a.svc.Investments.Search(ctx, filters.Search))
	if err != nil {
		return nil, err
	}
	f := filters.Filter()
	ranked = slices.DeleteFunc(slices.Clone(ranked), func(inv domain.Investment) bool {
		return (f.Category != "" && inv.Category != f.Category) ||
			(f.RiskLevel != "" && inv.RiskLevel != f.RiskLevel)
	})
	if filters.Sort != uistate.SortRecommended {
		ranked = uistate.SortInvestments(ranked, filters.Sort)
	}
	return ranked, nil
}

// Investment returns one product.
func (a *App) Investment(ctx context.Context, id string) (domain.Investment, error) {
	if err := requireID("investment", id); err != nil {
		return domain.Investment{}, err
	}
	return value(a.logger, a.svc.Investments.Get(ctx, id))
}

// Invest subscribes to a product.
func (a *App) Invest(ctx context.Context, req domain.InvestRequest) (domain.Transaction, error) {
	return outcome(a.svc.Investments.Invest(ctx, req))
}

// Withdraw redeems from a holding. The holding must be in the portfolio.
func (a *App) Withdraw(ctx context.Context, req domain.WithdrawRequest) (domain.Transaction, error) {
	p, err := a.Portfolio(ctx)
	if err != nil {
		return domain.Transaction{}, err
	}
	if !slices.ContainsFunc(p.Holdings, func(h domain.Holding) bool { return h.ID == req.HoldingID }) {
		return domain.Transaction{}, zerr.With(zerr.Wrap(domain.ErrNotFound, "holding not in portfolio"), "holding", req.HoldingID)
	}
	return outcome(a.svc.Investments.Withdraw(ctx, req))
}
