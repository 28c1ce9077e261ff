package uistate

import (
	"cmp"
	"slices"

	"go.trai.ch/capigrow/internal/core/domain"
)

// SortOrder orders the investment catalogue on screen.
type SortOrder string

// Sort orders.
const (
	SortRecommended SortOrder = "recommended"
	SortHighestRate SortOrder = "rate"
	SortLowestMin   SortOrder = "min_amount"
	SortShortest    SortOrder = "duration"
)

// InvestmentFilterState is the catalogue screen's filter bar.
type InvestmentFilterState struct {
	Category  string
	RiskLevel string
	Search    string
	Sort      SortOrder
}

// Filter returns the server-side part of the state.
func (s InvestmentFilterState) Filter() domain.InvestmentFilter {
	return domain.InvestmentFilter{Category: s.Category, RiskLevel: s.RiskLevel}
}

// InvestmentFilters is the catalogue screen's state store.
type InvestmentFilters struct {
	*Store[InvestmentFilterState]
}

// NewInvestmentFilters creates the store with no filters and the recommended order.
func NewInvestmentFilters() *InvestmentFilters {
	return &InvestmentFilters{NewStore(func() InvestmentFilterState {
		return InvestmentFilterState{Sort: SortRecommended}
	})}
}

// SetCategory selects a category. Empty selects all.
func (f *InvestmentFilters) SetCategory(category string) {
	f.Update(func(s *InvestmentFilterState) { s.Category = category })
}

// SetRiskLevel selects a risk level. Empty selects all.
func (f *InvestmentFilters) SetRiskLevel(level string) {
	f.Update(func(s *InvestmentFilterState) { s.RiskLevel = level })
}

// SetSearch sets the search text.
func (f *InvestmentFilters) SetSearch(text string) {
	f.Update(func(s *InvestmentFilterState) { s.Search = text })
}

// SetSort sets the display order.
func (f *InvestmentFilters) SetSort(order SortOrder) {
	f.Update(func(s *InvestmentFilterState) { s.Sort = order })
}

// SortInvestments returns a copy of list in order. SortRecommended and unknown orders keep
// the server's order.
func SortInvestments(list []domain.Investment, order SortOrder) []domain.Investment {
	out := slices.Clone(list)
	switch order {
	case SortHighestRate:
		slices.SortStableFunc(out, func(a, b domain.Investment) int { return cmp.Compare(b.AnnualRate, a.AnnualRate) })
	case SortLowestMin:
		slices.SortStableFunc(out, func(a, b domain.Investment) int { return cmp.Compare(a.MinAmount, b.MinAmount) })
	case SortShortest:
		slices.SortStableFunc(out, func(a, b domain.Investment) int { return cmp.Compare(a.DurationDays, b.DurationDays) })
	}
	return out
}
