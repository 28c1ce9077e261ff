package uistate

import "go.trai.ch/capigrow/internal/core/domain"

// TransactionFilterState is the history screen's filter bar.
type TransactionFilterState struct {
	Type   string
	Status string
	Period string
}

// Filter returns the state as a first-page server filter.
func (s TransactionFilterState) Filter() domain.TransactionFilter {
	return domain.TransactionFilter{Type: s.Type, Status: s.Status, Period: s.Period}
}

// TransactionFilters is the history screen's state store.
type TransactionFilters struct {
	*Store[TransactionFilterState]
}

// NewTransactionFilters creates the store with every filter cleared.
func NewTransactionFilters() *TransactionFilters {
	return &TransactionFilters{NewStore(func() TransactionFilterState { return TransactionFilterState{} })}
}

// SetType filters by transaction type.
func (f *TransactionFilters) SetType(kind string) {
	f.Update(func(s *TransactionFilterState) { s.Type = kind })
}

// SetStatus filters by transaction status.
func (f *TransactionFilters) SetStatus(status string) {
	f.Update(func(s *TransactionFilterState) { s.Status = status })
}

// SetPeriod filters by look-back window, e.g. "30d".
func (f *TransactionFilters) SetPeriod(period string) {
	f.Update(func(s *TransactionFilterState) { s.Period = period })
}
