package ports

import "go.trai.ch/capigrow/internal/core/domain"

// QueryObserver receives cache and write events from the query and mutation engines.
//
//go:generate go run go.uber.org/mock/mockgen -source=observer.go -destination=mocks/mock_observer.go -package=mocks
type QueryObserver interface {
	// CacheHit is called when a read is served without fetching.
	CacheHit(key domain.CacheKey)
	// FetchCompleted is called once per fetch, after its last attempt.
	FetchCompleted(key domain.CacheKey, attempts int, err error)
	// Invalidated is called after a prefix invalidation with the number of slots marked.
	Invalidated(prefix domain.CacheKey, count int)
	// MutationCompleted is called once per write, after its last attempt.
	MutationCompleted(name string, attempts int, err error)
}
