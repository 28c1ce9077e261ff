package query

import "go.trai.ch/capigrow/internal/core/domain"

type nopObserver struct{}

func (nopObserver) CacheHit(domain.CacheKey)                   {}
func (nopObserver) FetchCompleted(domain.CacheKey, int, error) {}
func (nopObserver) Invalidated(domain.CacheKey, int)           {}
func (nopObserver) MutationCompleted(string, int, error)       {}
