package domain

import (
	"strings"
	"time"
)

// QueryStatus is the lifecycle state of a cached read.
type QueryStatus string

const (
	// QueryIdle means no fetch has been attempted (or the read is disabled).
	QueryIdle QueryStatus = "idle"
	// QueryLoading means a fetch is in flight.
	QueryLoading QueryStatus = "loading"
	// QuerySuccess means the last fetch produced a value.
	QuerySuccess QueryStatus = "success"
	// QueryError means the last fetch failed after exhausting its attempts.
	QueryError QueryStatus = "error"
)

// NormalizeQueryStatus converts a string to a QueryStatus, defaulting to idle if unknown.
func NormalizeQueryStatus(s string) QueryStatus {
	switch strings.ToLower(s) {
	case string(QueryLoading):
		return QueryLoading
	case string(QuerySuccess):
		return QuerySuccess
	case string(QueryError):
		return QueryError
	default:
		return QueryIdle
	}
}

// QueryResult is a snapshot of one cache slot as seen by a reader.
type QueryResult[T any] struct {
	Data   T
	Status QueryStatus
	// Err is the last failure reason. It is kept alongside stale Data so callers
	// can show both the previous value and the error.
	Err error
	// UpdatedAt is when Data was last stored successfully.
	UpdatedAt time.Time
	// FailureCount is the number of failed attempts of the most recent fetch.
	FailureCount int
	// Stale reports whether the slot was expired at the time of the read.
	Stale bool
	// Fetched reports whether this read invoked (or joined) a fetch.
	Fetched bool
}

// HasData reports whether the result carries a value from a successful fetch.
func (r QueryResult[T]) HasData() bool {
	return !r.UpdatedAt.IsZero()
}

// MutationStatus is the outcome of a write.
type MutationStatus string

const (
	// MutationIdle means the write was not attempted.
	MutationIdle MutationStatus = "idle"
	// MutationSuccess means the write succeeded.
	MutationSuccess MutationStatus = "success"
	// MutationError means the write failed.
	MutationError MutationStatus = "error"
)

// MutationResult is the one-shot outcome of a write. It is never cached.
type MutationResult[T any] struct {
	Data     T
	Status   MutationStatus
	Err      error
	Attempts int
}

// OK reports whether the mutation succeeded.
func (r MutationResult[T]) OK() bool {
	return r.Status == MutationSuccess
}
