// Package mutation implements the write path: one-shot server writes with bounded retry
// that invalidate cached reads on success.
package mutation

import (
	"context"
	"errors"
	"fmt"

	"github.com/cenkalti/backoff/v5"
	"go.trai.ch/capigrow/internal/core/domain"
	"go.trai.ch/capigrow/internal/core/ports"
	"go.trai.ch/capigrow/internal/engine/query"
)

// Runner executes writes against the server and keeps the query cache consistent with them.
// Retry delays follow the client's backoff policy.
type Runner struct {
	client   *query.Client
	logger   ports.Logger
	attempts int
}

// NewRunner creates a Runner that invalidates entries of client. A non-positive
// attempts value uses domain.DefaultWriteAttempts.
func NewRunner(client *query.Client, logger ports.Logger, attempts int) *Runner {
	if attempts <= 0 {
		attempts = domain.DefaultWriteAttempts
	}
	return &Runner{
		client:   client,
		logger:   logger,
		attempts: attempts,
	}
}

// Client returns the query client the runner invalidates.
func (r *Runner) Client() *query.Client {
	return r.client
}

// Operation performs a single server write.
type Operation[T any] func(ctx context.Context) (T, error)

// Validator is implemented by request types that can check themselves before being sent.
type Validator interface {
	Validate() error
}

type options struct {
	name         string
	invalidates  []domain.CacheKey
	writeThrough []domain.CacheKey
	attempts     int
}

// Option configures a single write.
type Option func(*options)

// Name labels the write in logs, metrics and telemetry.
func Name(name string) Option {
	return func(o *options) { o.name = name }
}

// Invalidates declares the key prefixes marked expired when the write succeeds.
func Invalidates(prefixes ...domain.CacheKey) Option {
	return func(o *options) { o.invalidates = append(o.invalidates, prefixes...) }
}

// WriteThrough stores the write's result under key when the write succeeds.
func WriteThrough(key domain.CacheKey) Option {
	return func(o *options) { o.writeThrough = append(o.writeThrough, key) }
}

// Retry overrides the number of attempts for this write.
func Retry(attempts int) Option {
	return func(o *options) { o.attempts = attempts }
}

// Execute runs op with bounded retry. On success every declared prefix is invalidated and
// then the result is written through to the declared keys, so a write-through key stays
// fresh even under an invalidated prefix. On failure the cache is left alone.
func Execute[T any](ctx context.Context, r *Runner, op Operation[T], opts ...Option) domain.MutationResult[T] {
	o := options{name: "mutation", attempts: r.attempts}
	for _, opt := range opts {
		opt(&o)
	}
	if o.attempts < 1 {
		o.attempts = 1
	}

	ctx, vertex := r.client.Telemetry().Record(ctx, "write "+o.name)

	attempts := 0
	data, err := backoff.Retry(ctx, func() (T, error) {
		attempts++
		v, err := op(ctx)
		if err != nil {
			vertex.Log(domain.LogLevelWarn, fmt.Sprintf("attempt %d: %v", attempts, err))
			if !domain.IsRetryable(err) {
				return v, backoff.Permanent(err)
			}
		}
		return v, err
	}, backoff.WithBackOff(r.client.Backoff()), backoff.WithMaxTries(uint(o.attempts)))
	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		err = permanent.Unwrap()
	}

	vertex.Complete(err)
	r.client.Observer().MutationCompleted(o.name, attempts, err)

	if err != nil {
		r.logger.Debug(fmt.Sprintf("%s failed after %d attempt(s): %v", o.name, attempts, err))
		return domain.MutationResult[T]{Status: domain.MutationError, Err: err, Attempts: attempts}
	}

	for _, prefix := range o.invalidates {
		r.client.Invalidate(prefix)
	}
	for _, key := range o.writeThrough {
		query.SetData(r.client, key, data)
	}
	return domain.MutationResult[T]{Data: data, Status: domain.MutationSuccess, Attempts: attempts}
}

// Submit validates req, when it implements Validator, and then executes send with it.
// A request that fails validation is never sent and never retried.
func Submit[Req, T any](
	ctx context.Context,
	r *Runner,
	req Req,
	send func(ctx context.Context, req Req) (T, error),
	opts ...Option,
) domain.MutationResult[T] {
	if v, ok := any(req).(Validator); ok {
		if err := v.Validate(); err != nil {
			return domain.MutationResult[T]{Status: domain.MutationError, Err: err}
		}
	}
	return Execute(ctx, r, func(ctx context.Context) (T, error) {
		return send(ctx, req)
	}, opts...)
}
