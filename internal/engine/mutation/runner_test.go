package mutation_test

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/capigrow/internal/core/domain"
	"go.trai.ch/capigrow/internal/core/ports"
	"go.trai.ch/capigrow/internal/core/ports/mocks"
	"go.trai.ch/capigrow/internal/engine/mutation"
	"go.trai.ch/capigrow/internal/engine/query"
	"go.uber.org/mock/gomock"
)

func setup(t *testing.T, observer ports.QueryObserver) (*query.Client, *mutation.Runner) {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()

	client := query.NewClient(log, observer, nil, query.Settings{})
	return client, mutation.NewRunner(client, log, 0)
}

func seed(t *testing.T, client *query.Client, keys ...domain.CacheKey) *atomic.Int32 {
	t.Helper()
	var calls atomic.Int32
	for _, key := range keys {
		query.Read(context.Background(), client, key, func(context.Context) (int, error) {
			return int(calls.Add(1)), nil
		})
	}
	return &calls
}

func TestExecute_InvalidatesOnSuccess(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		client, runner := setup(t, nil)
		detail := domain.Key("investments", "detail", "42")
		portfolio := domain.Key("portfolio")
		notifications := domain.Key("notifications", "list")
		seed(t, client, detail, portfolio, notifications)

		res := mutation.Execute(context.Background(), runner, func(context.Context) (string, error) {
			return "tx-1", nil
		}, mutation.Name("invest"), mutation.Invalidates(domain.Key("investments"), domain.Key("portfolio")))

		require.True(t, res.OK())
		assert.Equal(t, "tx-1", res.Data)
		assert.Equal(t, 1, res.Attempts)

		fetch := func(context.Context) (int, error) { return 100, nil }
		assert.True(t, query.Read(context.Background(), client, detail, fetch).Fetched)
		assert.True(t, query.Read(context.Background(), client, portfolio, fetch).Fetched)
		assert.False(t, query.Read(context.Background(), client, notifications, fetch).Fetched)
	})
}

func TestExecute_FailureLeavesCache(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		client, runner := setup(t, nil)
		detail := domain.Key("investments", "detail", "42")
		seed(t, client, detail)

		res := mutation.Execute(context.Background(), runner, func(context.Context) (string, error) {
			return "", domain.NewApplicationError(http.StatusOK, "insufficient wallet balance")
		}, mutation.Invalidates(domain.Key("investments")))

		assert.Equal(t, domain.MutationError, res.Status)
		assert.Equal(t, 1, res.Attempts)
		gwErr, ok := domain.AsGatewayError(res.Err)
		require.True(t, ok)
		assert.Equal(t, "insufficient wallet balance", gwErr.Message)

		cached := query.Read(context.Background(), client, detail, func(context.Context) (int, error) { return 100, nil })
		assert.False(t, cached.Fetched)
	})
}

func TestExecute_RetryBound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int32
	}{
		{"server error", domain.NewServerError(http.StatusServiceUnavailable, "maintenance"), 2},
		{"network error", domain.NewNetworkError(errors.New("connection reset")), 2},
		{"bad request", domain.NewClientError(http.StatusBadRequest, "amount below minimum"), 1},
		{"conflict", domain.NewClientError(http.StatusConflict, "duplicate"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			synctest.Test(t, func(t *testing.T) {
				_, runner := setup(t, nil)
				var calls atomic.Int32
				res := mutation.Execute(context.Background(), runner, func(context.Context) (int, error) {
					calls.Add(1)
					return 0, tt.err
				})
				assert.Equal(t, domain.MutationError, res.Status)
				assert.Equal(t, tt.want, calls.Load())
				assert.Equal(t, int(tt.want), res.Attempts)
			})
		})
	}
}

func TestExecute_WriteThrough(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		client, runner := setup(t, nil)
		me := domain.Key("user", "me")
		seed(t, client, me)

		res := mutation.Execute(context.Background(), runner, func(context.Context) (int, error) {
			return 42, nil
		}, mutation.WriteThrough(me))
		require.True(t, res.OK())

		cached := query.Read(context.Background(), client, me, func(context.Context) (int, error) { return -1, nil })
		assert.False(t, cached.Fetched)
		assert.Equal(t, 42, cached.Data)
	})
}

func TestExecute_WriteThroughSurvivesOwnInvalidation(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		client, runner := setup(t, nil)
		me := domain.Key("user", "me")
		settings := domain.Key("user", "settings")
		calls := seed(t, client, me, settings)

		res := mutation.Execute(context.Background(), runner, func(context.Context) (int, error) {
			return 42, nil
		}, mutation.WriteThrough(me), mutation.Invalidates(domain.Key("user")))
		require.True(t, res.OK())

		cached := query.Read(context.Background(), client, me, func(context.Context) (int, error) { return -1, nil })
		assert.False(t, cached.Fetched)
		assert.Equal(t, 42, cached.Data)

		refetched := query.Read(context.Background(), client, settings, func(context.Context) (int, error) {
			return int(calls.Add(1)), nil
		})
		assert.True(t, refetched.Fetched)
		assert.Equal(t, 3, refetched.Data)
	})
}

func TestSubmit_ValidatesBeforeSending(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		_, runner := setup(t, nil)
		var calls atomic.Int32
		send := func(_ context.Context, req *domain.InvestRequest) (string, error) {
			calls.Add(1)
			return req.InvestmentID, nil
		}

		res := mutation.Submit(context.Background(), runner, &domain.InvestRequest{InvestmentID: "42"}, send)
		assert.Equal(t, domain.MutationError, res.Status)
		assert.True(t, errors.Is(res.Err, domain.ErrInvalidRequest))
		assert.Zero(t, res.Attempts)
		assert.Zero(t, calls.Load())

		res = mutation.Submit(context.Background(), runner,
			&domain.InvestRequest{InvestmentID: "42", Amount: 5000, PaymentMethod: "wallet"}, send)
		assert.True(t, res.OK())
		assert.Equal(t, "42", res.Data)
	})
}

func TestExecute_ReportsCompletion(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		observer := mocks.NewMockQueryObserver(ctrl)
		observer.EXPECT().MutationCompleted("mark-read", 1, nil)
		observer.EXPECT().Invalidated(domain.Key("notifications"), 0)

		_, runner := setup(t, observer)
		res := mutation.Execute(context.Background(), runner, func(context.Context) (bool, error) {
			return true, nil
		}, mutation.Name("mark-read"), mutation.Invalidates(domain.Key("notifications")))
		assert.True(t, res.OK())
	})
}
