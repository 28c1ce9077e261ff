package transactions_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/capigrow/internal/core/domain"
	"go.trai.ch/capigrow/internal/resources/resourcetest"
	"go.trai.ch/capigrow/internal/resources/transactions"
)

func TestList(t *testing.T) {
	env := resourcetest.New(t)
	env.SignIn(t)
	svc := transactions.New(env.Deps)
	ctx := context.Background()

	tests := []struct {
		name   string
		filter domain.TransactionFilter
		want   int
	}{
		{"all", domain.TransactionFilter{}, 3},
		{"by type", domain.TransactionFilter{Type: "investment"}, 2},
		{"by status", domain.TransactionFilter{Status: "pending"}, 0},
		{"past last page", domain.TransactionFilter{Page: 2}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := svc.List(ctx, tt.filter)
			require.Equal(t, domain.QuerySuccess, res.Status, res.Err)
			assert.Len(t, res.Data, tt.want)
		})
	}
	assert.Equal(t, len(tests), env.Hits("GET /transactions"))
}

func TestGet(t *testing.T) {
	env := resourcetest.New(t)
	env.SignIn(t)
	svc := transactions.New(env.Deps)
	ctx := context.Background()

	res := svc.Get(ctx, "tx-1")
	require.Equal(t, domain.QuerySuccess, res.Status, res.Err)
	assert.Equal(t, "deposit", res.Data.Type)

	missing := svc.Get(ctx, "tx-404")
	assert.Equal(t, domain.QueryError, missing.Status)
	assert.True(t, domain.IsStatus(missing.Err, http.StatusNotFound))
	assert.Equal(t, 1, missing.FailureCount)
	assert.Equal(t, 2, env.Hits("GET /transactions/{id}"))

	assert.Equal(t, domain.QueryIdle, svc.Get(ctx, "").Status)
}

func TestGet_EscapesID(t *testing.T) {
	env := resourcetest.New(t)
	env.SignIn(t)
	svc := transactions.New(env.Deps)

	res := svc.Get(context.Background(), "tx-1?page=2")
	assert.Equal(t, domain.QueryError, res.Status)
	assert.True(t, domain.IsStatus(res.Err, http.StatusNotFound))
	assert.Equal(t, 1, env.Hits("GET /transactions/{id}"))
}

func TestList_SignedOut(t *testing.T) {
	env := resourcetest.New(t)

	res := transactions.New(env.Deps).List(context.Background(), domain.TransactionFilter{})
	assert.Equal(t, domain.QueryIdle, res.Status)
	assert.Zero(t, env.Hits("GET /transactions"))
}
