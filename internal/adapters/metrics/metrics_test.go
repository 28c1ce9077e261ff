package metrics_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/capigrow/internal/adapters/metrics"
	"go.trai.ch/capigrow/internal/core/domain"
)

func TestCollector_Counts(t *testing.T) {
	c := metrics.NewCollector()
	detail := domain.Key("investments", "detail", "42")

	c.CacheHit(detail)
	c.CacheHit(domain.Key("investments", "list"))
	c.FetchCompleted(detail, 1, nil)
	c.FetchCompleted(domain.Key("portfolio"), 3, domain.NewServerError(http.StatusBadGateway, ""))
	c.Invalidated(domain.Key("investments"), 2)
	c.MutationCompleted("invest", 1, nil)
	c.MutationCompleted("withdraw", 2, errors.New("boom"))

	counts, err := c.Counts()
	require.NoError(t, err)

	assert.InDelta(t, 2.0, counts["capigrow_query_cache_hits_total{resource=investments}"], 0)
	assert.InDelta(t, 1.0, counts["capigrow_query_fetches_total{kind=none,outcome=success,resource=investments}"], 0)
	assert.InDelta(t, 1.0, counts["capigrow_query_fetches_total{kind=server,outcome=error,resource=portfolio}"], 0)
	assert.InDelta(t, 3.0, counts["capigrow_query_fetch_attempts_total{resource=portfolio}"], 0)
	assert.InDelta(t, 1.0, counts["capigrow_query_invalidations_total{resource=investments}"], 0)
	assert.InDelta(t, 2.0, counts["capigrow_query_invalidated_entries_total{resource=investments}"], 0)
	assert.InDelta(t, 1.0, counts["capigrow_mutation_completed_total{kind=none,name=invest,outcome=success}"], 0)
	assert.InDelta(t, 1.0, counts["capigrow_mutation_completed_total{kind=other,name=withdraw,outcome=error}"], 0)
}

func TestCollector_EmptyPrefix(t *testing.T) {
	c := metrics.NewCollector()
	c.Invalidated(domain.Key(), 5)

	counts, err := c.Counts()
	require.NoError(t, err)
	assert.InDelta(t, 5.0, counts["capigrow_query_invalidated_entries_total{resource=all}"], 0)
}
