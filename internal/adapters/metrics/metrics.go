// Package metrics records cache and write activity as Prometheus counters.
// It implements ports.QueryObserver on a private registry.
package metrics

import (
	"slices"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.trai.ch/capigrow/internal/core/domain"
)

// Namespace prefixes every metric name.
const Namespace = "capigrow"

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Collector implements ports.QueryObserver.
type Collector struct {
	registry *prometheus.Registry

	cacheHits     *prometheus.CounterVec
	fetches       *prometheus.CounterVec
	fetchAttempts *prometheus.CounterVec
	invalidations *prometheus.CounterVec
	invalidated   *prometheus.CounterVec
	mutations     *prometheus.CounterVec
}

// NewCollector creates a Collector with its own registry.
func NewCollector() *Collector {
	c := &Collector{registry: prometheus.NewRegistry()}

	c.cacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "query",
			Name:      "cache_hits_total",
			Help:      "Reads served from a fresh cache entry",
		},
		[]string{"resource"},
	)

	c.fetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "query",
			Name:      "fetches_total",
			Help:      "Completed fetches by outcome",
		},
		[]string{"resource", "outcome", "kind"},
	)

	c.fetchAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "query",
			Name:      "fetch_attempts_total",
			Help:      "Fetcher invocations, including retries",
		},
		[]string{"resource"},
	)

	c.invalidations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "query",
			Name:      "invalidations_total",
			Help:      "Prefix invalidations issued",
		},
		[]string{"resource"},
	)

	c.invalidated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "query",
			Name:      "invalidated_entries_total",
			Help:      "Cache entries marked expired by invalidation",
		},
		[]string{"resource"},
	)

	c.mutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "mutation",
			Name:      "completed_total",
			Help:      "Completed writes by outcome",
		},
		[]string{"name", "outcome", "kind"},
	)

	c.registry.MustRegister(c.cacheHits, c.fetches, c.fetchAttempts, c.invalidations, c.invalidated, c.mutations)
	return c
}

// Registry returns the registry holding the collector's metrics.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CacheHit implements ports.QueryObserver.
func (c *Collector) CacheHit(key domain.CacheKey) {
	c.cacheHits.WithLabelValues(resource(key)).Inc()
}

// FetchCompleted implements ports.QueryObserver.
func (c *Collector) FetchCompleted(key domain.CacheKey, attempts int, err error) {
	res := resource(key)
	outcome, kind := classify(err)
	c.fetches.WithLabelValues(res, outcome, kind).Inc()
	c.fetchAttempts.WithLabelValues(res).Add(float64(attempts))
}

// Invalidated implements ports.QueryObserver.
func (c *Collector) Invalidated(prefix domain.CacheKey, count int) {
	res := resource(prefix)
	c.invalidations.WithLabelValues(res).Inc()
	c.invalidated.WithLabelValues(res).Add(float64(count))
}

// MutationCompleted implements ports.QueryObserver.
func (c *Collector) MutationCompleted(name string, _ int, err error) {
	outcome, kind := classify(err)
	c.mutations.WithLabelValues(name, outcome, kind).Inc()
}

// Counts gathers every counter as "name{label=value,...}" -> value.
func (c *Collector) Counts() (map[string]float64, error) {
	families, err := c.registry.Gather()
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			slices.Sort(labels)
			out[mf.GetName()+"{"+strings.Join(labels, ",")+"}"] = m.GetCounter().GetValue()
		}
	}
	return out, nil
}

// resource labels a key by its first segment to bound label cardinality.
func resource(key domain.CacheKey) string {
	segs := key.Segments()
	if len(segs) == 0 {
		return "all"
	}
	return segs[0].String()
}

func classify(err error) (outcome, kind string) {
	if err == nil {
		return OutcomeSuccess, "none"
	}
	if gwErr, ok := domain.AsGatewayError(err); ok {
		return OutcomeError, string(gwErr.Kind)
	}
	return OutcomeError, "other"
}
