// Package query implements the cached, de-duplicated read path used by every resource.
//
// A Client owns one cache map keyed by domain.CacheKey. Reads go through Read, which
// serves fresh entries from memory, joins an in-flight fetch for the same key, or runs the
// fetcher with bounded retry. Writes elsewhere in the application invalidate key prefixes
// so that the next read refetches.
package query

import (
	"strconv"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.trai.ch/capigrow/internal/adapters/telemetry" //nolint:depguard // Default recorder
	"go.trai.ch/capigrow/internal/core/domain"
	"go.trai.ch/capigrow/internal/core/ports"
	"golang.org/x/sync/singleflight"
)

// Settings are the client-wide defaults applied to every read.
type Settings struct {
	// StaleTime is how long a successful result is served without refetching.
	StaleTime time.Duration
	// StaleTimes overrides StaleTime by the first segment of the key.
	StaleTimes map[string]time.Duration
	// GCTime is how long an unused entry is retained.
	GCTime time.Duration
	// Attempts bounds the number of fetcher invocations per fetch.
	Attempts int
	// Backoff returns the delay policy between attempts. Nil uses DefaultBackoff.
	Backoff func() backoff.BackOff
}

// SettingsFromConfig derives client settings from the resolved configuration.
func SettingsFromConfig(cfg *domain.Config) Settings {
	return Settings{
		StaleTime:  cfg.StaleTime,
		StaleTimes: cfg.StaleTimes,
		GCTime:     cfg.GCTime,
		Attempts:   cfg.ReadAttempts,
	}
}

// DefaultBackoff doubles from one second up to thirty seconds between attempts.
func DefaultBackoff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.Multiplier = 2
	b.MaxInterval = 30 * time.Second
	b.RandomizationFactor = 0
	return b
}

// Client is the shared read cache.
type Client struct {
	logger    ports.Logger
	observer  ports.QueryObserver
	telemetry ports.Telemetry
	settings  Settings

	group singleflight.Group

	mu          sync.Mutex
	entries     map[uint64][]*entry
	lastCollect time.Time
	subs        map[int]subscription
	nextSub     int
}

// NewClient creates a Client. A nil observer or telemetry disables that reporting.
func NewClient(logger ports.Logger, observer ports.QueryObserver, tel ports.Telemetry, settings Settings) *Client {
	if observer == nil {
		observer = nopObserver{}
	}
	if tel == nil {
		tel = telemetry.NewNoop()
	}
	if settings.StaleTime <= 0 {
		settings.StaleTime = domain.DefaultStaleTime
	}
	if settings.GCTime <= 0 {
		settings.GCTime = domain.DefaultGCTime
	}
	if settings.Attempts <= 0 {
		settings.Attempts = domain.DefaultReadAttempts
	}
	if settings.Backoff == nil {
		settings.Backoff = DefaultBackoff
	}
	return &Client{
		logger:      logger,
		observer:    observer,
		telemetry:   tel,
		settings:    settings,
		entries:     make(map[uint64][]*entry),
		lastCollect: time.Now(),
		subs:        make(map[int]subscription),
	}
}

// Observer returns the observer events are reported to.
func (c *Client) Observer() ports.QueryObserver {
	return c.observer
}

// Telemetry returns the recorder fetch vertices are written to.
func (c *Client) Telemetry() ports.Telemetry {
	return c.telemetry
}

// Backoff returns a fresh delay policy for one retried operation.
func (c *Client) Backoff() backoff.BackOff {
	return c.settings.Backoff()
}

func (c *Client) staleTimeFor(key domain.CacheKey) time.Duration {
	segs := key.Segments()
	if len(segs) > 0 && segs[0].Kind() == domain.SegmentText {
		if d, ok := c.settings.StaleTimes[segs[0].String()]; ok {
			return d
		}
	}
	return c.settings.StaleTime
}

func flightKey(key domain.CacheKey) string {
	return strconv.FormatUint(key.Hash(), 16) + ":" + key.String()
}
