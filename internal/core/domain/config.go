package domain

import "time"

// Default client settings.
const (
	DefaultAPIBaseURL     = "https://api.capigrow.com/api/v1"
	DefaultRequestTimeout = 30 * time.Second
	DefaultReadAttempts   = 3
	DefaultWriteAttempts  = 2
	DefaultStaleTime      = 5 * time.Minute
	DefaultGCTime         = 5 * time.Minute
)

// Resource names used for per-resource settings and as the first cache key segment.
const (
	ResourceUser          = "user"
	ResourceInvestments   = "investments"
	ResourcePortfolio     = "portfolio"
	ResourceTransactions  = "transactions"
	ResourceNotifications = "notifications"
	ResourceVerification  = "verification"
)

// Config is the resolved client configuration.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	// RateLimit is the sustained request rate per second. Zero disables pacing.
	RateLimit     float64
	RateBurst     int
	ReadAttempts  int
	WriteAttempts int
	StaleTime     time.Duration
	// StaleTimes overrides StaleTime per resource name.
	StaleTimes  map[string]time.Duration
	GCTime      time.Duration
	SessionPath string
	LogLevel    LogLevel
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		APIBaseURL:     DefaultAPIBaseURL,
		RequestTimeout: DefaultRequestTimeout,
		RateBurst:      1,
		ReadAttempts:   DefaultReadAttempts,
		WriteAttempts:  DefaultWriteAttempts,
		StaleTime:      DefaultStaleTime,
		StaleTimes: map[string]time.Duration{
			ResourceNotifications: time.Minute,
			ResourcePortfolio:     2 * time.Minute,
			ResourceInvestments:   10 * time.Minute,
		},
		GCTime:   DefaultGCTime,
		LogLevel: LogLevelInfo,
	}
}

// StaleTimeFor returns the staleness window of a resource.
func (c Config) StaleTimeFor(resource string) time.Duration {
	if d, ok := c.StaleTimes[resource]; ok {
		return d
	}
	return c.StaleTime
}
