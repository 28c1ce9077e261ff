// Package config provides the configuration loader for capigrow.
package config

import (
	"errors"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"go.trai.ch/capigrow/internal/core/domain"
	"go.trai.ch/capigrow/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "CAPIGROW_"
	// EnvConfigPath names the variable holding the configuration file path.
	EnvConfigPath = EnvPrefix + "CONFIG"
	// Filename is the default configuration file name.
	Filename = "config.yaml"
	// SessionFilename is the default session file name.
	SessionFilename = "session.json"
)

// Loader implements ports.ConfigLoader using a YAML file and environment overrides.
type Loader struct {
	logger ports.Logger
	// Environ replaces the process environment when set.
	Environ map[string]string
}

// NewLoader creates a Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Dir returns the directory holding the configuration and the session file.
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "capigrow")
}

// DefaultPath returns the configuration file path, honouring CAPIGROW_CONFIG.
func DefaultPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return filepath.Join(Dir(), Filename)
}

// Load reads the configuration at path. A missing file yields the defaults; environment
// overrides are applied in both cases.
func (l *Loader) Load(path string) (*domain.Config, error) {
	cfg := domain.DefaultConfig()
	cfg.StaleTimes = maps.Clone(cfg.StaleTimes)

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	switch {
	case errors.Is(err, fs.ErrNotExist):
		l.logger.Debug("no configuration file at " + path + ", using defaults")
	case err != nil:
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	default:
		var file File
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
		}
		if err := applyFile(&cfg, &file); err != nil {
			return nil, zerr.With(err, "path", path)
		}
	}

	if err := l.applyEnv(&cfg); err != nil {
		return nil, err
	}

	if cfg.SessionPath == "" {
		cfg.SessionPath = filepath.Join(Dir(), SessionFilename)
	}
	return &cfg, nil
}

func applyFile(cfg *domain.Config, file *File) error {
	if file.API.BaseURL != "" {
		cfg.APIBaseURL = file.API.BaseURL
	}
	if file.API.RateLimit > 0 {
		cfg.RateLimit = file.API.RateLimit
	}
	if file.API.RateBurst > 0 {
		cfg.RateBurst = file.API.RateBurst
	}
	if file.Retry.Reads > 0 {
		cfg.ReadAttempts = file.Retry.Reads
	}
	if file.Retry.Writes > 0 {
		cfg.WriteAttempts = file.Retry.Writes
	}
	if file.Session.Path != "" {
		cfg.SessionPath = file.Session.Path
	}
	if file.Log.Level != "" {
		cfg.LogLevel = domain.ParseLogLevel(file.Log.Level)
	}

	durations := []struct {
		field string
		value string
		dst   *time.Duration
	}{
		{"api.timeout", file.API.Timeout, &cfg.RequestTimeout},
		{"cache.staleTime", file.Cache.StaleTime, &cfg.StaleTime},
		{"cache.gcTime", file.Cache.GCTime, &cfg.GCTime},
	}
	for _, d := range durations {
		if err := parseDuration(d.field, d.value, d.dst); err != nil {
			return err
		}
	}

	for resource, value := range file.Cache.StaleTimes {
		var d time.Duration
		if err := parseDuration("cache.staleTimes."+resource, value, &d); err != nil {
			return err
		}
		cfg.StaleTimes[resource] = d
	}
	return nil
}

func (l *Loader) applyEnv(cfg *domain.Config) error {
	var o envOverrides
	if err := env.ParseWithOptions(&o, env.Options{Prefix: EnvPrefix, Environment: l.Environ}); err != nil {
		return zerr.Wrap(err, "failed to parse environment overrides")
	}

	if o.APIBaseURL != nil {
		cfg.APIBaseURL = *o.APIBaseURL
	}
	if o.RateLimit != nil {
		cfg.RateLimit = *o.RateLimit
	}
	if o.RateBurst != nil {
		cfg.RateBurst = *o.RateBurst
	}
	if o.ReadAttempts != nil {
		cfg.ReadAttempts = *o.ReadAttempts
	}
	if o.WriteAttempts != nil {
		cfg.WriteAttempts = *o.WriteAttempts
	}
	if o.SessionPath != nil {
		cfg.SessionPath = *o.SessionPath
	}
	if o.LogLevel != nil {
		cfg.LogLevel = domain.ParseLogLevel(*o.LogLevel)
	}

	durations := []struct {
		field string
		value *string
		dst   *time.Duration
	}{
		{EnvPrefix + "REQUEST_TIMEOUT", o.RequestTimeout, &cfg.RequestTimeout},
		{EnvPrefix + "STALE_TIME", o.StaleTime, &cfg.StaleTime},
		{EnvPrefix + "GC_TIME", o.GCTime, &cfg.GCTime},
	}
	for _, d := range durations {
		if d.value == nil {
			continue
		}
		if err := parseDuration(d.field, *d.value, d.dst); err != nil {
			return err
		}
	}
	return nil
}

func parseDuration(field, value string, dst *time.Duration) error {
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "invalid duration"), "field", field)
	}
	if d < 0 {
		return zerr.With(zerr.New("duration must not be negative"), "field", field)
	}
	*dst = d
	return nil
}
