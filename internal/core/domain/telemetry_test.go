package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/capigrow/internal/core/domain"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    domain.LogLevel
		expected string
	}{
		{domain.LogLevelDebug, "DEBUG"},
		{domain.LogLevelInfo, "INFO"},
		{domain.LogLevelWarn, "WARN"},
		{domain.LogLevelError, "ERROR"},
		{domain.LogLevel(99), "INFO"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.level.String())
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected domain.LogLevel
	}{
		{"debug", domain.LogLevelDebug},
		{"DEBUG", domain.LogLevelDebug},
		{"warn", domain.LogLevelWarn},
		{"warning", domain.LogLevelWarn},
		{"error", domain.LogLevelError},
		{"info", domain.LogLevelInfo},
		{"", domain.LogLevelInfo},
		{"verbose", domain.LogLevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.ParseLogLevel(tt.input))
		})
	}
}

func TestNormalizeQueryStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected domain.QueryStatus
	}{
		{"loading", domain.QueryLoading},
		{"SUCCESS", domain.QuerySuccess},
		{"error", domain.QueryError},
		{"idle", domain.QueryIdle},
		{"unknown", domain.QueryIdle},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.NormalizeQueryStatus(tt.input))
		})
	}
}
