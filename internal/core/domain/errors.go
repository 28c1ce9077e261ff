package domain

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.trai.ch/zerr"
)

var (
	// ErrNotAuthenticated is returned when a token-gated operation runs without a session token.
	ErrNotAuthenticated = zerr.New("not authenticated")

	// ErrInvalidRequest is returned when a request struct fails validation.
	ErrInvalidRequest = zerr.New("invalid request")

	// ErrEmptyKey is returned when a read or write is issued against an empty cache key.
	ErrEmptyKey = zerr.New("cache key is empty")

	// ErrNoRefreshToken is returned when a session refresh is attempted without a refresh token.
	ErrNoRefreshToken = zerr.New("no refresh token")

	// ErrNotFound is returned when a requested record does not exist in a cached collection.
	ErrNotFound = zerr.New("not found")
)

// ErrorKind classifies a failure coming back from the remote API.
type ErrorKind string

const (
	// KindNetwork is a transport failure: no connectivity, DNS, timeout.
	KindNetwork ErrorKind = "network"
	// KindClient is a 4xx response.
	KindClient ErrorKind = "client"
	// KindServer is a 5xx response.
	KindServer ErrorKind = "server"
	// KindApplication is a 2xx response whose envelope carries success=false.
	KindApplication ErrorKind = "application"
	// KindParse is a response body that could not be decoded.
	KindParse ErrorKind = "parse"
)

// GatewayError is the typed failure produced by the remote gateway.
type GatewayError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

// Error implements error.
func (e *GatewayError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Kind, e.Status, msg)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, msg)
}

// Unwrap returns the underlying cause.
func (e *GatewayError) Unwrap() error {
	return e.Err
}

// NewClientError creates a 4xx error.
func NewClientError(status int, message string) *GatewayError {
	return &GatewayError{Kind: KindClient, Status: status, Message: message}
}

// NewServerError creates a 5xx error.
func NewServerError(status int, message string) *GatewayError {
	return &GatewayError{Kind: KindServer, Status: status, Message: message}
}

// NewNetworkError wraps a transport failure.
func NewNetworkError(err error) *GatewayError {
	return &GatewayError{Kind: KindNetwork, Err: err}
}

// NewParseError wraps a decoding failure.
func NewParseError(err error) *GatewayError {
	return &GatewayError{Kind: KindParse, Err: err}
}

// NewApplicationError creates an error for an envelope with success=false.
func NewApplicationError(status int, message string) *GatewayError {
	return &GatewayError{Kind: KindApplication, Status: status, Message: message}
}

// AsGatewayError extracts a GatewayError from err's chain.
func AsGatewayError(err error) (*GatewayError, bool) {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr, true
	}
	return nil, false
}

// IsStatus reports whether err is a gateway error with the given HTTP status.
func IsStatus(err error, status int) bool {
	gwErr, ok := AsGatewayError(err)
	return ok && gwErr.Status == status
}

// IsRetryable reports whether a failed attempt may be repeated.
//
// Server and network failures are retryable. Client errors are retryable only for
// 408 and 429. Application, parse and validation failures never are, nor is a
// cancelled context. Errors that carry no classification are treated as transient.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	gwErr, ok := AsGatewayError(err)
	if !ok {
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return false
		case errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrNotAuthenticated):
			return false
		default:
			return true
		}
	}

	switch gwErr.Kind {
	case KindServer, KindNetwork:
		return true
	case KindClient:
		return gwErr.Status == http.StatusRequestTimeout || gwErr.Status == http.StatusTooManyRequests
	default:
		return false
	}
}
