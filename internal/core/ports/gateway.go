package ports

import (
	"context"

	"go.trai.ch/capigrow/internal/core/domain"
)

// Gateway translates one resource operation into one HTTP call.
//
// Implementations own no state beyond transport configuration, never cache and never
// retry: retry policy belongs to the query and mutation engines.
//
//go:generate go run go.uber.org/mock/mockgen -source=gateway.go -destination=mocks/mock_gateway.go -package=mocks
type Gateway interface {
	// Call performs the request and returns the decoded envelope.
	// Failures are returned as *domain.GatewayError, or as the context's error when
	// ctx ends before the call completes.
	Call(ctx context.Context, req domain.APIRequest) (*domain.APIResponse, error)
}
