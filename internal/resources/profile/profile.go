// Package profile reads and updates the signed-in user's profile and settings.
package profile

import (
	"context"
	"net/http"

	"go.trai.ch/capigrow/internal/core/domain"
	"go.trai.ch/capigrow/internal/engine/mutation"
	"go.trai.ch/capigrow/internal/resources/resource"
)

// Keys identifying profile reads.
var (
	// All is the prefix of every profile entry.
	All = domain.Key(domain.ResourceUser)
	// MeKey addresses the signed-in user's profile.
	MeKey = domain.Key(domain.ResourceUser, "me")
)

// Service exposes profile reads and writes.
type Service struct {
	deps *resource.Deps
}

// New creates a Service.
func New(deps *resource.Deps) *Service {
	return &Service{deps: deps}
}

// Me returns the signed-in user. The read is disabled without a stored token.
func (s *Service) Me(ctx context.Context) domain.QueryResult[domain.User] {
	return resource.Read(ctx, s.deps, MeKey, resource.Get[domain.User](s.deps.Gateway, "/users/me", nil))
}

// Update changes profile fields and stores the returned profile under MeKey.
func (s *Service) Update(ctx context.Context, req domain.UpdateProfileRequest) domain.MutationResult[domain.User] {
	return mutation.Submit(ctx, s.deps.Mutations, &req,
		resource.Send[*domain.UpdateProfileRequest, domain.User](s.deps.Gateway, http.MethodPatch, "/users/me"),
		mutation.Name("profile.update"),
		mutation.WriteThrough(MeKey),
		mutation.Invalidates(All),
	)
}

// UpdateSettings changes account preferences and invalidates every profile entry.
func (s *Service) UpdateSettings(ctx context.Context, req domain.UpdateSettingsRequest) domain.MutationResult[domain.UserSettings] {
	return mutation.Submit(ctx, s.deps.Mutations, &req,
		resource.Send[*domain.UpdateSettingsRequest, domain.UserSettings](s.deps.Gateway, http.MethodPatch, "/users/me/settings"),
		mutation.Name("profile.update_settings"),
		mutation.Invalidates(All),
	)
}
