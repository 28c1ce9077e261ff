// Package notifications reads and acknowledges in-app messages.
package notifications

import (
	"context"
	"net/http"
	"net/url"

	"go.trai.ch/capigrow/internal/core/domain"
	"go.trai.ch/capigrow/internal/engine/mutation"
	"go.trai.ch/capigrow/internal/resources/resource"
)

// Keys identifying notification reads.
var (
	// All is the prefix of every notification entry.
	All = domain.Key(domain.ResourceNotifications)
	// ListKey addresses the notification list.
	ListKey = domain.Key(domain.ResourceNotifications, "list")
	// UnreadKey addresses the unread counter.
	UnreadKey = domain.Key(domain.ResourceNotifications, "unread-count")
)

type unread struct {
	Count int `json:"count"`
}

// Service exposes notification reads and writes.
type Service struct {
	deps *resource.Deps
}

// New creates a Service.
func New(deps *resource.Deps) *Service {
	return &Service{deps: deps}
}

// List returns the notifications, newest first.
func (s *Service) List(ctx context.Context) domain.QueryResult[[]domain.Notification] {
	return resource.Read(ctx, s.deps, ListKey,
		resource.Get[[]domain.Notification](s.deps.Gateway, "/notifications", nil))
}

// UnreadCount returns the number of unread notifications.
func (s *Service) UnreadCount(ctx context.Context) domain.QueryResult[int] {
	fetch := resource.Get[unread](s.deps.Gateway, "/notifications/unread-count", nil)
	return resource.Read(ctx, s.deps, UnreadKey, func(ctx context.Context) (int, error) {
		u, err := fetch(ctx)
		return u.Count, err
	})
}

// MarkRead acknowledges one notification.
func (s *Service) MarkRead(ctx context.Context, id string) domain.MutationResult[domain.Notification] {
	if id == "" {
		return domain.MutationResult[domain.Notification]{
			Status: domain.MutationError,
			Err:    domain.ErrInvalidRequest,
		}
	}
	return mutation.Execute(ctx, s.deps.Mutations, func(ctx context.Context) (domain.Notification, error) {
		return resource.Call[domain.Notification](ctx, s.deps.Gateway, domain.APIRequest{
			Method: http.MethodPatch,
			Path:   "/notifications/" + url.PathEscape(id) + "/read",
		})
	}, mutation.Name("notifications.mark_read"), mutation.Invalidates(All))
}

// MarkAllRead acknowledges every notification.
func (s *Service) MarkAllRead(ctx context.Context) domain.MutationResult[struct{}] {
	return mutation.Execute(ctx, s.deps.Mutations, func(ctx context.Context) (struct{}, error) {
		return resource.Call[struct{}](ctx, s.deps.Gateway, domain.APIRequest{
			Method: http.MethodPatch,
			Path:   "/notifications/read-all",
		})
	}, mutation.Name("notifications.mark_all_read"), mutation.Invalidates(All))
}

// Watch calls fn with each notifications key invalidated, whether by a write or by Expire.
func (s *Service) Watch(fn func(domain.CacheKey)) (cancel func()) {
	return s.deps.Query.Subscribe(All, fn)
}

// Expire marks every cached notifications read for refetch.
func (s *Service) Expire() int {
	return s.deps.Query.Invalidate(All)
}
