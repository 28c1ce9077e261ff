// Package auth signs the user in and out and keeps the persisted session in step with
// the server's token pair.
package auth

import (
	"context"
	"net/http"

	"go.trai.ch/capigrow/internal/core/domain"
	"go.trai.ch/capigrow/internal/engine/mutation"
	"go.trai.ch/capigrow/internal/engine/query"
	"go.trai.ch/capigrow/internal/resources/profile"
	"go.trai.ch/capigrow/internal/resources/resource"
	"go.trai.ch/zerr"
)

// Pending is the server's acknowledgement of a signup awaiting OTP confirmation.
type Pending struct {
	Email string `json:"email"`
}

// Service exposes the authentication writes.
type Service struct {
	deps *resource.Deps
}

// New creates a Service.
func New(deps *resource.Deps) *Service {
	return &Service{deps: deps}
}

func anonymous[Req, T any](s *Service, path string) func(context.Context, Req) (T, error) {
	return func(ctx context.Context, body Req) (T, error) {
		return resource.Call[T](ctx, s.deps.Gateway, domain.APIRequest{
			Method:    http.MethodPost,
			Path:      path,
			Body:      body,
			Anonymous: true,
		})
	}
}

// Login authenticates with email and password and stores the session.
func (s *Service) Login(ctx context.Context, req domain.LoginRequest) domain.MutationResult[domain.AuthTokens] {
	res := mutation.Submit(ctx, s.deps.Mutations, &req,
		anonymous[*domain.LoginRequest, domain.AuthTokens](s, "/auth/login"),
		mutation.Name("auth.login"),
	)
	return s.establish(res, domain.Session{})
}

// Signup registers an account. The account is usable after VerifyOTP.
func (s *Service) Signup(ctx context.Context, req domain.SignupRequest) domain.MutationResult[Pending] {
	return mutation.Submit(ctx, s.deps.Mutations, &req,
		anonymous[*domain.SignupRequest, Pending](s, "/auth/signup"),
		mutation.Name("auth.signup"),
	)
}

// VerifyOTP confirms a signup and stores the session it returns.
func (s *Service) VerifyOTP(ctx context.Context, req domain.VerifyOTPRequest) domain.MutationResult[domain.AuthTokens] {
	res := mutation.Submit(ctx, s.deps.Mutations, &req,
		anonymous[*domain.VerifyOTPRequest, domain.AuthTokens](s, "/auth/verify-otp"),
		mutation.Name("auth.verify_otp"),
	)
	return s.establish(res, domain.Session{})
}

// ResendOTP asks the server to send a new one-time code.
func (s *Service) ResendOTP(ctx context.Context, req domain.ResendOTPRequest) domain.MutationResult[struct{}] {
	return mutation.Submit(ctx, s.deps.Mutations, &req,
		anonymous[*domain.ResendOTPRequest, struct{}](s, "/auth/resend-otp"),
		mutation.Name("auth.resend_otp"),
	)
}

// Refresh exchanges the stored refresh token for a new pair. Profile fields kept on the
// device survive when the server omits the user.
func (s *Service) Refresh(ctx context.Context) domain.MutationResult[domain.AuthTokens] {
	prev, err := s.deps.Sessions.Load()
	if err != nil {
		return domain.MutationResult[domain.AuthTokens]{Status: domain.MutationError, Err: err}
	}
	if prev.RefreshToken == "" {
		return domain.MutationResult[domain.AuthTokens]{Status: domain.MutationError, Err: domain.ErrNoRefreshToken}
	}

	res := mutation.Submit(ctx, s.deps.Mutations, &domain.RefreshRequest{RefreshToken: prev.RefreshToken},
		anonymous[*domain.RefreshRequest, domain.AuthTokens](s, "/auth/refresh"),
		mutation.Name("auth.refresh"),
	)
	return s.establish(res, prev)
}

// establish persists the session of a successful sign-in and primes the profile cache.
func (s *Service) establish(res domain.MutationResult[domain.AuthTokens], prev domain.Session) domain.MutationResult[domain.AuthTokens] {
	if !res.OK() {
		return res
	}

	sess := domain.NewSession(res.Data)
	if res.Data.User == nil {
		sess.UserID, sess.Email = prev.UserID, prev.Email
		sess.FirstName, sess.LastName = prev.FirstName, prev.LastName
	}
	if err := s.deps.Sessions.Save(sess); err != nil {
		res.Status, res.Err = domain.MutationError, err
		return res
	}
	if res.Data.User != nil {
		query.SetData(s.deps.Query, profile.MeKey, *res.Data.User)
	}
	return res
}

// Logout tells the server to revoke the session, then clears every persisted token and
// profile field and drops all cached reads. Local state is cleared even when the server
// call fails; only a failure to clear it is returned.
func (s *Service) Logout(ctx context.Context) error {
	if s.deps.Authenticated() {
		res := mutation.Execute(ctx, s.deps.Mutations, func(ctx context.Context) (struct{}, error) {
			return resource.Call[struct{}](ctx, s.deps.Gateway, domain.APIRequest{Method: http.MethodPost, Path: "/auth/logout"})
		}, mutation.Name("auth.logout"), mutation.Retry(1))
		if !res.OK() {
			s.deps.Logger.Warn("server logout failed: " + res.Err.Error())
		}
	}

	s.deps.Query.Clear()
	if err := s.deps.Sessions.Clear(); err != nil {
		return zerr.Wrap(err, "failed to clear session")
	}
	return nil
}
