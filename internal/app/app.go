// Package app implements the application layer for capigrow.
package app

import (
	"context"
	"time"

	"go.trai.ch/capigrow/internal/adapters/metrics"            //nolint:depguard // Wired in app layer
	"go.trai.ch/capigrow/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/capigrow/internal/core/domain"
	"go.trai.ch/capigrow/internal/core/ports"
	"go.trai.ch/capigrow/internal/resources/auth"
	"go.trai.ch/capigrow/internal/resources/investments"
	"go.trai.ch/capigrow/internal/resources/notifications"
	"go.trai.ch/capigrow/internal/resources/profile"
	"go.trai.ch/capigrow/internal/resources/transactions"
	"go.trai.ch/capigrow/internal/resources/verification"
	"go.trai.ch/capigrow/internal/uistate"
	"go.trai.ch/zerr"
)

// Services are the resource services the App drives.
type Services struct {
	Auth          *auth.Service
	Profile       *profile.Service
	Investments   *investments.Service
	Transactions  *transactions.Service
	Notifications *notifications.Service
	Verification  *verification.Service
}

// App represents the main application logic.
type App struct {
	svc      Services
	logger   ports.Logger
	metrics  *metrics.Collector
	recorder *progrock.Recorder

	onboarding *uistate.OnboardingFlow
	kyc        *uistate.VerificationFlow
	now        func() time.Time
}

// New creates a new App instance. A nil collector or recorder leaves the matching report empty.
func New(svc Services, log ports.Logger, collector *metrics.Collector, recorder *progrock.Recorder) *App {
	return &App{
		svc:        svc,
		logger:     log,
		metrics:    collector,
		recorder:   recorder,
		onboarding: uistate.NewOnboardingFlow(),
		kyc:        uistate.NewVerificationFlow(),
		now:        time.Now,
	}
}

// WithClock replaces the clock used for the OTP resend countdown.
// This is primarily used for testing.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// value unwraps a read. A disabled read means no session token is stored. When a refetch
// fails but earlier data is cached, the cached data is returned and the failure logged.
func value[T any](log ports.Logger, res domain.QueryResult[T]) (T, error) {
	switch {
	case res.Err != nil && res.HasData():
		log.Warn("showing cached data: " + res.Err.Error())
		return res.Data, nil
	case res.Err != nil:
		var zero T
		return zero, res.Err
	case res.Status == domain.QueryIdle && !res.HasData():
		var zero T
		return zero, domain.ErrNotAuthenticated
	}
	return res.Data, nil
}

// outcome unwraps a write.
func outcome[T any](res domain.MutationResult[T]) (T, error) {
	if !res.OK() {
		var zero T
		return zero, res.Err
	}
	return res.Data, nil
}

func requireID(kind, id string) error {
	if id == "" {
		return zerr.Wrap(domain.ErrInvalidRequest, kind+" id is required")
	}
	return nil
}

// Me returns the signed-in user's profile.
func (a *App) Me(ctx context.Context) (domain.User, error) {
	return value(a.logger, a.svc.Profile.Me(ctx))
}

// UpdateProfile changes profile fields.
func (a *App) UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest) (domain.User, error) {
	return outcome(a.svc.Profile.Update(ctx, req))
}

// UpdateSettings changes account preferences.
func (a *App) UpdateSettings(ctx context.Context, req domain.UpdateSettingsRequest) (domain.UserSettings, error) {
	return outcome(a.svc.Profile.UpdateSettings(ctx, req))
}
