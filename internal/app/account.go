package app

import (
	"context"
	"fmt"

	"go.trai.ch/capigrow/internal/core/domain"
	"go.trai.ch/zerr"
)

// ErrResendTooSoon is returned when a new OTP is requested before the countdown ends.
var ErrResendTooSoon = zerr.New("verification code was sent recently")

// Login signs in and returns the user.
func (a *App) Login(ctx context.Context, email, password string) (domain.User, error) {
	tokens, err := outcome(a.svc.Auth.Login(ctx, domain.LoginRequest{Email: email, Password: password}))
	if err != nil {
		return domain.User{}, err
	}
	if tokens.User != nil {
		return *tokens.User, nil
	}
	return a.Me(ctx)
}

// Signup registers an account and starts the OTP countdown. It returns the address the
// code was sent to.
func (a *App) Signup(ctx context.Context, req domain.SignupRequest) (string, error) {
	pending, err := outcome(a.svc.Auth.Signup(ctx, req))
	if err != nil {
		return "", err
	}
	email := pending.Email
	if email == "" {
		email = req.Email
	}
	a.onboarding.SetPendingEmail(email)
	a.onboarding.MarkOTPSent(a.now())
	return email, nil
}

// VerifyOTP confirms a signup. An empty email uses the address of the last signup.
func (a *App) VerifyOTP(ctx context.Context, email, code string) (domain.User, error) {
	if email == "" {
		email = a.onboarding.Get().PendingEmail
	}
	tokens, err := outcome(a.svc.Auth.VerifyOTP(ctx, domain.VerifyOTPRequest{Email: email, Code: code}))
	if err != nil {
		return domain.User{}, err
	}
	a.onboarding.Reset()
	if tokens.User != nil {
		return *tokens.User, nil
	}
	return a.Me(ctx)
}

// ResendOTP requests a new code unless the countdown of the pending signup is running.
func (a *App) ResendOTP(ctx context.Context, email string) error {
	state := a.onboarding.Get()
	if email == "" {
		email = state.PendingEmail
	}
	if email == state.PendingEmail {
		if wait := state.ResendIn(a.now()); wait > 0 {
			return zerr.With(zerr.Wrap(ErrResendTooSoon, "resend not available yet"), "retry_in", fmt.Sprintf("%.0fs", wait.Seconds()))
		}
	}

	if _, err := outcome(a.svc.Auth.ResendOTP(ctx, domain.ResendOTPRequest{Email: email})); err != nil {
		return err
	}
	a.onboarding.SetPendingEmail(email)
	a.onboarding.MarkOTPSent(a.now())
	return nil
}

// Refresh renews the stored token pair.
func (a *App) Refresh(ctx context.Context) error {
	_, err := outcome(a.svc.Auth.Refresh(ctx))
	return err
}

// Logout clears the session and every cached read.
func (a *App) Logout(ctx context.Context) error {
	a.onboarding.Reset()
	a.kyc.Reset()
	return a.svc.Auth.Logout(ctx)
}
