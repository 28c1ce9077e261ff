package uistate

import "time"

// ResendCooldown is how long the OTP screen waits before allowing another code.
const ResendCooldown = 60 * time.Second

// OnboardingFlowState tracks the signup and OTP screens.
type OnboardingFlowState struct {
	PendingEmail string
	OTPSent      bool
	// ResendAt is when another code may be requested.
	ResendAt time.Time
}

// ResendIn returns the remaining countdown at now, zero once a resend is allowed.
func (s OnboardingFlowState) ResendIn(now time.Time) time.Duration {
	return max(s.ResendAt.Sub(now), 0)
}

// OnboardingFlow is the signup flow's state store.
type OnboardingFlow struct {
	*Store[OnboardingFlowState]
}

// NewOnboardingFlow creates an empty store.
func NewOnboardingFlow() *OnboardingFlow {
	return &OnboardingFlow{NewStore(func() OnboardingFlowState { return OnboardingFlowState{} })}
}

// SetPendingEmail records the address awaiting verification.
func (f *OnboardingFlow) SetPendingEmail(email string) {
	f.Update(func(s *OnboardingFlowState) { s.PendingEmail = email })
}

// MarkOTPSent records that a code was sent at now and starts the resend countdown.
func (f *OnboardingFlow) MarkOTPSent(now time.Time) {
	f.Update(func(s *OnboardingFlowState) {
		s.OTPSent = true
		s.ResendAt = now.Add(ResendCooldown)
	})
}
