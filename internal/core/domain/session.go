package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the device-local authentication state persisted between runs.
type Session struct {
	AccessToken  string `json:"access_token,omitzero"`
	RefreshToken string `json:"refresh_token,omitzero"`
	UserID       string `json:"user_id,omitzero"`
	Email        string `json:"email,omitzero"`
	FirstName    string `json:"first_name,omitzero"`
	LastName     string `json:"last_name,omitzero"`
}

// NewSession builds a session from a token pair and the profile fields kept on device.
func NewSession(tokens AuthTokens) Session {
	s := Session{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}
	if tokens.User != nil {
		s.UserID = tokens.User.ID
		s.Email = tokens.User.Email
		s.FirstName = tokens.User.FirstName
		s.LastName = tokens.User.LastName
	}
	return s
}

// HasToken reports whether token-gated reads may run.
func (s Session) HasToken() bool {
	return s.AccessToken != ""
}

// ExpiresAt returns the access token's exp claim. The signature is not checked;
// the server remains the authority on validity.
func (s Session) ExpiresAt() (time.Time, bool) {
	return TokenExpiry(s.AccessToken)
}

// Expired reports whether the access token carries an exp claim that is before now.
// Tokens without a readable exp claim are never reported as expired.
func (s Session) Expired(now time.Time) bool {
	exp, ok := s.ExpiresAt()
	return ok && !now.Before(exp)
}

// TokenExpiry reads the exp claim from a JWT without verifying it.
func TokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
