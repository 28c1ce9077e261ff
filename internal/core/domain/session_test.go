package domain_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/capigrow/internal/core/domain"
)

func signToken(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestSession_Expired(t *testing.T) {
	t.Parallel()

	exp := time.Date(2030, time.January, 1, 12, 0, 0, 0, time.UTC)
	s := domain.Session{AccessToken: signToken(t, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(exp),
	})}

	got, ok := s.ExpiresAt()
	require.True(t, ok)
	assert.True(t, exp.Equal(got))
	assert.False(t, s.Expired(exp.Add(-time.Minute)))
	assert.True(t, s.Expired(exp))
}

func TestSession_OpaqueToken(t *testing.T) {
	t.Parallel()

	s := domain.Session{AccessToken: "opaque-token"}
	assert.True(t, s.HasToken())
	assert.False(t, s.Expired(time.Now()))

	noExp := domain.Session{AccessToken: signToken(t, jwt.RegisteredClaims{Subject: "user-1"})}
	_, ok := noExp.ExpiresAt()
	assert.False(t, ok)

	assert.False(t, domain.Session{}.HasToken())
}

func TestNewSession(t *testing.T) {
	t.Parallel()

	s := domain.NewSession(domain.AuthTokens{
		AccessToken:  "a",
		RefreshToken: "r",
		User:         &domain.User{ID: "u1", Email: "ada@example.com", FirstName: "Ada", LastName: "Obi"},
	})
	assert.Equal(t, domain.Session{
		AccessToken:  "a",
		RefreshToken: "r",
		UserID:       "u1",
		Email:        "ada@example.com",
		FirstName:    "Ada",
		LastName:     "Obi",
	}, s)

	bare := domain.NewSession(domain.AuthTokens{AccessToken: "a"})
	assert.Empty(t, bare.UserID)
}
