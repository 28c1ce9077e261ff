package mockapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.trai.ch/capigrow/internal/core/domain"
)

type ctxKey struct{}

// issue creates a signed access token and an opaque refresh token for acct.
// Callers hold s.mu.
func (s *Server) issue(acct *account) (domain.AuthTokens, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   acct.user.Email,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return domain.AuthTokens{}, err
	}
	refresh := uuid.NewString()
	s.refresh[refresh] = acct.user.Email
	user := acct.user
	return domain.AuthTokens{AccessToken: access, RefreshToken: refresh, User: &user}, nil
}

// authenticate resolves the bearer token to an account.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		var claims jwt.RegisteredClaims
		_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
			return s.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		s.mu.Lock()
		acct, found := s.accounts[claims.Subject]
		s.mu.Unlock()
		if !found {
			writeError(w, http.StatusUnauthorized, "unknown account")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, acct)))
	})
}

func accountFrom(r *http.Request) *account {
	acct, _ := r.Context().Value(ctxKey{}).(*account)
	return acct
}
