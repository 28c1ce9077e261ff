// Package mockapi is an in-memory stand-in for the CapiGrow REST API. It serves fixture
// data with the same envelope, routes and error shapes as the real backend, for tests and
// for the mock-server command.
package mockapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.trai.ch/capigrow/internal/core/domain"
)

// Fixture credentials accepted by a fresh server.
const (
	DemoEmail    = "ada@example.com"
	DemoPassword = "password123"
	// DemoOTP is the code every signup must confirm with.
	DemoOTP = "123456"
)

// TokenTTL is the lifetime of issued access tokens.
const TokenTTL = time.Hour

// PageSize is the number of transactions per page.
const PageSize = 20

type account struct {
	user     domain.User
	password string
	verified bool
}

type fault struct {
	status  int
	message string
}

// Server holds the mock backend state.
type Server struct {
	secret []byte
	router chi.Router

	mu            sync.Mutex
	accounts      map[string]*account // by email
	refresh       map[string]string   // refresh token -> email
	investments   []domain.Investment
	portfolios    map[string]*domain.Portfolio     // by user id
	transactions  map[string][]domain.Transaction  // by user id, newest first
	notifications map[string][]domain.Notification // by user id, newest first
	kyc           map[string]*domain.VerificationStatus
	hits          map[string]int
	faults        map[string][]fault
}

// New creates a Server seeded with the demo account and catalogue.
func New() *Server {
	s := &Server{
		secret:        []byte("capigrow-mock-signing-key"),
		accounts:      make(map[string]*account),
		refresh:       make(map[string]string),
		portfolios:    make(map[string]*domain.Portfolio),
		transactions:  make(map[string][]domain.Transaction),
		notifications: make(map[string][]domain.Notification),
		kyc:           make(map[string]*domain.VerificationStatus),
		hits:          make(map[string]int),
		faults:        make(map[string][]fault),
	}
	s.seed()
	s.router = s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	s.handle(r, http.MethodPost, "/auth/login", s.handleLogin)
	s.handle(r, http.MethodPost, "/auth/signup", s.handleSignup)
	s.handle(r, http.MethodPost, "/auth/verify-otp", s.handleVerifyOTP)
	s.handle(r, http.MethodPost, "/auth/resend-otp", s.handleResendOTP)
	s.handle(r, http.MethodPost, "/auth/refresh", s.handleRefresh)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		s.handle(r, http.MethodPost, "/auth/logout", s.handleLogout)
		s.handle(r, http.MethodGet, "/users/me", s.handleMe)
		s.handle(r, http.MethodPatch, "/users/me", s.handleUpdateProfile)
		s.handle(r, http.MethodPatch, "/users/me/settings", s.handleUpdateSettings)

		s.handle(r, http.MethodGet, "/investments", s.handleListInvestments)
		s.handle(r, http.MethodGet, "/investments/{id}", s.handleGetInvestment)
		s.handle(r, http.MethodPost, "/investments/invest", s.handleInvest)
		s.handle(r, http.MethodPost, "/investments/withdraw", s.handleWithdraw)
		s.handle(r, http.MethodGet, "/portfolio", s.handlePortfolio)

		s.handle(r, http.MethodGet, "/transactions", s.handleListTransactions)
		s.handle(r, http.MethodGet, "/transactions/{id}", s.handleGetTransaction)

		s.handle(r, http.MethodGet, "/notifications", s.handleListNotifications)
		s.handle(r, http.MethodGet, "/notifications/unread-count", s.handleUnreadCount)
		s.handle(r, http.MethodPatch, "/notifications/read-all", s.handleMarkAllRead)
		s.handle(r, http.MethodPatch, "/notifications/{id}/read", s.handleMarkRead)

		s.handle(r, http.MethodGet, "/kyc/status", s.handleKYCStatus)
		s.handle(r, http.MethodPost, "/kyc/bvn", s.handleBVN)
		s.handle(r, http.MethodPost, "/kyc/document", s.handleUpload(domain.UploadDocument))
		s.handle(r, http.MethodPost, "/kyc/selfie", s.handleUpload(domain.UploadSelfie))
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	return r
}

// handle registers h under method and pattern, counting hits and serving injected faults.
func (s *Server) handle(r chi.Router, method, pattern string, h http.HandlerFunc) {
	route := method + " " + pattern
	r.Method(method, pattern, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		s.mu.Lock()
		s.hits[route]++
		var f *fault
		if queued := s.faults[route]; len(queued) > 0 {
			f = &queued[0]
			s.faults[route] = queued[1:]
		}
		s.mu.Unlock()

		if f != nil {
			writeError(w, f.status, f.message)
			return
		}
		h(w, req)
	}))
}

// Hits returns how many requests reached route, e.g. "GET /portfolio".
func (s *Server) Hits(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[route]
}

// Fail makes the next n requests to route fail with status and message.
func (s *Server) Fail(route string, status, n int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for range n {
		s.faults[route] = append(s.faults[route], fault{status: status, message: message})
	}
}
