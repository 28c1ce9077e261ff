package mockapi

import (
	"net/http"
	"strconv"

	"go.trai.ch/capigrow/internal/core/domain"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accounts[req.Email]
	if !ok || acct.password != req.Password {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if !acct.verified {
		writeError(w, http.StatusForbidden, "account not verified")
		return
	}
	tokens, err := s.issue(acct)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeData(w, http.StatusOK, "login successful", tokens)
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req domain.SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[req.Email]; exists {
		writeError(w, http.StatusConflict, "email already registered")
		return
	}
	id := "user-" + strconv.Itoa(len(s.accounts)+1)
	s.accounts[req.Email] = &account{
		user: domain.User{
			ID:          id,
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Email:       req.Email,
			Phone:       req.Phone,
			DateOfBirth: req.DateOfBirth,
			Settings:    domain.UserSettings{PushNotifications: true, Currency: domain.DefaultCurrency},
		},
		password: req.Password,
	}
	s.portfolios[id] = &domain.Portfolio{Currency: domain.DefaultCurrency, Holdings: []domain.Holding{}}
	s.kyc[id] = &domain.VerificationStatus{
		DocumentStatus: domain.VerificationNotStarted,
		SelfieStatus:   domain.VerificationNotStarted,
		Overall:        domain.VerificationNotStarted,
	}
	writeData(w, http.StatusCreated, "verification code sent", map[string]string{"email": req.Email})
}

func (s *Server) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyOTPRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accounts[req.Email]
	if !ok {
		writeError(w, http.StatusNotFound, "account not found")
		return
	}
	if req.Code != DemoOTP {
		writeError(w, http.StatusBadRequest, "invalid verification code")
		return
	}
	acct.verified = true
	acct.user.Verified = true
	tokens, err := s.issue(acct)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeData(w, http.StatusOK, "account verified", tokens)
}

func (s *Server) handleResendOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.ResendOTPRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[req.Email]; !ok {
		writeError(w, http.StatusNotFound, "account not found")
		return
	}
	writeData(w, http.StatusOK, "verification code sent", nil)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req domain.RefreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	email, ok := s.refresh[req.RefreshToken]
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}
	delete(s.refresh, req.RefreshToken)
	tokens, err := s.issue(s.accounts[email])
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeData(w, http.StatusOK, "token refreshed", tokens)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	acct := accountFrom(r)

	s.mu.Lock()
	for token, email := range s.refresh {
		if email == acct.user.Email {
			delete(s.refresh, token)
		}
	}
	s.mu.Unlock()
	writeData(w, http.StatusOK, "logged out", nil)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	user := accountFrom(r).user
	s.mu.Unlock()
	writeData(w, http.StatusOK, "", user)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	user := &accountFrom(r).user
	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	writeData(w, http.StatusOK, "profile updated", *user)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateSettingsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	settings := &accountFrom(r).user.Settings
	if req.PushNotifications != nil {
		settings.PushNotifications = *req.PushNotifications
	}
	if req.EmailNotifications != nil {
		settings.EmailNotifications = *req.EmailNotifications
	}
	if req.Biometrics != nil {
		settings.Biometrics = *req.Biometrics
	}
	if req.Currency != "" {
		settings.Currency = req.Currency
	}
	writeData(w, http.StatusOK, "settings updated", *settings)
}
