package mockapi

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.trai.ch/capigrow/internal/core/domain"
)

// periodDays maps the period filter values to a look-back window.
var periodDays = map[string]int{
	"7d":    7,
	"30d":   30,
	"90d":   90,
	"1y":    365,
	"week":  7,
	"month": 30,
	"year":  365,
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	kind, status, period := q.Get("type"), q.Get("status"), q.Get("period")
	page := 1
	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid page")
			return
		}
		page = n
	}
	var since time.Time
	if days, ok := periodDays[period]; ok {
		since = time.Now().AddDate(0, 0, -days)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	matched := make([]domain.Transaction, 0)
	for _, tx := range s.transactions[accountFrom(r).user.ID] {
		if kind != "" && tx.Type != kind {
			continue
		}
		if status != "" && tx.Status != status {
			continue
		}
		if !since.IsZero() {
			at, err := tx.Time()
			if err != nil || at.Before(since) {
				continue
			}
		}
		matched = append(matched, tx)
	}

	start := min((page-1)*PageSize, len(matched))
	end := min(start+PageSize, len(matched))
	writeData(w, http.StatusOK, "", matched[start:end])
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tx := range s.transactions[accountFrom(r).user.ID] {
		if tx.ID == id {
			writeData(w, http.StatusOK, "", tx)
			return
		}
	}
	writeError(w, http.StatusNotFound, "transaction not found")
}

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]domain.Notification{}, s.notifications[accountFrom(r).user.ID]...)
	writeData(w, http.StatusOK, "", out)
}

func (s *Server) handleUnreadCount(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, n := range s.notifications[accountFrom(r).user.ID] {
		if !n.Read {
			count++
		}
	}
	writeData(w, http.StatusOK, "", map[string]int{"count": count})
}

func (s *Server) handleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.notifications[accountFrom(r).user.ID]
	for i := range list {
		list[i].Read = true
	}
	writeData(w, http.StatusOK, "all notifications marked as read", nil)
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.notifications[accountFrom(r).user.ID]
	for i := range list {
		if list[i].ID == id {
			list[i].Read = true
			writeData(w, http.StatusOK, "notification marked as read", list[i])
			return
		}
	}
	writeError(w, http.StatusNotFound, "notification not found")
}

func (s *Server) handleKYCStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	status := s.kyc[accountFrom(r).user.ID]
	if status == nil {
		writeError(w, http.StatusNotFound, "verification record not found")
		return
	}
	writeData(w, http.StatusOK, "", status)
}

func (s *Server) handleBVN(w http.ResponseWriter, r *http.Request) {
	var req domain.BVNRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "BVN must be 11 digits")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	acct := accountFrom(r)
	status := s.kyc[acct.user.ID]
	status.BVNVerified = true
	s.promote(acct, status)
	writeData(w, http.StatusOK, "BVN verified", status)
}

func (s *Server) handleUpload(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "file is required")
			return
		}
		defer file.Close()
		if _, err := io.Copy(io.Discard, file); err != nil {
			writeError(w, http.StatusBadRequest, "could not read upload")
			return
		}
		if got := r.FormValue("type"); got != "" && got != kind {
			writeError(w, http.StatusBadRequest, "upload type mismatch")
			return
		}
		ct := header.Header.Get("Content-Type")
		if kind == domain.UploadSelfie && !strings.HasPrefix(ct, "image/") {
			writeError(w, http.StatusUnsupportedMediaType, "selfie must be an image")
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		acct := accountFrom(r)
		status := s.kyc[acct.user.ID]
		// Uploads are reviewed instantly by the mock.
		if kind == domain.UploadSelfie {
			status.SelfieStatus = domain.VerificationVerified
		} else {
			status.DocumentStatus = domain.VerificationVerified
		}
		s.promote(acct, status)

		doc := domain.Document{
			ID:       kind + "-" + acct.user.ID,
			Kind:     kind,
			Filename: header.Filename,
			Status:   domain.VerificationVerified,
		}
		writeData(w, http.StatusCreated, "upload received", doc)
	}
}

// promote recomputes the KYC level and overall status. Callers hold s.mu.
func (s *Server) promote(acct *account, status *domain.VerificationStatus) {
	level := 0
	if status.BVNVerified {
		level++
	}
	if status.DocumentStatus == domain.VerificationVerified {
		level++
	}
	if status.SelfieStatus == domain.VerificationVerified {
		level++
	}
	status.Level = level
	switch {
	case status.Complete():
		status.Overall = domain.VerificationVerified
	case level > 0:
		status.Overall = domain.VerificationPending
	default:
		status.Overall = domain.VerificationNotStarted
	}
	acct.user.KYCLevel = level
}
