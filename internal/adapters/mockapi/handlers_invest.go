package mockapi

import (
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.trai.ch/capigrow/internal/core/domain"
)

func (s *Server) handleListInvestments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category, risk, status := q.Get("category"), q.Get("riskLevel"), q.Get("status")

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Investment, 0, len(s.investments))
	for _, inv := range s.investments {
		if category != "" && inv.Category != category {
			continue
		}
		if risk != "" && inv.RiskLevel != risk {
			continue
		}
		if status != "" && inv.Status != status {
			continue
		}
		out = append(out, inv)
	}
	writeData(w, http.StatusOK, "", out)
}

func (s *Server) handleGetInvestment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.findInvestment(id)
	if !ok {
		writeError(w, http.StatusNotFound, "investment not found")
		return
	}
	writeData(w, http.StatusOK, "", inv)
}

func (s *Server) findInvestment(id string) (domain.Investment, bool) {
	i := slices.IndexFunc(s.investments, func(inv domain.Investment) bool { return inv.ID == id })
	if i < 0 {
		return domain.Investment{}, false
	}
	return s.investments[i], true
}

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.portfolios[accountFrom(r).user.ID]
	if p == nil {
		writeError(w, http.StatusNotFound, "portfolio not found")
		return
	}
	writeData(w, http.StatusOK, "", p)
}

func (s *Server) handleInvest(w http.ResponseWriter, r *http.Request) {
	var req domain.InvestRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.findInvestment(req.InvestmentID)
	switch {
	case !ok:
		writeError(w, http.StatusNotFound, "investment not found")
		return
	case inv.ComingSoon():
		writeError(w, http.StatusConflict, "investment is not open yet")
		return
	case req.Amount < inv.MinAmount:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("minimum investment is %s", domain.FormatMoney(inv.MinAmount, inv.Currency)))
		return
	}

	userID := accountFrom(r).user.ID
	p := s.portfolios[userID]
	if req.PaymentMethod == "wallet" && req.Amount > p.WalletBalance {
		// The real backend reports business rule failures with a 200 and success=false.
		writeError(w, http.StatusOK, "insufficient wallet balance")
		return
	}
	if req.PaymentMethod == "wallet" {
		p.WalletBalance -= req.Amount
	}

	now := time.Now().UTC()
	p.Holdings = append(p.Holdings, domain.Holding{
		ID:           "h-" + strconv.Itoa(len(p.Holdings)+1),
		InvestmentID: inv.ID,
		Name:         inv.Name,
		Principal:    req.Amount,
		CurrentValue: req.Amount,
		AnnualRate:   inv.AnnualRate,
		StartDate:    now.Format(time.DateOnly),
		MaturityDate: now.AddDate(0, 0, inv.DurationDays).Format(time.DateOnly),
	})
	p.TotalInvested += req.Amount
	p.CurrentValue += req.Amount

	tx := s.record(userID, "investment", req.Amount, inv.Name, now)
	s.notify(userID, "Investment confirmed", fmt.Sprintf("You invested %s in %s.", domain.FormatMoney(req.Amount, inv.Currency), inv.Name), "investment", now)
	writeData(w, http.StatusCreated, "investment successful", tx)
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	var req domain.WithdrawRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	userID := accountFrom(r).user.ID
	p := s.portfolios[userID]
	i := slices.IndexFunc(p.Holdings, func(h domain.Holding) bool { return h.ID == req.HoldingID })
	if i < 0 {
		writeError(w, http.StatusNotFound, "holding not found")
		return
	}
	h := &p.Holdings[i]
	if req.Amount > h.CurrentValue {
		writeError(w, http.StatusBadRequest, "amount exceeds holding value")
		return
	}

	share := req.Amount / h.CurrentValue
	principal := h.Principal * share
	h.Principal -= principal
	h.CurrentValue -= req.Amount
	name := h.Name
	if h.CurrentValue == 0 {
		p.Holdings = slices.Delete(p.Holdings, i, i+1)
	}
	p.TotalInvested -= principal
	p.CurrentValue -= req.Amount
	p.WalletBalance += req.Amount

	now := time.Now().UTC()
	tx := s.record(userID, "withdrawal", req.Amount, name, now)
	s.notify(userID, "Withdrawal processed", fmt.Sprintf("%s was credited to your wallet.", domain.FormatMoney(req.Amount, p.Currency)), "withdrawal", now)
	writeData(w, http.StatusOK, "withdrawal successful", tx)
}

// record prepends a completed transaction for userID. Callers hold s.mu.
func (s *Server) record(userID, kind string, amount float64, description string, at time.Time) domain.Transaction {
	n := 0
	for _, txs := range s.transactions {
		n += len(txs)
	}
	tx := domain.Transaction{
		ID:          "tx-" + strconv.Itoa(n+1),
		Type:        kind,
		Amount:      amount,
		Currency:    domain.DefaultCurrency,
		Status:      "completed",
		Reference:   fmt.Sprintf("CG-%06d", n+1),
		Description: description,
		CreatedAt:   at.Format(time.RFC3339),
	}
	s.transactions[userID] = append([]domain.Transaction{tx}, s.transactions[userID]...)
	return tx
}

// notify prepends an unread notification for userID. Callers hold s.mu.
func (s *Server) notify(userID, title, body, kind string, at time.Time) {
	n := domain.Notification{
		ID:        "n-" + strconv.Itoa(len(s.notifications[userID])+1),
		Title:     title,
		Body:      body,
		Kind:      kind,
		CreatedAt: at.Format(time.RFC3339),
	}
	s.notifications[userID] = append([]domain.Notification{n}, s.notifications[userID]...)
}
