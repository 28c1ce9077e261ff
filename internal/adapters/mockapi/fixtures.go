package mockapi

import (
	"time"

	"go.trai.ch/capigrow/internal/core/domain"
)

func (s *Server) seed() {
	s.investments = []domain.Investment{
		{ID: "1", Name: "Treasury Bills 91-Day", Category: "fixed-income", RiskLevel: "low", AnnualRate: 12.5, MinAmount: 10000, Currency: domain.DefaultCurrency, DurationDays: 91, Status: domain.InvestmentActive, Description: "Short term federal government securities."},
		{ID: "2", Name: "Agro Growth Fund", Category: "agriculture", RiskLevel: "medium", AnnualRate: 18, MinAmount: 50000, Currency: domain.DefaultCurrency, DurationDays: 180, Status: domain.InvestmentActive, Description: "Seasonal financing for cassava and maize farms."},
		{ID: "3", Name: "Lagos Real Estate Note", Category: "real-estate", RiskLevel: "medium", AnnualRate: 22, MinAmount: 250000, Currency: domain.DefaultCurrency, DurationDays: 365, Status: domain.InvestmentActive, Description: "Fractional ownership of residential developments."},
		{ID: "4", Name: "Dollar Eurobond Fund", Category: "fixed-income", RiskLevel: "low", AnnualRate: 7.5, MinAmount: 100, Currency: "USD", DurationDays: 365, Status: domain.InvestmentActive, Description: "Sovereign and corporate dollar bonds."},
		{ID: "5", Name: "Tech Startups Basket", Category: "equity", RiskLevel: "high", AnnualRate: 30, MinAmount: 100000, Currency: domain.DefaultCurrency, DurationDays: 730, Status: domain.InvestmentComingSoon, Description: "Diversified early stage technology equity."},
		{ID: "42", Name: "Commercial Paper Series 42", Category: "fixed-income", RiskLevel: "low", AnnualRate: 15, MinAmount: 5000, Currency: domain.DefaultCurrency, DurationDays: 270, Status: domain.InvestmentActive, Description: "Short term notes from listed corporates."},
	}

	demo := &account{
		user: domain.User{
			ID:          "user-1",
			FirstName:   "Ada",
			LastName:    "Okafor",
			Email:       DemoEmail,
			Phone:       "08031234567",
			DateOfBirth: "1992-04-18",
			KYCLevel:    1,
			Verified:    true,
			Settings:    domain.UserSettings{PushNotifications: true, EmailNotifications: true, Currency: domain.DefaultCurrency},
		},
		password: DemoPassword,
		verified: true,
	}
	s.accounts[demo.user.Email] = demo

	start := time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC)
	s.portfolios[demo.user.ID] = &domain.Portfolio{
		Currency:      domain.DefaultCurrency,
		TotalInvested: 150000,
		CurrentValue:  163250,
		WalletBalance: 75000,
		Holdings: []domain.Holding{
			{ID: "h-1", InvestmentID: "1", Name: "Treasury Bills 91-Day", Principal: 100000, CurrentValue: 106250, AnnualRate: 12.5, StartDate: start.Format(time.DateOnly)},
			{ID: "h-2", InvestmentID: "2", Name: "Agro Growth Fund", Principal: 50000, CurrentValue: 57000, AnnualRate: 18, StartDate: start.AddDate(0, 1, 0).Format(time.DateOnly)},
		},
	}

	s.transactions[demo.user.ID] = []domain.Transaction{
		{ID: "tx-3", Type: "investment", Amount: 50000, Currency: domain.DefaultCurrency, Status: "completed", Reference: "CG-000003", Description: "Agro Growth Fund", CreatedAt: start.AddDate(0, 1, 0).Format(time.RFC3339)},
		{ID: "tx-2", Type: "investment", Amount: 100000, Currency: domain.DefaultCurrency, Status: "completed", Reference: "CG-000002", Description: "Treasury Bills 91-Day", CreatedAt: start.Format(time.RFC3339)},
		{ID: "tx-1", Type: "deposit", Amount: 225000, Currency: domain.DefaultCurrency, Status: "completed", Reference: "CG-000001", Description: "Wallet funding", CreatedAt: start.AddDate(0, 0, -1).Format(time.RFC3339)},
	}

	s.notifications[demo.user.ID] = []domain.Notification{
		{ID: "n-2", Title: "Returns credited", Body: "Your Treasury Bills holding earned ₦6,250.", Kind: "returns", CreatedAt: start.AddDate(0, 2, 0).Format(time.RFC3339)},
		{ID: "n-1", Title: "Welcome to CapiGrow", Body: "Complete your verification to unlock higher limits.", Kind: "system", Read: true, CreatedAt: start.AddDate(0, 0, -1).Format(time.RFC3339)},
	}

	s.kyc[demo.user.ID] = &domain.VerificationStatus{
		Level:          1,
		BVNVerified:    true,
		DocumentStatus: domain.VerificationNotStarted,
		SelfieStatus:   domain.VerificationNotStarted,
		Overall:        domain.VerificationPending,
	}
}
