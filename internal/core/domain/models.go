package domain

import (
	"strconv"
	"time"
)

// User is the authenticated investor's profile.
type User struct {
	ID          string       `json:"id"`
	FirstName   string       `json:"firstName"`
	LastName    string       `json:"lastName"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone,omitempty"`
	DateOfBirth string       `json:"dateOfBirth,omitempty"`
	KYCLevel    int          `json:"kycLevel"`
	Verified    bool         `json:"isVerified"`
	Settings    UserSettings `json:"settings"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// UserSettings are the account preferences stored server side.
type UserSettings struct {
	PushNotifications  bool   `json:"pushNotifications"`
	EmailNotifications bool   `json:"emailNotifications"`
	Biometrics         bool   `json:"biometrics"`
	Currency           string `json:"currency,omitempty"`
}

// AuthTokens is the token pair issued by login, OTP verification and refresh.
type AuthTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user,omitempty"`
}

// Investment is a product in the investment catalogue.
type Investment struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	RiskLevel    string  `json:"riskLevel"`
	AnnualRate   float64 `json:"annualRate"`
	MinAmount    float64 `json:"minAmount"`
	Currency     string  `json:"currency"`
	DurationDays int     `json:"durationDays"`
	Description  string  `json:"description,omitempty"`
	Status       string  `json:"status"`
}

// ComingSoon reports whether the product is listed but not yet open for subscription.
func (i Investment) ComingSoon() bool {
	return i.Status == InvestmentComingSoon
}

// Investment statuses.
const (
	InvestmentActive     = "active"
	InvestmentComingSoon = "coming_soon"
	InvestmentClosed     = "closed"
)

// InvestmentFilter narrows the investment catalogue.
type InvestmentFilter struct {
	Category  string
	RiskLevel string
	Status    string
}

// Fields returns the set filters, omitting empty ones, for use in cache keys and query strings.
func (f InvestmentFilter) Fields() map[string]string {
	return compactFields(map[string]string{
		"category":  f.Category,
		"riskLevel": f.RiskLevel,
		"status":    f.Status,
	})
}

// Holding is a position the user holds in one investment.
type Holding struct {
	ID           string  `json:"id"`
	InvestmentID string  `json:"investmentId"`
	Name         string  `json:"name"`
	Principal    float64 `json:"principal"`
	CurrentValue float64 `json:"currentValue"`
	AnnualRate   float64 `json:"annualRate"`
	StartDate    string  `json:"startDate"`
	MaturityDate string  `json:"maturityDate,omitempty"`
}

// Portfolio aggregates the user's holdings.
type Portfolio struct {
	Currency      string    `json:"currency"`
	TotalInvested float64   `json:"totalInvested"`
	CurrentValue  float64   `json:"currentValue"`
	WalletBalance float64   `json:"walletBalance"`
	Holdings      []Holding `json:"holdings"`
}

// Returns is the absolute gain over the invested total.
func (p Portfolio) Returns() float64 {
	return p.CurrentValue - p.TotalInvested
}

// ReturnPercent is the gain as a percentage of the invested total.
func (p Portfolio) ReturnPercent() float64 {
	return PercentChange(p.TotalInvested, p.CurrentValue)
}

// Transaction is a money movement on the user's account.
type Transaction struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Status      string  `json:"status"`
	Reference   string  `json:"reference"`
	Description string  `json:"description,omitempty"`
	CreatedAt   string  `json:"createdAt"`
}

// Time parses CreatedAt.
func (t Transaction) Time() (time.Time, error) {
	return ParseDate(t.CreatedAt)
}

// TransactionFilter narrows the transaction history.
type TransactionFilter struct {
	Type   string
	Status string
	Period string
	Page   int
}

// Fields returns the set filters, omitting empty ones.
func (f TransactionFilter) Fields() map[string]string {
	page := ""
	if f.Page > 0 {
		page = strconv.Itoa(f.Page)
	}
	return compactFields(map[string]string{
		"type":   f.Type,
		"status": f.Status,
		"period": f.Period,
		"page":   page,
	})
}

// Notification is an in-app message.
type Notification struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Kind      string `json:"type,omitempty"`
	Read      bool   `json:"isRead"`
	CreatedAt string `json:"createdAt"`
}

// VerificationStatus is the KYC state of the account.
type VerificationStatus struct {
	Level          int    `json:"level"`
	BVNVerified    bool   `json:"bvnVerified"`
	DocumentStatus string `json:"documentStatus"`
	SelfieStatus   string `json:"selfieStatus"`
	Overall        string `json:"status"`
}

// Verification states used by documents, selfies and the overall status.
const (
	VerificationNotStarted = "not_started"
	VerificationPending    = "pending"
	VerificationVerified   = "verified"
	VerificationRejected   = "rejected"
)

// Complete reports whether every KYC step is verified.
func (v VerificationStatus) Complete() bool {
	return v.BVNVerified && v.DocumentStatus == VerificationVerified && v.SelfieStatus == VerificationVerified
}

// Document is the server's record of an uploaded KYC file.
type Document struct {
	ID       string `json:"id"`
	Kind     string `json:"type"`
	Filename string `json:"filename"`
	Status   string `json:"status"`
}

func compactFields(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		if v != "" {
			out[k] = v
		}
	}
	return out
}
