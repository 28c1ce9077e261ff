package mockapi_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/capigrow/internal/adapters/mockapi"
	"go.trai.ch/capigrow/internal/core/domain"
)

type reply struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func do(t *testing.T, srv http.Handler, method, path, token string, body any) (int, reply) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	var out reply
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec.Code, out
}

func login(t *testing.T, srv http.Handler) string {
	t.Helper()
	code, out := do(t, srv, http.MethodPost, "/auth/login", "", domain.LoginRequest{
		Email:    mockapi.DemoEmail,
		Password: mockapi.DemoPassword,
	})
	require.Equal(t, http.StatusOK, code)
	var tokens domain.AuthTokens
	require.NoError(t, json.Unmarshal(out.Data, &tokens))
	require.NotEmpty(t, tokens.AccessToken)
	return tokens.AccessToken
}

func TestLogin(t *testing.T) {
	srv := mockapi.New()
	token := login(t, srv)

	exp, ok := domain.TokenExpiry(token)
	require.True(t, ok)
	assert.False(t, exp.IsZero())

	code, out := do(t, srv, http.MethodPost, "/auth/login", "", domain.LoginRequest{
		Email:    mockapi.DemoEmail,
		Password: "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, out.Success)
	assert.Equal(t, "invalid email or password", out.Message)
}

func TestAuthenticatedRoutesRequireToken(t *testing.T) {
	srv := mockapi.New()

	code, out := do(t, srv, http.MethodGet, "/portfolio", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, out.Success)

	code, _ = do(t, srv, http.MethodGet, "/portfolio", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Zero(t, srv.Hits("GET /portfolio"))
}

func TestSignupAndVerify(t *testing.T) {
	srv := mockapi.New()
	signup := domain.SignupRequest{
		FirstName:   "Chidi",
		LastName:    "Eze",
		Email:       "chidi@example.com",
		Phone:       "08012345678",
		Password:    "supersecret",
		DateOfBirth: "1990-01-01",
	}

	code, _ := do(t, srv, http.MethodPost, "/auth/signup", "", signup)
	require.Equal(t, http.StatusCreated, code)

	code, _ = do(t, srv, http.MethodPost, "/auth/signup", "", signup)
	assert.Equal(t, http.StatusConflict, code)

	code, out := do(t, srv, http.MethodPost, "/auth/login", "", domain.LoginRequest{Email: signup.Email, Password: signup.Password})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "account not verified", out.Message)

	code, _ = do(t, srv, http.MethodPost, "/auth/verify-otp", "", domain.VerifyOTPRequest{Email: signup.Email, Code: "000000"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, out = do(t, srv, http.MethodPost, "/auth/verify-otp", "", domain.VerifyOTPRequest{Email: signup.Email, Code: mockapi.DemoOTP})
	require.Equal(t, http.StatusOK, code)
	var tokens domain.AuthTokens
	require.NoError(t, json.Unmarshal(out.Data, &tokens))
	require.NotNil(t, tokens.User)
	assert.True(t, tokens.User.Verified)
}

func TestRefreshRotatesToken(t *testing.T) {
	srv := mockapi.New()
	_, out := do(t, srv, http.MethodPost, "/auth/login", "", domain.LoginRequest{Email: mockapi.DemoEmail, Password: mockapi.DemoPassword})
	var tokens domain.AuthTokens
	require.NoError(t, json.Unmarshal(out.Data, &tokens))

	code, _ := do(t, srv, http.MethodPost, "/auth/refresh", "", domain.RefreshRequest{RefreshToken: tokens.RefreshToken})
	require.Equal(t, http.StatusOK, code)

	code, _ = do(t, srv, http.MethodPost, "/auth/refresh", "", domain.RefreshRequest{RefreshToken: tokens.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestInvest(t *testing.T) {
	srv := mockapi.New()
	token := login(t, srv)

	tests := []struct {
		name    string
		req     domain.InvestRequest
		code    int
		success bool
	}{
		{"unknown product", domain.InvestRequest{InvestmentID: "nope", Amount: 10000, PaymentMethod: "card"}, http.StatusNotFound, false},
		{"coming soon", domain.InvestRequest{InvestmentID: "5", Amount: 100000, PaymentMethod: "card"}, http.StatusConflict, false},
		{"below minimum", domain.InvestRequest{InvestmentID: "1", Amount: 500, PaymentMethod: "card"}, http.StatusBadRequest, false},
		{"insufficient wallet", domain.InvestRequest{InvestmentID: "3", Amount: 250000, PaymentMethod: "wallet"}, http.StatusOK, false},
		{"success", domain.InvestRequest{InvestmentID: "42", Amount: 20000, PaymentMethod: "wallet"}, http.StatusCreated, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out := do(t, srv, http.MethodPost, "/investments/invest", token, tt.req)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.success, out.Success)
		})
	}

	_, out := do(t, srv, http.MethodGet, "/portfolio", token, nil)
	var p domain.Portfolio
	require.NoError(t, json.Unmarshal(out.Data, &p))
	assert.Len(t, p.Holdings, 3)
	assert.InDelta(t, 55000, p.WalletBalance, 0.001)
	assert.InDelta(t, 170000, p.TotalInvested, 0.001)

	_, out = do(t, srv, http.MethodGet, "/transactions?type=investment", token, nil)
	var txs []domain.Transaction
	require.NoError(t, json.Unmarshal(out.Data, &txs))
	require.Len(t, txs, 3)
	assert.Equal(t, "Commercial Paper Series 42", txs[0].Description)

	_, out = do(t, srv, http.MethodGet, "/notifications/unread-count", token, nil)
	assert.JSONEq(t, `{"count":2}`, string(out.Data))
}

func TestWithdraw(t *testing.T) {
	srv := mockapi.New()
	token := login(t, srv)

	code, _ := do(t, srv, http.MethodPost, "/investments/withdraw", token, domain.WithdrawRequest{HoldingID: "h-1", Amount: 1e9})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, srv, http.MethodPost, "/investments/withdraw", token, domain.WithdrawRequest{HoldingID: "h-2", Amount: 57000})
	require.Equal(t, http.StatusOK, code)

	_, out := do(t, srv, http.MethodGet, "/portfolio", token, nil)
	var p domain.Portfolio
	require.NoError(t, json.Unmarshal(out.Data, &p))
	assert.Len(t, p.Holdings, 1)
	assert.InDelta(t, 132000, p.WalletBalance, 0.001)
	assert.InDelta(t, 100000, p.TotalInvested, 0.001)
}

func TestInvestmentFilters(t *testing.T) {
	srv := mockapi.New()
	token := login(t, srv)

	_, out := do(t, srv, http.MethodGet, "/investments?category=fixed-income&riskLevel=low", token, nil)
	var list []domain.Investment
	require.NoError(t, json.Unmarshal(out.Data, &list))
	assert.Len(t, list, 3)

	code, out := do(t, srv, http.MethodGet, "/investments/42", token, nil)
	require.Equal(t, http.StatusOK, code)
	var inv domain.Investment
	require.NoError(t, json.Unmarshal(out.Data, &inv))
	assert.Equal(t, "Commercial Paper Series 42", inv.Name)
}

func TestNotifications(t *testing.T) {
	srv := mockapi.New()
	token := login(t, srv)

	code, _ := do(t, srv, http.MethodPatch, "/notifications/n-2/read", token, nil)
	require.Equal(t, http.StatusOK, code)
	_, out := do(t, srv, http.MethodGet, "/notifications/unread-count", token, nil)
	assert.JSONEq(t, `{"count":0}`, string(out.Data))

	code, _ = do(t, srv, http.MethodPatch, "/notifications/missing/read", token, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestUploadAndKYC(t *testing.T) {
	srv := mockapi.New()
	token := login(t, srv)

	upload := func(path, contentType string) int {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="file"; filename="id.png"`)
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image"))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, path, &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusUnsupportedMediaType, upload("/kyc/selfie", "application/pdf"))
	assert.Equal(t, http.StatusCreated, upload("/kyc/document", "image/png"))
	assert.Equal(t, http.StatusCreated, upload("/kyc/selfie", "image/jpeg"))

	_, out := do(t, srv, http.MethodGet, "/kyc/status", token, nil)
	var status domain.VerificationStatus
	require.NoError(t, json.Unmarshal(out.Data, &status))
	assert.True(t, status.Complete())
	assert.Equal(t, 3, status.Level)
	assert.Equal(t, domain.VerificationVerified, status.Overall)
}

func TestFaultInjection(t *testing.T) {
	srv := mockapi.New()
	token := login(t, srv)
	srv.Fail("GET /portfolio", http.StatusServiceUnavailable, 2, "maintenance")

	for range 2 {
		code, out := do(t, srv, http.MethodGet, "/portfolio", token, nil)
		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "maintenance", out.Message)
	}
	code, _ := do(t, srv, http.MethodGet, "/portfolio", token, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 3, srv.Hits("GET /portfolio"))
}

func TestUnknownRoute(t *testing.T) {
	code, out := do(t, mockapi.New(), http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, out.Success)
}
