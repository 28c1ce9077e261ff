package gateway_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/capigrow/internal/adapters/gateway"
	"go.trai.ch/capigrow/internal/core/domain"
	"go.trai.ch/capigrow/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newGateway(t *testing.T, srv *httptest.Server, session domain.Session, opts ...func(*gateway.Options)) *gateway.Gateway {
	t.Helper()
	ctrl := gomock.NewController(t)
	sessions := mocks.NewMockSessionStore(ctrl)
	sessions.EXPECT().Load().Return(session, nil).AnyTimes()
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()

	o := gateway.Options{BaseURL: srv.URL + "/api/v1/", Timeout: 5 * time.Second}
	for _, opt := range opts {
		opt(&o)
	}
	return gateway.New(o, sessions, log)
}

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func TestCall_Success(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		respond(http.StatusOK, `{"success":true,"message":"ok","data":{"id":"42","name":"Treasury Bills"}}`)(w, r)
	}))
	defer srv.Close()

	gw := newGateway(t, srv, domain.Session{AccessToken: "token-1"})
	resp, err := gw.Call(context.Background(), domain.APIRequest{
		Path:  "/investments/42",
		Query: url.Values{"include": {"holdings"}},
	})
	require.NoError(t, err)

	inv, err := domain.DecodeAs[domain.Investment](resp)
	require.NoError(t, err)
	assert.Equal(t, "Treasury Bills", inv.Name)
	assert.Equal(t, "ok", resp.Message)

	require.NotNil(t, got)
	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "/api/v1/investments/42", got.URL.Path)
	assert.Equal(t, "holdings", got.URL.Query().Get("include"))
	assert.Equal(t, "Bearer token-1", got.Header.Get("Authorization"))
	assert.Equal(t, "application/json", got.Header.Get("Accept"))
	_, err = uuid.Parse(got.Header.Get(gateway.RequestIDHeader))
	assert.NoError(t, err)
}

func TestCall_JSONBodyAndAnonymous(t *testing.T) {
	var auth, contentType, body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		contentType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		respond(http.StatusCreated, `{"success":true,"data":{"accessToken":"a","refreshToken":"r"}}`)(w, r)
	}))
	defer srv.Close()

	gw := newGateway(t, srv, domain.Session{AccessToken: "stale"})
	resp, err := gw.Call(context.Background(), domain.APIRequest{
		Method:    http.MethodPost,
		Path:      "auth/login",
		Body:      domain.LoginRequest{Email: "ada@example.com", Password: "password1"},
		Anonymous: true,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.Status)

	assert.Empty(t, auth)
	assert.Equal(t, "application/json", contentType)
	assert.JSONEq(t, `{"email":"ada@example.com","password":"password1"}`, body)
}

func TestCall_NoTokenNoAuthorization(t *testing.T) {
	var auth atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth.Store(r.Header.Get("Authorization"))
		respond(http.StatusOK, `{"success":true,"data":[]}`)(w, r)
	}))
	defer srv.Close()

	_, err := newGateway(t, srv, domain.Session{}).Call(context.Background(), domain.APIRequest{Path: "investments"})
	require.NoError(t, err)
	assert.Equal(t, "", auth.Load())
}

func TestCall_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		kind    domain.ErrorKind
		message string
	}{
		{"not found", http.StatusNotFound, `{"success":false,"message":"investment not found"}`, domain.KindClient, "investment not found"},
		{"unauthorized", http.StatusUnauthorized, `{"error":"token expired"}`, domain.KindClient, "token expired"},
		{"too many", http.StatusTooManyRequests, ``, domain.KindClient, ""},
		{"server", http.StatusInternalServerError, `{"success":false,"message":"database unavailable"}`, domain.KindServer, "database unavailable"},
		{"bad gateway html", http.StatusBadGateway, `<html>bad gateway</html>`, domain.KindServer, "<html>bad gateway</html>"},
		{"application", http.StatusOK, `{"success":false,"message":"insufficient wallet balance"}`, domain.KindApplication, "insufficient wallet balance"},
		{"malformed", http.StatusOK, `{"success":true,"data":`, domain.KindParse, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(respond(tt.status, tt.body))
			defer srv.Close()

			_, err := newGateway(t, srv, domain.Session{}).Call(context.Background(), domain.APIRequest{Path: "x"})
			require.Error(t, err)
			gwErr, ok := domain.AsGatewayError(err)
			require.True(t, ok, "got %T: %v", err, err)
			assert.Equal(t, tt.kind, gwErr.Kind)
			if tt.kind != domain.KindParse {
				assert.Equal(t, tt.status, gwErr.Status)
				assert.Equal(t, tt.message, gwErr.Message)
			}
		})
	}
}

func TestCall_EnvelopeWithoutData(t *testing.T) {
	srv := httptest.NewServer(respond(http.StatusOK, `{"success":true,"unreadCount":3}`))
	defer srv.Close()

	resp, err := newGateway(t, srv, domain.Session{}).Call(context.Background(), domain.APIRequest{Path: "x"})
	require.NoError(t, err)

	var out struct {
		UnreadCount int `json:"unreadCount"`
	}
	require.NoError(t, resp.Decode(&out))
	assert.Equal(t, 3, out.UnreadCount)
}

func TestCall_CustomDataPath(t *testing.T) {
	srv := httptest.NewServer(respond(http.StatusOK, `{"success":true,"result":{"items":["a","b"]}}`))
	defer srv.Close()

	gw := newGateway(t, srv, domain.Session{}, func(o *gateway.Options) { o.DataPath = "result.items" })
	resp, err := gw.Call(context.Background(), domain.APIRequest{Path: "x"})
	require.NoError(t, err)

	items, err := domain.DecodeAs[[]string](resp)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, items)
}

func TestCall_NetworkError(t *testing.T) {
	srv := httptest.NewServer(respond(http.StatusOK, `{}`))
	gw := newGateway(t, srv, domain.Session{})
	srv.Close()

	_, err := gw.Call(context.Background(), domain.APIRequest{Path: "x"})
	gwErr, ok := domain.AsGatewayError(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, domain.KindNetwork, gwErr.Kind)
	assert.True(t, domain.IsRetryable(err))
}

func TestCall_TimeoutIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	gw := newGateway(t, srv, domain.Session{}, func(o *gateway.Options) { o.Timeout = 50 * time.Millisecond })
	_, err := gw.Call(context.Background(), domain.APIRequest{Path: "slow"})
	gwErr, ok := domain.AsGatewayError(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, domain.KindNetwork, gwErr.Kind)
}

func TestCall_CallerCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newGateway(t, srv, domain.Session{}).Call(ctx, domain.APIRequest{Path: "slow"})
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
	assert.False(t, domain.IsRetryable(err))
}

func TestCall_Upload(t *testing.T) {
	var (
		kind, filename, partType, content string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		kind = r.FormValue("type")
		file, header, err := r.FormFile(gateway.UploadField)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer func() { _ = file.Close() }()
		filename = header.Filename
		partType = header.Header.Get("Content-Type")
		data, _ := io.ReadAll(file)
		content = string(data)
		respond(http.StatusOK, `{"success":true,"data":{"id":"doc-1","status":"pending"}}`)(w, r)
	}))
	defer srv.Close()

	resp, err := newGateway(t, srv, domain.Session{AccessToken: "t"}).Call(context.Background(), domain.APIRequest{
		Method: http.MethodPost,
		Path:   "kyc/document",
		Upload: &domain.UploadRequest{
			Kind:        domain.UploadDocument,
			Filename:    "passport.png",
			ContentType: "image/png",
			Content:     strings.NewReader("png-bytes"),
		},
	})
	require.NoError(t, err)

	doc, err := domain.DecodeAs[domain.Document](resp)
	require.NoError(t, err)
	assert.Equal(t, "doc-1", doc.ID)
	assert.Equal(t, domain.UploadDocument, kind)
	assert.Equal(t, "passport.png", filename)
	assert.Equal(t, "image/png", partType)
	assert.Equal(t, "png-bytes", content)
}

func TestCall_RateLimit(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		respond(http.StatusOK, `{"success":true}`)(w, r)
	}))
	defer srv.Close()

	gw := newGateway(t, srv, domain.Session{}, func(o *gateway.Options) {
		o.RateLimit = 0.01
		o.RateBurst = 1
	})

	_, err := gw.Call(context.Background(), domain.APIRequest{Path: "x"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err = gw.Call(ctx, domain.APIRequest{Path: "x"})
	require.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
}
