// Package gateway implements ports.Gateway over HTTP and the API's JSON envelope.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.trai.ch/capigrow/internal/core/domain"
	"go.trai.ch/capigrow/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/time/rate"
)

const (
	// DefaultDataPath is the envelope field holding the payload.
	DefaultDataPath = "data"
	// RequestIDHeader carries a per-call identifier for server-side correlation.
	RequestIDHeader = "X-Request-ID"
	// UploadField is the multipart field name of an uploaded file.
	UploadField = "file"

	maxResponseBytes = 10 << 20
)

// Options configure a Gateway.
type Options struct {
	BaseURL string
	Timeout time.Duration
	// RateLimit is the sustained number of requests per second. Zero disables pacing.
	RateLimit float64
	RateBurst int
	// DataPath is the gjson path of the payload inside the envelope.
	DataPath string
	// HTTPClient replaces the default client. Its Timeout is left untouched.
	HTTPClient *http.Client
}

// OptionsFromConfig derives gateway options from the resolved configuration.
func OptionsFromConfig(cfg *domain.Config) Options {
	return Options{
		BaseURL:   cfg.APIBaseURL,
		Timeout:   cfg.RequestTimeout,
		RateLimit: cfg.RateLimit,
		RateBurst: cfg.RateBurst,
	}
}

// Gateway is a stateless HTTP client for the remote API. It never caches and never retries.
type Gateway struct {
	baseURL  string
	dataPath string
	client   *http.Client
	limiter  *rate.Limiter
	sessions ports.SessionStore
	logger   ports.Logger
}

// New creates a Gateway. Requests carry the bearer token of the session held by sessions.
func New(opts Options, sessions ports.SessionStore, logger ports.Logger) *Gateway {
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = domain.DefaultRequestTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RateLimit > 0 {
		burst := max(opts.RateBurst, 1)
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	dataPath := opts.DataPath
	if dataPath == "" {
		dataPath = DefaultDataPath
	}

	return &Gateway{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		dataPath: dataPath,
		client:   client,
		limiter:  limiter,
		sessions: sessions,
		logger:   logger,
	}
}

// Call performs req and decodes the response envelope.
func (g *Gateway) Call(ctx context.Context, req domain.APIRequest) (*domain.APIResponse, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, domain.NewNetworkError(err)
	}

	httpReq, err := g.newRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := g.client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, domain.NewNetworkError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, domain.NewNetworkError(err)
	}

	g.logger.Debug(fmt.Sprintf("%s %s -> %d in %s", req.Method, req.Path, resp.StatusCode, time.Since(start).Round(time.Millisecond)))
	return g.decode(resp.StatusCode, body)
}

func (g *Gateway) newRequest(ctx context.Context, req domain.APIRequest) (*http.Request, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	target := g.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case req.Upload != nil:
		buf, ct, err := encodeUpload(req.Upload)
		if err != nil {
			return nil, err
		}
		body, contentType = buf, ct
	case req.Body != nil:
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, zerr.Wrap(err, "failed to encode request body")
		}
		body, contentType = bytes.NewReader(data), "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to build request"), "path", req.Path)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(RequestIDHeader, uuid.NewString())
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if !req.Anonymous {
		session, err := g.sessions.Load()
		if err != nil {
			return nil, zerr.Wrap(err, "failed to load session")
		}
		if session.HasToken() {
			httpReq.Header.Set("Authorization", "Bearer "+session.AccessToken)
		}
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	return httpReq, nil
}

func encodeUpload(up *domain.UploadRequest) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("type", up.Kind); err != nil {
		return nil, "", zerr.Wrap(err, "failed to encode upload")
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, UploadField, up.Filename))
	h.Set("Content-Type", up.ContentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", zerr.Wrap(err, "failed to encode upload")
	}
	if _, err := io.Copy(part, up.Content); err != nil {
		return nil, "", zerr.With(zerr.Wrap(err, "failed to read upload content"), "filename", up.Filename)
	}
	if err := w.Close(); err != nil {
		return nil, "", zerr.Wrap(err, "failed to encode upload")
	}
	return &buf, w.FormDataContentType(), nil
}

func (g *Gateway) decode(status int, body []byte) (*domain.APIResponse, error) {
	message := envelopeMessage(body)

	switch {
	case status >= http.StatusInternalServerError:
		return nil, domain.NewServerError(status, message)
	case status >= http.StatusBadRequest:
		return nil, domain.NewClientError(status, message)
	case status < http.StatusOK || status >= http.StatusMultipleChoices:
		return nil, domain.NewClientError(status, message)
	}

	out := &domain.APIResponse{Status: status, Message: message}
	if len(bytes.TrimSpace(body)) == 0 {
		return out, nil
	}
	if !gjson.ValidBytes(body) {
		return nil, domain.NewParseError(errors.New("response body is not valid JSON"))
	}

	if success := gjson.GetBytes(body, "success"); success.Exists() && !success.Bool() {
		if message == "" {
			message = "request was not successful"
		}
		return nil, domain.NewApplicationError(status, message)
	}

	if data := gjson.GetBytes(body, g.dataPath); data.Exists() {
		out.Payload = []byte(data.Raw)
	} else {
		out.Payload = body
	}
	return out, nil
}

func envelopeMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return strings.TrimSpace(string(body))
	}
	for _, path := range []string{"message", "error.message", "error"} {
		if r := gjson.GetBytes(body, path); r.Exists() && r.Type == gjson.String {
			return r.String()
		}
	}
	return ""
}
