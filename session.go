package infinitode

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

const (
	prodBaseURL = "https://infinitode.prineside.com"
	betaBaseURL = "https://beta.infinitode.prineside.com"

	apiGameID  = "com.prineside.tdi2"
	apiVersion = "282"
)

// Session talks to the leaderboard service. It owns a fasthttp client and is
// safe for concurrent use; every operation is one independent request and
// response exchange with no retries, internal timeouts or caching. Deadlines
// come from the caller's context.
type Session struct {
	client  *fasthttp.Client
	log     zerolog.Logger
	prodURL string
	betaURL string
	closed  atomic.Bool
}

// SessionOption configures a Session at construction time.
type SessionOption func(*Session)

// WithHTTPClient replaces the default fasthttp client.
func WithHTTPClient(client *fasthttp.Client) SessionOption {
	return func(s *Session) {
		if client != nil {
			s.client = client
		}
	}
}

// WithLogger attaches a logger to the session. Requests are logged at info
// level, response bodies at debug level. The default logger discards
// everything.
func WithLogger(log zerolog.Logger) SessionOption {
	return func(s *Session) {
		s.log = log
	}
}

// WithBaseURLs overrides the production and beta service addresses.
func WithBaseURLs(prod, beta string) SessionOption {
	return func(s *Session) {
		if prod != "" {
			s.prodURL = strings.TrimSuffix(prod, "/")
		}
		if beta != "" {
			s.betaURL = strings.TrimSuffix(beta, "/")
		}
	}
}

// NewSession opens a session against the live service.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		log:     zerolog.Nop(),
		prodURL: prodBaseURL,
		betaURL: betaBaseURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close marks the session closed and releases its idle connections. Close is
// idempotent; every operation issued afterwards fails with ErrSessionClosed.
func (s *Session) Close() {
	if s.closed.Swap(true) {
		return
	}
	s.client.CloseIdleConnections()
}

func (s *Session) baseURL(beta bool) string {
	if beta {
		return s.betaURL
	}
	return s.prodURL
}

// Get performs a single GET against the service and returns the raw response
// body. The HTML-backed operations ride this; the JSON actions go through
// apiPost. Only a deadline on ctx aborts the request; cancellation without a
// deadline does not interrupt an exchange in flight.
func (s *Session) Get(ctx context.Context, path string, params url.Values, beta bool) ([]byte, error) {
	return s.get(ctx, strings.TrimLeft(path, "/"), path, params, beta)
}

func (s *Session) get(ctx context.Context, endpoint, path string, params url.Values, beta bool) ([]byte, error) {
	uri := s.baseURL(beta) + path
	if len(params) > 0 {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		uri += sep + params.Encode()
	}
	return s.do(ctx, endpoint, fasthttp.MethodGet, uri, nil)
}

// apiPost issues one form-encoded POST to the JSON API and returns the raw
// envelope bytes. As with Get, only a deadline on ctx aborts the request.
func (s *Session) apiPost(ctx context.Context, endpoint, action string, form url.Values, beta bool) ([]byte, error) {
	uri := fmt.Sprintf("%s/?m=api&a=%s&apiv=1&g=%s&v=%s", s.baseURL(beta), action, apiGameID, apiVersion)
	return s.do(ctx, endpoint, fasthttp.MethodPost, uri, form)
}

func (s *Session) do(ctx context.Context, endpoint, method, uri string, form url.Values) ([]byte, error) {
	if s.closed.Load() {
		return nil, ErrSessionClosed
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(uri)
	req.Header.SetMethod(method)
	if form != nil {
		req.Header.SetContentType("application/x-www-form-urlencoded")
		req.SetBodyString(form.Encode())
	}

	log := s.log.With().
		Str("request_id", uuid.New().String()).
		Str("endpoint", endpoint).
		Logger()
	log.Info().Str("method", method).Str("url", uri).Msg("request started")

	start := time.Now()
	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = s.client.DoDeadline(req, resp, deadline)
	} else {
		err = s.client.Do(req, resp)
	}
	if err != nil {
		return nil, &APIError{Endpoint: endpoint, Message: "request failed", cause: err}
	}

	// the response buffer is recycled on release
	body := append([]byte(nil), resp.Body()...)

	if code := resp.StatusCode(); code < 200 || code >= 300 {
		log.Info().Int("status", code).Msg("request failed")
		msg := strings.TrimSpace(string(body))
		if len(msg) > 200 {
			msg = msg[:200]
		}
		if msg == "" {
			msg = "request failed"
		}
		return nil, &APIError{Endpoint: endpoint, StatusCode: code, Message: msg}
	}

	log.Info().
		Int("status", resp.StatusCode()).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("request completed")
	log.Debug().Bytes("body", body).Msg("response body")

	return body, nil
}
