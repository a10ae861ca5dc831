// Package apiclient is the request client for the quote API. Every call sends
// an optional JSON body, the anti-forgery token header, and decodes the JSON
// answer. It never retries; callers decide what a failure means to the user.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/goliatone/go-cotizador/pkg/page"
)

// RequestIDHeader tags each request so server logs can be correlated.
const RequestIDHeader = "X-Request-ID"

// SessionCookieName is the Django session cookie.
const SessionCookieName = "sessionid"

const defaultTimeout = 30 * time.Second

// Client talks to the quote server.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	timeout   time.Duration
	tokens    TokenSource
	sessionID string
	logger    *zap.Logger
	metrics   *Metrics
	tracer    trace.Tracer
	newID     func() string
}

// New builds a client rooted at baseURL (scheme and host, optionally a path
// prefix the quote app is mounted under).
func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("apiclient: parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("apiclient: base url %q must be absolute", baseURL)
	}
	base.Path = strings.TrimRight(base.Path, "/")

	c := &Client{
		baseURL: base,
		http:    &http.Client{},
		timeout: defaultTimeout,
		logger:  zap.NewNop(),
		tracer:  otel.Tracer("github.com/goliatone/go-cotizador/pkg/apiclient"),
		newID:   func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(c)
	}

	if c.http.Timeout == 0 {
		c.http.Timeout = c.timeout
	}
	if c.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("apiclient: cookie jar: %w", err)
		}
		c.http.Jar = jar
	}
	if c.sessionID != "" {
		c.http.Jar.SetCookies(c.baseURL, []*http.Cookie{{Name: SessionCookieName, Value: c.sessionID, Path: "/"}})
	}
	if c.tokens == nil {
		c.tokens = c.CookieToken()
	}
	return c, nil
}

// CookieToken returns a TokenSource that reads the csrftoken cookie from this
// client's jar.
func (c *Client) CookieToken() TokenSource {
	return CookieToken{jar: c.http.Jar, base: c.baseURL, name: CSRFCookieName}
}

// BaseURL returns the configured root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Do issues a request against path. An empty method means GET. A non-nil
// payload is sent as JSON. The body is decoded into out whatever the status
// code, because the server reports logical failures inside the JSON payload.
func (c *Client) Do(ctx context.Context, method, path string, payload, out any) error {
	return c.call(ctx, "custom", method, path, payload, out)
}

func (c *Client) call(ctx context.Context, endpoint, method, path string, payload, out any) error {
	if method == "" {
		method = http.MethodGet
	}
	requestID := c.newID()

	ctx, span := c.tracer.Start(ctx, "cotizador.api."+endpoint, trace.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.path", path),
		attribute.String("request.id", requestID),
	))
	defer span.End()

	start := time.Now()
	status, err := c.roundTrip(ctx, method, path, requestID, payload, out)
	elapsed := time.Since(start)

	fields := []zap.Field{
		zap.String("endpoint", endpoint),
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
		zap.Int("status", status),
		zap.Duration("elapsed", elapsed),
	}

	outcome := outcomeOK
	if err != nil {
		var decodeErr *DecodeError
		if errors.As(err, &decodeErr) {
			outcome = outcomeDecode
		} else {
			outcome = outcomeTransport
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		c.logger.Error("quote api request failed", append(fields, zap.Error(err))...)
	} else {
		span.SetAttributes(attribute.Int("http.status_code", status))
		c.logger.Debug("quote api request", fields...)
	}
	c.metrics.observe(endpoint, method, outcome, elapsed)
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path, requestID string, payload, out any) (int, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return 0, fmt.Errorf("apiclient: encode payload: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path), body)
	if err != nil {
		return 0, &TransportError{Method: method, Path: path, Err: err}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return 0, fmt.Errorf("apiclient: anti-forgery token: %w", err)
	}
	req.Header.Set(CSRFHeader, token)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, &TransportError{Method: method, Path: path, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if out == nil {
		if _, err := io.Copy(io.Discard, resp.Body); err != nil {
			return resp.StatusCode, &TransportError{Method: method, Path: path, Err: err}
		}
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, &DecodeError{Method: method, Path: path, Status: resp.StatusCode, Err: err}
	}
	return resp.StatusCode, nil
}

// FetchPage loads a server-rendered page. It is how the workbench re-derives
// state after a mutation.
func (c *Client) FetchPage(ctx context.Context, path string) (*page.Document, error) {
	var doc *page.Document
	requestID := c.newID()

	ctx, span := c.tracer.Start(ctx, "cotizador.api.page", trace.WithAttributes(
		attribute.String("http.path", path),
		attribute.String("request.id", requestID),
	))
	defer span.End()

	start := time.Now()
	err := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolve(path), nil)
		if err != nil {
			return &TransportError{Method: http.MethodGet, Path: path, Err: err}
		}
		req.Header.Set("Accept", "text/html")
		req.Header.Set(RequestIDHeader, requestID)

		resp, err := c.http.Do(req)
		if err != nil {
			return &TransportError{Method: http.MethodGet, Path: path, Err: err}
		}
		defer func() {
			_ = resp.Body.Close()
		}()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return &StatusError{Code: resp.StatusCode, Path: path}
		}
		doc, err = page.Parse(resp.Body)
		return err
	}()

	outcome := outcomeOK
	if err != nil {
		outcome = outcomeTransport
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		c.logger.Error("quote page fetch failed", zap.String("path", path), zap.String("request_id", requestID), zap.Error(err))
	}
	c.metrics.observe("page", http.MethodGet, outcome, time.Since(start))
	return doc, err
}

func (c *Client) resolve(path string) string {
	ref := *c.baseURL
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	rawPath, rawQuery, _ := strings.Cut(path, "?")
	ref.Path = c.baseURL.Path + rawPath
	ref.RawQuery = rawQuery
	return ref.String()
}
