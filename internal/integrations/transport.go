package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultTimeout bounds a single adapter call when none is configured.
	DefaultTimeout = 15 * time.Second
	maxResponse    = 4 << 20
)

// Request describes one call to an upstream API.
type Request struct {
	// Op names the operation for metrics, spans and errors ("search", "create").
	Op     string
	Method string
	// Path is joined to the transport base URL unless it is already absolute.
	Path  string
	Query url.Values
	Body  any
}

// Transport performs JSON calls against one upstream with a per-call timeout,
// an authorizer, metrics and tracing. A zero Transport is not usable; build
// one with NewTransport.
type Transport struct {
	system    System
	baseURL   string
	client    *http.Client
	timeout   time.Duration
	authorize func(*http.Request)
	metrics   *Metrics
	tracer    trace.Tracer
}

// Option configures a Transport.
type Option func(*Transport)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(t *Transport) {
		if c != nil {
			t.client = c
		}
	}
}

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(t *Transport) {
		if d > 0 {
			t.timeout = d
		}
	}
}

// WithMetrics records call outcomes and durations.
func WithMetrics(m *Metrics) Option {
	return func(t *Transport) {
		t.metrics = m
	}
}

// WithAuthorizer sets the function that adds credentials to each request.
func WithAuthorizer(fn func(*http.Request)) Option {
	return func(t *Transport) {
		t.authorize = fn
	}
}

// NewTransport builds a transport for system rooted at baseURL.
func NewTransport(system System, baseURL string, opts ...Option) *Transport {
	t := &Transport{
		system:  system,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		timeout: DefaultTimeout,
		tracer:  otel.Tracer("backoffice/integrations"),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// System returns the system this transport talks to.
func (t *Transport) System() System {
	return t.system
}

// Do executes req and returns the raw response body of a 2xx answer.
// Every failure is an *Error: 404 maps to KindNotFound, anything else
// (network, timeout, 4xx, 5xx) to KindUpstreamUnavailable.
func (t *Transport) Do(ctx context.Context, req Request) (body []byte, err error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	ctx, span := t.tracer.Start(ctx, string(t.system)+"."+req.Op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("integration.system", string(t.system)),
			attribute.String("http.request.method", req.Method),
		),
	)
	start := time.Now()
	status := 0
	defer func() {
		span.SetAttributes(attribute.Int("http.response.status_code", status))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, string(KindOf(err)))
		}
		span.End()
		t.metrics.observe(t.system, req.Op, err, time.Since(start))
	}()

	httpReq, err := t.newRequest(ctx, req)
	if err != nil {
		return nil, &Error{Kind: KindUpstreamUnavailable, System: t.system, Op: req.Op, Err: err}
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("timed out after %s: %w", t.timeout, err)
		}
		return nil, &Error{Kind: KindUpstreamUnavailable, System: t.system, Op: req.Op, Err: err}
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	body, err = io.ReadAll(io.LimitReader(resp.Body, maxResponse))
	if err != nil {
		return nil, &Error{Kind: KindUpstreamUnavailable, System: t.system, Op: req.Op, HTTPStatus: status, Err: err}
	}

	if status < 200 || status > 299 {
		kind := KindUpstreamUnavailable
		if status == http.StatusNotFound {
			kind = KindNotFound
		}
		return nil, &Error{
			Kind:       kind,
			System:     t.system,
			Op:         req.Op,
			HTTPStatus: status,
			Body:       Snippet(body),
			Err:        fmt.Errorf("unexpected status %d", status),
		}
	}
	return body, nil
}

func (t *Transport) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	target := req.Path
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		target = t.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	}
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	if len(req.Query) > 0 {
		q := u.Query()
		for k, vs := range req.Query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	var reader io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if t.authorize != nil {
		t.authorize(httpReq)
	}
	return httpReq, nil
}
