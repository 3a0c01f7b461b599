// Package newsdata implements the headline fetcher on top of the NewsData.io
// "latest" endpoint.
package newsdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"headlines/internal/domain/entity"
	"headlines/internal/observability/metrics"
	"headlines/internal/observability/tracing"
	"headlines/internal/resilience/circuitbreaker"
)

const (
	latestPath = "/latest"
	userAgent  = "headlines/1.0"

	// maxBodyBytes caps how much of a response is read.
	maxBodyBytes = 4 << 20
)

// Config configures the client.
type Config struct {
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
	PageSize int
}

// Client fetches headlines from NewsData. It is safe for concurrent use.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	pageSize       int
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithCircuitBreaker replaces the circuit breaker configuration.
func WithCircuitBreaker(cfg circuitbreaker.Config) Option {
	return func(c *Client) {
		cfg.IsSuccessful = countsAsSuccess
		c.circuitBreaker = circuitbreaker.New(cfg)
	}
}

// NewClient creates a client for the given configuration.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("newsdata: api key is required")
	}
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("newsdata: invalid base url: %w", err)
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 10
	}

	cbCfg := circuitbreaker.NewsDataConfig()
	cbCfg.IsSuccessful = countsAsSuccess

	c := &Client{
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:         cfg.APIKey,
		pageSize:       cfg.PageSize,
		circuitBreaker: circuitbreaker.New(cbCfg),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// countsAsSuccess keeps rejected requests from tripping the breaker; only
// transport failures mean the upstream is unhealthy. A caller cancelling its
// own request says nothing about the upstream.
func countsAsSuccess(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr *entity.NetworkError
	return !errors.As(err, &netErr)
}

// BreakerState reports the circuit breaker state ("closed", "half-open", "open").
func (c *Client) BreakerState() string {
	return c.circuitBreaker.State().String()
}

// BreakerOpen reports whether the circuit breaker is rejecting requests.
func (c *Client) BreakerOpen() bool {
	return c.circuitBreaker.IsOpen()
}

// Fetch issues a single request for q and returns at most q.Limit articles in
// the order the API returned them.
// Failures are *entity.NetworkError or *entity.ClientError. Nothing is retried.
func (c *Client) Fetch(ctx context.Context, q entity.Query) ([]entity.Article, error) {
	ctx, span := tracing.Tracer().Start(ctx, "newsdata.latest",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("newsdata.language", string(q.Language)),
			attribute.String("newsdata.category", string(q.Category)),
			attribute.String("newsdata.country", string(q.Country)),
			attribute.Int("newsdata.limit", q.Limit),
		),
	)
	defer span.End()

	start := time.Now()
	articles, err := circuitbreaker.Run(c.circuitBreaker, func() ([]entity.Article, error) {
		return c.doFetch(ctx, q)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		slog.Warn("newsdata circuit breaker open, request rejected",
			slog.String("service", c.circuitBreaker.Name()),
			slog.String("state", c.BreakerState()))
		err = &entity.NetworkError{Op: "circuit breaker " + c.BreakerState(), Err: err}
	}

	metrics.RecordUpstreamRequest(metrics.OutcomeFor(err), time.Since(start))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("newsdata.results", len(articles)))
	return articles, nil
}

// doFetch performs the HTTP exchange without the circuit breaker.
func (c *Client) doFetch(ctx context.Context, q entity.Query) ([]entity.Article, error) {
	params := c.params(q)
	endpoint := c.baseURL + latestPath
	op := "GET " + endpoint + "?" + redacted(params)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("newsdata: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// *url.Error embeds the full URL including the key.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, &entity.NetworkError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &entity.NetworkError{Op: op, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode >= 500 {
		return nil, &entity.NetworkError{Op: op, Err: fmt.Errorf("upstream returned HTTP %d", resp.StatusCode)}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		if resp.StatusCode >= 400 {
			return nil, &entity.ClientError{StatusCode: resp.StatusCode}
		}
		return nil, &entity.NetworkError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}

	if resp.StatusCode >= 400 || env.Status == "error" {
		return nil, clientError(resp.StatusCode, env.Results)
	}

	var results []result
	if len(env.Results) > 0 && string(env.Results) != "null" {
		if err := json.Unmarshal(env.Results, &results); err != nil {
			return nil, &entity.NetworkError{Op: op, Err: fmt.Errorf("decode results: %w", err)}
		}
	}

	if len(results) > q.Limit {
		results = results[:q.Limit]
	}
	articles := make([]entity.Article, 0, len(results))
	for _, r := range results {
		articles = append(articles, r.toArticle())
	}

	slog.Debug("newsdata fetch completed",
		slog.String("query", q.String()),
		slog.Int("results", len(articles)),
		slog.Int("total_results", env.TotalResults))

	return articles, nil
}

func (c *Client) params(q entity.Query) url.Values {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("language", string(q.Language))
	if q.Category != "" {
		params.Set("category", string(q.Category))
	}
	if q.Country != "" {
		params.Set("country", string(q.Country))
	}
	if q.Keyword != "" {
		params.Set("q", q.Keyword)
	}
	params.Set("size", strconv.Itoa(min(q.Limit, c.pageSize)))
	return params
}

func clientError(status int, raw json.RawMessage) *entity.ClientError {
	if status < 400 {
		// status:"error" delivered with a 200.
		status = http.StatusBadRequest
	}
	ce := &entity.ClientError{StatusCode: status}
	var detail apiError
	if len(raw) > 0 && json.Unmarshal(raw, &detail) == nil {
		ce.Code = detail.Code
		ce.Message = detail.Message
	}
	return ce
}

func redacted(params url.Values) string {
	cp := url.Values{}
	for k, v := range params {
		cp[k] = v
	}
	cp.Set("apikey", "REDACTED")
	return cp.Encode()
}
