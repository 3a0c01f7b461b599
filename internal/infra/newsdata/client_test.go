package newsdata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"headlines/internal/domain/entity"
	"headlines/internal/resilience/circuitbreaker"
)

const testAPIKey = "pub_0123456789abcdef"

const successBody = `{
  "status": "success",
  "totalResults": 3,
  "results": [
    {
      "article_id": "a1",
      "title": "  Chip makers rally  ",
      "link": "https://example.com/chips",
      "description": "<p>Shares <b>rose</b>\n sharply &amp; quickly.</p>",
      "pubDate": "2024-05-01 12:30:00",
      "pubDateTZ": "UTC",
      "source_id": "example",
      "source_name": "Example News"
    },
    {
      "article_id": "a2",
      "title": "Second story",
      "link": "https://example.com/second",
      "description": null,
      "pubDate": "2024-05-01 11:00:00",
      "source_id": "wire",
      "source_name": ""
    },
    {
      "article_id": "a3",
      "title": "Third story",
      "link": "https://example.com/third",
      "pubDate": "not a date",
      "source_id": "third"
    }
  ],
  "nextPage": "1714566000000"
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{
		BaseURL:  srv.URL + "/api/1",
		APIKey:   testAPIKey,
		Timeout:  2 * time.Second,
		PageSize: 10,
	})
	require.NoError(t, err)
	return c
}

func mustQuery(t *testing.T, in entity.QueryInput) entity.Query {
	t.Helper()
	if in.Limit == 0 {
		in.Limit = entity.DefaultLimit
	}
	q, err := entity.NewQuery(in)
	require.NoError(t, err)
	return q
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(Config{BaseURL: "https://newsdata.io/api/1"})
	assert.Error(t, err)

	_, err = NewClient(Config{BaseURL: "::bad", APIKey: testAPIKey})
	assert.Error(t, err)

	c, err := NewClient(Config{BaseURL: "https://newsdata.io/api/1/", APIKey: testAPIKey})
	require.NoError(t, err)
	assert.Equal(t, "https://newsdata.io/api/1", c.baseURL)
	assert.Equal(t, 10, c.pageSize)
	assert.Equal(t, "closed", c.BreakerState())
}

func TestClient_Fetch_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/1/latest", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(successBody))
	})

	got, err := c.Fetch(context.Background(), mustQuery(t, entity.QueryInput{}))
	require.NoError(t, err)

	want := []entity.Article{
		{
			Title:       "Chip makers rally",
			Link:        "https://example.com/chips",
			Source:      "Example News",
			PublishedAt: time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC),
			Description: "Shares rose sharply & quickly.",
		},
		{
			Title:       "Second story",
			Link:        "https://example.com/second",
			Source:      "wire",
			PublishedAt: time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC),
		},
		{
			Title:  "Third story",
			Link:   "https://example.com/third",
			Source: "third",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("articles mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_Fetch_SendsQueryParameters(t *testing.T) {
	var captured atomic.Value
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		captured.Store(r.URL.Query())
		_, _ = w.Write([]byte(`{"status":"success","results":[]}`))
	})

	q := mustQuery(t, entity.QueryInput{
		Keyword:  "  climate  ",
		Category: "Science",
		Language: "fr",
		Country:  "FR",
		Limit:    25,
	})
	got, err := c.Fetch(context.Background(), q)
	require.NoError(t, err)
	assert.Empty(t, got)

	params := captured.Load().(url.Values)
	assert.Equal(t, []string{testAPIKey}, params["apikey"])
	assert.Equal(t, []string{"fr"}, params["language"])
	assert.Equal(t, []string{"science"}, params["category"])
	assert.Equal(t, []string{"fr"}, params["country"])
	assert.Equal(t, []string{"climate"}, params["q"])
	assert.Equal(t, []string{"10"}, params["size"], "size is capped at the page size")
}

func TestClient_Fetch_OmitsEmptyFilters(t *testing.T) {
	var captured atomic.Value
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		captured.Store(r.URL.Query())
		_, _ = w.Write([]byte(`{"status":"success","results":[]}`))
	})

	_, err := c.Fetch(context.Background(), mustQuery(t, entity.QueryInput{Limit: 3}))
	require.NoError(t, err)

	params := captured.Load().(url.Values)
	assert.NotContains(t, params, "category")
	assert.NotContains(t, params, "country")
	assert.NotContains(t, params, "q")
	assert.Equal(t, []string{"en"}, params["language"])
	assert.Equal(t, []string{"3"}, params["size"])
}

func TestClient_Fetch_TruncatesToLimit(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(successBody))
	})

	got, err := c.Fetch(context.Background(), mustQuery(t, entity.QueryInput{Limit: 2}))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Chip makers rally", got[0].Title)
	assert.Equal(t, "Second story", got[1].Title)
}

func TestClient_Fetch_ClientErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantStatus  int
		wantCode    string
		rateLimited bool
	}{
		{
			name:       "unauthorized with error payload",
			status:     http.StatusUnauthorized,
			body:       `{"status":"error","results":{"message":"API key invalid","code":"Unauthorized"}}`,
			wantStatus: http.StatusUnauthorized,
			wantCode:   "Unauthorized",
		},
		{
			name:        "rate limited",
			status:      http.StatusTooManyRequests,
			body:        `{"status":"error","results":{"message":"Rate limit exceeded","code":"RateLimitExceeded"}}`,
			wantStatus:  http.StatusTooManyRequests,
			wantCode:    "RateLimitExceeded",
			rateLimited: true,
		},
		{
			name:       "error payload with 200",
			status:     http.StatusOK,
			body:       `{"status":"error","results":{"message":"country not supported","code":"UnsupportedFilter"}}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "UnsupportedFilter",
		},
		{
			name:       "4xx without JSON",
			status:     http.StatusForbidden,
			body:       `forbidden`,
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.Fetch(context.Background(), mustQuery(t, entity.QueryInput{}))
			var clientErr *entity.ClientError
			require.ErrorAs(t, err, &clientErr)
			assert.Equal(t, tt.wantStatus, clientErr.StatusCode)
			assert.Equal(t, tt.wantCode, clientErr.Code)
			assert.Equal(t, tt.rateLimited, errors.Is(err, entity.ErrRateLimited))
			assert.NotContains(t, err.Error(), testAPIKey)
		})
	}
}

func TestClient_Fetch_ServerErrorIsNetworkError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.Fetch(context.Background(), mustQuery(t, entity.QueryInput{}))
	var netErr *entity.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.ErrorIs(t, err, entity.ErrUpstreamUnavailable)
	assert.Contains(t, err.Error(), "HTTP 502")
	assert.Contains(t, err.Error(), "apikey=REDACTED")
	assert.NotContains(t, err.Error(), testAPIKey)
}

func TestClient_Fetch_UnreachableIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	c, err := NewClient(Config{BaseURL: base, APIKey: testAPIKey, Timeout: time.Second})
	require.NoError(t, err)

	_, err = c.Fetch(context.Background(), mustQuery(t, entity.QueryInput{}))
	var netErr *entity.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.NotContains(t, err.Error(), testAPIKey)
}

func TestClient_Fetch_MalformedSuccessIsNetworkError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	})

	_, err := c.Fetch(context.Background(), mustQuery(t, entity.QueryInput{}))
	var netErr *entity.NetworkError
	assert.ErrorAs(t, err, &netErr)
}

func TestClient_Fetch_ContextCanceled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Fetch(ctx, mustQuery(t, entity.QueryInput{}))
	var netErr *entity.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_Fetch_CircuitOpensOnNetworkErrorsOnly(t *testing.T) {
	var calls atomic.Int32
	var failing atomic.Bool
	failing.Store(false)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if failing.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status":"error","results":{"message":"bad key","code":"Unauthorized"}}`))
	}))
	t.Cleanup(srv.Close)

	cbCfg := circuitbreaker.NewsDataConfig()
	cbCfg.Timeout = time.Minute
	c, err := NewClient(Config{BaseURL: srv.URL, APIKey: testAPIKey, Timeout: time.Second},
		WithCircuitBreaker(cbCfg))
	require.NoError(t, err)
	q := mustQuery(t, entity.QueryInput{})

	for i := 0; i < 5; i++ {
		_, err := c.Fetch(context.Background(), q)
		var clientErr *entity.ClientError
		require.ErrorAs(t, err, &clientErr)
	}
	assert.Equal(t, "closed", c.BreakerState(), "client errors must not trip the breaker")

	// Five successes are already counted, so eight failures reach the 0.6 ratio.
	failing.Store(true)
	for i := 0; i < 8; i++ {
		_, _ = c.Fetch(context.Background(), q)
	}
	assert.Equal(t, "open", c.BreakerState())
	assert.True(t, c.BreakerOpen())

	before := calls.Load()
	_, err = c.Fetch(context.Background(), q)
	var netErr *entity.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, before, calls.Load(), "open circuit must not reach the API")
}

func TestClient_Fetch_CancellationDoesNotTripBreaker(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	q := mustQuery(t, entity.QueryInput{})

	for i := 0; i < 10; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := c.Fetch(ctx, q)
		require.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, "closed", c.BreakerState())
	assert.False(t, c.BreakerOpen())
}

func TestCountsAsSuccess(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"no error", nil, true},
		{"client error", &entity.ClientError{StatusCode: http.StatusUnauthorized, Message: "bad key"}, true},
		{"caller cancelled", &entity.NetworkError{Op: "request", Err: context.Canceled}, true},
		{"transport failure", &entity.NetworkError{Op: "request", Err: errors.New("connection refused")}, false},
		{"deadline exceeded", &entity.NetworkError{Op: "request", Err: context.DeadlineExceeded}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, countsAsSuccess(tt.err))
		})
	}
}

func TestClient_Fetch_RecordsSpan(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(successBody))
	})

	_, err := c.Fetch(context.Background(), mustQuery(t, entity.QueryInput{Category: "business"}))
	require.NoError(t, err)

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "newsdata.latest", spans[0].Name())

	attrs := map[string]interface{}{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}
	assert.Equal(t, "business", attrs["newsdata.category"])
	assert.Equal(t, int64(3), attrs["newsdata.results"])
}
