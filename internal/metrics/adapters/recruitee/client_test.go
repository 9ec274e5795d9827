package recruitee

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"recruitment-metrics-service/internal/metrics/core/domain"
	"recruitment-metrics-service/internal/metrics/core/ports"
)

func testConfig(baseURL string) Config {
	cfg := DefaultConfig()
	cfg.BaseURL = baseURL
	cfg.CompanyID = "acme"
	cfg.APIToken = "secret-token"
	cfg.RequestsPerSecond = 0
	cfg.BackoffInitial = time.Millisecond
	cfg.BackoffMax = 4 * time.Millisecond
	cfg.PageSize = 2
	return cfg
}

func newTestClient(t *testing.T, h http.Handler, mutate func(*Config), opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	cfg := testConfig(srv.URL)
	if mutate != nil {
		mutate(&cfg)
	}
	c, err := New(cfg, opts...)
	require.NoError(t, err)
	return c, srv
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	next:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if labels[lp.GetName()] != lp.GetValue() {
					continue next
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

// ----------------------------------------------------------------------------
// construction
// ----------------------------------------------------------------------------

func TestNew_RequiresCredentials(t *testing.T) {
	_, err := New(Config{APIToken: "x"})
	require.Error(t, err)

	_, err = New(Config{CompanyID: "acme"})
	require.Error(t, err)

	c, err := New(Config{CompanyID: "acme", APIToken: "x"})
	require.NoError(t, err)
	assert.Equal(t, "https://api.recruitee.com/c/acme", c.baseURL)
	assert.Equal(t, 4, c.cfg.MaxAttempts)
}

// ----------------------------------------------------------------------------
// lookups
// ----------------------------------------------------------------------------

func TestListOffers_AuthAndArchivedScope(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/c/acme/offers", r.URL.Path)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"offers":[
			{"id":10,"title":"Backend Engineer","status":"published","priority":1},
			{"id":40,"title":"Data Analyst","status":"archived"}
		]}`))
	}), nil)

	active, err := c.ListOffers(context.Background(), ports.OfferFilter{})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, domain.Offer{ID: 10, Title: "Backend Engineer", Status: "published"}, active[0])

	all, err := c.ListOffers(context.Background(), ports.OfferFilter{IncludeArchived: true})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	assert.EqualValues(t, 1, calls.Load(), "second call must be served from the lookup cache")
}

func TestLookupCache_Expires(t *testing.T) {
	var calls atomic.Int32
	now := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"tags":[{"id":7,"name":"Remote","taggings_count":12}]}`))
	}), func(cfg *Config) { cfg.LookupTTL = 15 * time.Minute }, WithClock(clock))

	tags, err := c.ListTags(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Tag{{ID: 7, Name: "Remote", Count: 12}}, tags)

	_, err = c.ListTags(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, calls.Load())

	mu.Lock()
	now = now.Add(15 * time.Minute)
	mu.Unlock()

	_, err = c.ListTags(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, calls.Load())
}

func TestLookupCache_DisabledWithZeroTTL(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"disqualify_reasons":[{"id":1,"name":"Not a fit"},{"id":2,"name":"Salary"}]}`))
	}), func(cfg *Config) { cfg.LookupTTL = 0 })

	for i := 0; i < 3; i++ {
		reasons, err := c.ListDisqualifyReasons(context.Background())
		require.NoError(t, err)
		require.Len(t, reasons, 2)
	}
	assert.EqualValues(t, 3, calls.Load())
}

func TestListStages_PipelineOrder(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/c/acme/offers/10":
			_, _ = w.Write([]byte(`{"offer":{"id":10,"pipeline_template":{"stages":[
				{"id":101,"name":"Applied","category":"apply","group":"new"},
				{"id":102,"name":"Screening","category":"phone_screen","group":"in_process"},
				{"id":103,"name":"Hired","category":"hire","group":"hired"}
			]}}}`))
		default:
			http.NotFound(w, r)
		}
	}), nil)

	stages, err := c.ListStages(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, stages, 3)
	for i, s := range stages {
		assert.Equal(t, i, s.Position)
	}
	assert.Equal(t, "Screening", stages[1].Name)
	assert.Equal(t, "phone_screen", stages[1].Category)

	_, err = c.ListStages(context.Background(), 99)
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "offer", nf.Field)
	assert.Equal(t, "99", nf.Value)
}

func TestListTags_MalformedBody(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"tags": "nope"`))
	}), nil)

	_, err := c.ListTags(context.Background())
	assert.ErrorIs(t, err, domain.ErrMalformedData)
}

// ----------------------------------------------------------------------------
// retries and rate limiting
// ----------------------------------------------------------------------------

func TestGet_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	reg := prometheus.NewRegistry()
	tel := NewTelemetry(reg)

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch calls.Add(1) {
		case 1:
			w.WriteHeader(http.StatusTooManyRequests)
		case 2:
			w.WriteHeader(http.StatusBadGateway)
		default:
			_, _ = w.Write([]byte(`{"tags":[]}`))
		}
	}), nil, WithTelemetry(tel))

	tags, err := c.ListTags(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tags)
	assert.EqualValues(t, 3, calls.Load())

	assert.Equal(t, 2.0, counterValue(t, reg, "recruitment_metrics_upstream_retries_total", map[string]string{"endpoint": "tags"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "recruitment_metrics_upstream_requests_total", map[string]string{"endpoint": "tags", "status": "429"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "recruitment_metrics_upstream_requests_total", map[string]string{"endpoint": "tags", "status": "200"}))
}

func TestGet_ExhaustedRetries(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}), func(cfg *Config) { cfg.MaxAttempts = 3 })

	_, err := c.ListOffers(context.Background(), ports.OfferFilter{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)

	var ue *domain.UpstreamUnavailableError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, 3, ue.Attempts)
	assert.Equal(t, "offers", ue.Endpoint)
	assert.EqualValues(t, 3, calls.Load())

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusServiceUnavailable, se.Code)
}

func TestGet_FatalStatusIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid token"}`))
	}), nil)

	_, err := c.ListTags(context.Background())
	var ue *domain.UpstreamUnavailableError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, 1, ue.Attempts)
	assert.EqualValues(t, 1, calls.Load())
	assert.Contains(t, err.Error(), "invalid token")
	assert.NotContains(t, err.Error(), "secret-token")
}

func TestGet_SameFailureSequenceSameOutcome(t *testing.T) {
	run := func() (int, error) {
		var calls atomic.Int32
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) <= 3 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			_, _ = w.Write([]byte(`{"tags":[]}`))
		}), func(cfg *Config) { cfg.MaxAttempts = 3 })
		_, err := c.ListTags(context.Background())
		return int(calls.Load()), err
	}

	for i := 0; i < 3; i++ {
		calls, err := run()
		assert.Equal(t, 3, calls)
		assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	}
}

func TestGet_BoundedRateLimitWait(t *testing.T) {
	var calls atomic.Int32
	limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"tags":[]}`))
	}), func(cfg *Config) {
		cfg.MaxWait = 20 * time.Millisecond
		cfg.LookupTTL = 0
	}, WithLimiter(limiter))

	_, err := c.ListTags(context.Background())
	require.NoError(t, err)

	start := time.Now()
	_, err = c.ListTags(context.Background())
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	assert.ErrorIs(t, err, errRateLimited)
	assert.EqualValues(t, 1, calls.Load())
}

func TestGet_CallerCancellation(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}), func(cfg *Config) {
		cfg.BackoffInitial = time.Hour
		cfg.BackoffMax = time.Hour
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.ListTags(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.False(t, errors.Is(err, domain.ErrUpstreamUnavailable))
}
