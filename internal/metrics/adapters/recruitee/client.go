// Package recruitee is the Resource Client for the Recruitee API.
//
// All requests share one token bucket per Client. Transient failures (network errors, 429, 5xx)
// are retried with deterministic exponential backoff until MaxAttempts is reached.
package recruitee

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"recruitment-metrics-service/internal/metrics/core/domain"
	"recruitment-metrics-service/internal/metrics/core/ports"
)

const (
	DefaultBaseURL = "https://api.recruitee.com"

	// maxResponseSize caps a single response body.
	maxResponseSize = 32 * 1024 * 1024
)

type Config struct {
	BaseURL   string
	CompanyID string
	APIToken  string
	Timeout   time.Duration

	RequestsPerSecond float64
	Burst             int
	// MaxWait bounds how long a request may block on the shared budget. 0 waits for the caller's context.
	MaxWait time.Duration

	MaxAttempts    int
	BackoffInitial time.Duration
	BackoffMax     time.Duration

	PageSize  int
	LookupTTL time.Duration
}

func DefaultConfig() Config {
	return Config{
		BaseURL:           DefaultBaseURL,
		Timeout:           10 * time.Second,
		RequestsPerSecond: 8,
		Burst:             8,
		MaxWait:           30 * time.Second,
		MaxAttempts:       4,
		BackoffInitial:    500 * time.Millisecond,
		BackoffMax:        8 * time.Second,
		PageSize:          100,
		LookupTTL:         15 * time.Minute,
	}
}

type Client struct {
	cfg        Config
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
	telemetry  *Telemetry
	cache      *lookupCache
	now        func() time.Time
}

var _ ports.ResourcePort = (*Client)(nil)

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithLimiter replaces the client's own token bucket, e.g. to share one budget between clients.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

func WithTelemetry(t *Telemetry) Option {
	return func(c *Client) {
		c.telemetry = t
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

func New(cfg Config, opts ...Option) (*Client, error) {
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.BackoffInitial <= 0 {
		cfg.BackoffInitial = def.BackoffInitial
	}
	if cfg.BackoffMax < cfg.BackoffInitial {
		cfg.BackoffMax = cfg.BackoffInitial
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = def.PageSize
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if strings.TrimSpace(cfg.CompanyID) == "" {
		return nil, errors.New("recruitee: company id is required")
	}
	if strings.TrimSpace(cfg.APIToken) == "" {
		return nil, errors.New("recruitee: api token is required")
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	c := &Client{
		cfg:        cfg,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/") + "/c/" + url.PathEscape(cfg.CompanyID),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(limit, cfg.Burst),
		logger:     slog.New(slog.DiscardHandler),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "recruitee")
	c.cache = newLookupCache(cfg.LookupTTL, c.now)
	return c, nil
}

// get performs one logical GET, retrying transient failures. A 404 is returned as a *StatusError;
// every other failure after the last attempt becomes a *domain.UpstreamUnavailableError.
func (c *Client) get(ctx context.Context, endpoint, path string, query url.Values) ([]byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	attempts := 0
	var body []byte
	op := func() error {
		if err := ctx.Err(); err != nil {
			return backoff.Permanent(err)
		}
		if err := c.wait(ctx); err != nil {
			return backoff.Permanent(err)
		}
		attempts++
		b, err := c.do(ctx, endpoint, target)
		if err != nil {
			if IsFatal(err) || ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		body = b
		return nil
	}
	notify := func(err error, next time.Duration) {
		c.telemetry.retry(endpoint)
		c.logger.Warn("upstream request failed, retrying",
			"endpoint", endpoint,
			"attempt", attempts,
			"max_attempts", c.cfg.MaxAttempts,
			"backoff", next,
			"error", err)
	}

	err := backoff.RetryNotify(op, c.policy(ctx), notify)
	if err == nil {
		return body, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, errors.Wrapf(ctxErr, "recruitee %s", endpoint)
	}
	if isNotFound(err) {
		return nil, err
	}
	return nil, &domain.UpstreamUnavailableError{Endpoint: endpoint, Attempts: attempts, Cause: err}
}

// policy yields the same delays for the same failure sequence: no jitter, no elapsed-time cap.
func (c *Client) policy(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.cfg.BackoffInitial
	b.MaxInterval = c.cfg.BackoffMax
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	b.Reset()
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.cfg.MaxAttempts-1)), ctx)
}

// wait blocks on the shared budget for at most MaxWait. The limiter does not consume a token
// when it cannot admit the request before the deadline.
func (c *Client) wait(ctx context.Context) error {
	start := time.Now()
	wctx := ctx
	if c.cfg.MaxWait > 0 {
		var cancel context.CancelFunc
		wctx, cancel = context.WithTimeout(ctx, c.cfg.MaxWait)
		defer cancel()
	}
	err := c.limiter.Wait(wctx)
	c.telemetry.observeWait(time.Since(start))
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return errRateLimited
}

func (c *Client) do(ctx context.Context, endpoint, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &FatalError{err: errors.Wrap(err, "build request")}
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.telemetry.request(endpoint, "error")
		return nil, &TransientError{err: errors.Wrapf(err, "GET %s", endpoint)}
	}
	defer resp.Body.Close()

	c.telemetry.request(endpoint, strconv.Itoa(resp.StatusCode))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &TransientError{err: errors.Wrapf(err, "read %s response", endpoint)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus(endpoint, resp.StatusCode, body)
	}
	return body, nil
}
