// Package scryfall resolves card and set data from the Scryfall API
// (with MTGJSON as a secondary set-data source) and classifies the
// returned records into canonical card layouts.
package scryfall

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/lmancini/MTG-Proxyshop/internal/ratelimit"
)

const (
	defaultBaseURL       = "https://api.scryfall.com"
	defaultMTGJSONURL    = "https://mtgjson.com/api/v5"
	defaultUserAgent     = "MTG-Proxyshop/1.0"
	defaultMaxAttempts   = 3
	defaultBackoffBudget = time.Second
	defaultRatePerSecond = 20 // Scryfall's documented good-citizen ceiling
)

var (
	sharedLimiter     *ratelimit.Limiter
	sharedLimiterOnce sync.Once
)

// getSharedLimiter returns the process-wide Scryfall rate limiter.
// Every client shares it unless one is injected, so concurrent render
// jobs stay under the global ceiling together.
func getSharedLimiter() *ratelimit.Limiter {
	sharedLimiterOnce.Do(func() {
		sharedLimiter = ratelimit.New("Scryfall", defaultRatePerSecond)
	})
	return sharedLimiter
}

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// SetStore persists merged set records between runs. Implemented by
// the setcache package; nil disables persistence.
type SetStore interface {
	Load(code string) (SetRecord, bool)
	Save(code string, rec SetRecord) error
}

// Client is a Scryfall API client.
type Client struct {
	baseURL       string
	mtgjsonURL    string
	userAgent     string
	httpClient    HTTPDoer
	rateLimiter   *ratelimit.Limiter
	retryAttempts int
	backoffBudget time.Duration
	sets          SetStore
	policies      pipeline
}

// NewClient creates a new Scryfall API client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:       defaultBaseURL,
		mtgjsonURL:    defaultMTGJSONURL,
		userAgent:     defaultUserAgent,
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		rateLimiter:   getSharedLimiter(),
		retryAttempts: defaultMaxAttempts,
		backoffBudget: defaultBackoffBudget,
	}

	for _, opt := range opts {
		opt(client)
	}

	// Rate limit outermost, retry inside it. Assembled once so the
	// composition order is fixed, inspectable state rather than
	// nesting scattered through the request helpers.
	client.policies = pipeline{
		rateLimitPolicy(client.rateLimiter),
		retryPolicy(client.retryAttempts, client.backoffBudget),
	}

	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithBaseURL sets a custom base URL for the Scryfall API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithMTGJSONURL sets a custom base URL for the MTGJSON API.
func WithMTGJSONURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.mtgjsonURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithUserAgent sets the User-Agent header sent on every request.
func WithUserAgent(ua string) Option {
	return func(client *Client) {
		if ua != "" {
			client.userAgent = ua
		}
	}
}

// WithRateLimiter sets a custom rate limiter for the client.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(client *Client) {
		if limiter != nil {
			client.rateLimiter = limiter
		}
	}
}

// WithRetryAttempts sets the number of retry attempts for failed requests.
func WithRetryAttempts(attempts int) Option {
	return func(client *Client) {
		if attempts > 0 {
			client.retryAttempts = attempts
		}
	}
}

// WithBackoffBudget caps the cumulative retry backoff sleep.
func WithBackoffBudget(budget time.Duration) Option {
	return func(client *Client) {
		if budget > 0 {
			client.backoffBudget = budget
		}
	}
}

// WithSetStore sets the persistent store for merged set records.
func WithSetStore(store SetStore) Option {
	return func(client *Client) {
		client.sets = store
	}
}
