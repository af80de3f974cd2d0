package bookapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"marquee/internal/logging"
	"marquee/internal/services"
)

const (
	// MinDisplay and MaxDisplay bound the number of results per request.
	MinDisplay = 10
	MaxDisplay = 100
	// DefaultDisplay is used when callers pass 0.
	DefaultDisplay = 50

	defaultTimeout      = 10 * time.Second
	defaultRate         = 10
	defaultBurst        = 5
	defaultTripFailures = 5
	defaultOpenTimeout  = 30 * time.Second
)

// Book is one item from the book search endpoint. Discount is a decimal
// string on the wire and may be empty.
type Book struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Image       string `json:"image"`
	Author      string `json:"author"`
	Discount    string `json:"discount"`
	Publisher   string `json:"publisher"`
	PubDate     string `json:"pubdate"`
	ISBN        string `json:"isbn"`
	Description string `json:"description"`
}

// Response models the search response envelope.
type Response struct {
	LastBuildDate string `json:"lastBuildDate"`
	Total         int    `json:"total"`
	Start         int    `json:"start"`
	Display       int    `json:"display"`
	Items         []Book `json:"items"`
}

// Searcher is the search surface consumed by the CLI.
type Searcher interface {
	SearchBooks(ctx context.Context, query string, display int) ([]Book, error)
}

// Client calls the Naver search API.
type Client struct {
	clientID     string
	clientSecret string
	baseURL      string
	httpClient   *http.Client
	limiter      *rate.Limiter
	breaker      *gobreaker.CircuitBreaker[*Response]
	logger       *slog.Logger

	tripFailures uint32
	openTimeout  time.Duration
}

var _ Searcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// WithRateLimit paces requests to rps with the given burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps > 0 && burst > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// WithBreaker sets how many consecutive failures open the circuit and how
// long it stays open.
func WithBreaker(consecutiveFailures uint32, openTimeout time.Duration) Option {
	return func(c *Client) {
		if consecutiveFailures > 0 {
			c.tripFailures = consecutiveFailures
		}
		if openTimeout > 0 {
			c.openTimeout = openTimeout
		}
	}
}

// WithLogger sets the logger used for breaker state changes.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a search client.
func New(clientID, clientSecret, baseURL string, opts ...Option) (*Client, error) {
	clientID = strings.TrimSpace(clientID)
	clientSecret = strings.TrimSpace(clientSecret)
	if clientID == "" || clientSecret == "" {
		return nil, services.Wrap(services.ErrConfiguration, "bookapi", "init", "naver client id and secret required", nil)
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, services.Wrap(services.ErrConfiguration, "bookapi", "init", "base url required", nil)
	}
	client := &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{Timeout: defaultTimeout},
		limiter:      rate.NewLimiter(defaultRate, defaultBurst),
		tripFailures: defaultTripFailures,
		openTimeout:  defaultOpenTimeout,
	}
	for _, opt := range opts {
		opt(client)
	}
	client.logger = logging.NewComponentLogger(client.logger, "bookapi")
	client.breaker = gobreaker.NewCircuitBreaker[*Response](gobreaker.Settings{
		Name:        "naver-search",
		MaxRequests: 1,
		Timeout:     client.openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= client.tripFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, services.ErrValidation)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			client.logger.Info("circuit breaker state changed",
				logging.String("breaker", name),
				logging.String("from", from.String()),
				logging.String("to", to.String()),
			)
		},
	})
	return client, nil
}

// ClampDisplay bounds display to [MinDisplay, MaxDisplay]. Zero selects
// DefaultDisplay.
func ClampDisplay(display int) int {
	switch {
	case display == 0:
		return DefaultDisplay
	case display < MinDisplay:
		return MinDisplay
	case display > MaxDisplay:
		return MaxDisplay
	}
	return display
}

// SearchBooks searches the book endpoint.
func (c *Client) SearchBooks(ctx context.Context, query string, display int) ([]Book, error) {
	return c.Search(ctx, "book", query, display)
}

// Search queries {base}/{endpoint}.json sorted by similarity and returns the
// items with highlight markup removed.
func (c *Client) Search(ctx context.Context, endpoint, query string, display int) ([]Book, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, services.Wrap(services.ErrValidation, "bookapi", "search", "query must not be empty", nil)
	}
	endpoint = strings.Trim(strings.TrimSpace(endpoint), "/")
	if endpoint == "" {
		return nil, services.Wrap(services.ErrValidation, "bookapi", "search", "endpoint must not be empty", nil)
	}

	payload, err := c.breaker.Execute(func() (*Response, error) {
		return c.do(ctx, endpoint, query, ClampDisplay(display))
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, services.Wrap(services.ErrTransient, "bookapi", "search", "search api temporarily disabled after repeated failures", err)
	}
	if err != nil {
		return nil, err
	}

	books := make([]Book, len(payload.Items))
	for i, item := range payload.Items {
		books[i] = item.stripped()
	}
	return books, nil
}

func (c *Client) do(ctx context.Context, endpoint, query string, display int) (*Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for rate limiter: %w", err)
	}

	target, err := url.Parse(c.baseURL + "/" + endpoint + ".json")
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "bookapi", "search", "parse url", err)
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("display", strconv.Itoa(display))
	params.Set("sort", "sim")
	target.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Naver-Client-Id", c.clientID)
	req.Header.Set("X-Naver-Client-Secret", c.clientSecret)
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "bookapi", "search", fmt.Sprintf("execute request (latency=%v)", latency), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, services.Wrap(services.ErrExternal, "bookapi", "search",
			fmt.Sprintf("search returned %d (latency=%v)", resp.StatusCode, latency), nil)
	}

	var payload Response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, services.Wrap(services.ErrExternal, "bookapi", "search", "decode response", err)
	}
	return &payload, nil
}
