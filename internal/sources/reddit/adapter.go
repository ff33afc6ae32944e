// Package reddit provides a source adapter for subreddit hot listings.
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/promptfeed-cli/internal/core/domain"
	"github.com/custodia-labs/promptfeed-cli/internal/core/ports/driven"
)

// Ensure Adapter implements the interface.
var _ driven.SourceAdapter = (*Adapter)(nil)

// Default configuration values.
const (
	DefaultBaseURL   = "https://www.reddit.com"
	DefaultUserAgent = "promptfeed/1.0"
	DefaultTimeout   = 30 * time.Second
	DefaultLimit     = 25

	// RequestsPerSecond keeps us inside reddit's unauthenticated budget.
	RequestsPerSecond = 1
)

// Config holds configuration for the reddit adapter.
type Config struct {
	// BaseURL is the reddit API base URL (default: https://www.reddit.com).
	BaseURL string

	// UserAgent identifies the client. Reddit throttles unidentified
	// clients aggressively.
	UserAgent string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration

	// HTTPClient overrides the default client (used in tests).
	HTTPClient *http.Client
}

// Adapter fetches hot posts from a subreddit.
type Adapter struct {
	client    *http.Client
	baseURL   string
	userAgent string
	limiter   *rate.Limiter
	closed    bool
}

// listing is the reddit listing response envelope.
type listing struct {
	Data struct {
		Children []struct {
			Data post `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// post is the subset of a reddit post we consume.
type post struct {
	Title      string  `json:"title"`
	Permalink  string  `json:"permalink"`
	Selftext   string  `json:"selftext"`
	Thumbnail  string  `json:"thumbnail"`
	Subreddit  string  `json:"subreddit"`
	IsVideo    bool    `json:"is_video"`
	CreatedUTC float64 `json:"created_utc"`
}

// New creates a reddit adapter.
func New(cfg Config) *Adapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &Adapter{
		client:    client,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		limiter:   rate.NewLimiter(rate.Limit(RequestsPerSecond), 1),
	}
}

// Source returns the adapter variant name.
func (a *Adapter) Source() string {
	return domain.SourceReddit
}

// Fetch returns the hot posts of the subreddit named by params.Query.
func (a *Adapter) Fetch(ctx context.Context, params domain.FetchParams) ([]domain.RawItem, error) {
	if a.closed {
		return nil, domain.ErrAdapterClosed
	}
	if params.Query == "" {
		return nil, fmt.Errorf("%w: subreddit name required", domain.ErrInvalidInput)
	}
	limit := params.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	if err := a.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	url := fmt.Sprintf("%s/r/%s/hot.json?limit=%d", a.baseURL, params.Query, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", a.userAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: reddit returned 429", domain.ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("reddit error (status %d): %s", resp.StatusCode, string(body))
	}

	var lst listing
	if err := json.NewDecoder(resp.Body).Decode(&lst); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	items := make([]domain.RawItem, 0, len(lst.Data.Children))
	for _, child := range lst.Data.Children {
		items = append(items, a.toItem(&child.Data, params.Query))
	}
	return items, nil
}

// toItem converts one reddit post into the pipeline's raw shape.
func (a *Adapter) toItem(p *post, subreddit string) domain.RawItem {
	contentType := domain.ContentTypeText
	if p.IsVideo {
		contentType = domain.ContentTypeVideo
	}

	// Reddit uses placeholder strings ("self", "default", ...) for posts
	// without a real thumbnail.
	thumbnail := ""
	if strings.HasPrefix(p.Thumbnail, "http") {
		thumbnail = p.Thumbnail
	}

	var createdAt time.Time
	if p.CreatedUTC > 0 {
		createdAt = time.Unix(int64(p.CreatedUTC), 0).UTC()
	}

	return domain.RawItem{
		Title:       p.Title,
		URL:         "https://reddit.com" + p.Permalink,
		Thumbnail:   thumbnail,
		Source:      domain.SourceReddit,
		ContentType: contentType,
		Preview:     domain.TruncatePreview(p.Selftext),
		Tags:        []string{subreddit, "community"},
		CreatedAt:   createdAt,
	}
}

// Close marks the adapter unusable.
func (a *Adapter) Close() error {
	a.closed = true
	return nil
}
