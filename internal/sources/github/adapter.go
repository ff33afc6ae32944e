// Package github provides a source adapter that surfaces trending
// repositories for a topic via the GitHub search API.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/promptfeed-cli/internal/core/domain"
	"github.com/custodia-labs/promptfeed-cli/internal/core/ports/driven"
)

// Ensure Adapter implements the interface.
var _ driven.SourceAdapter = (*Adapter)(nil)

// Default configuration values.
const (
	DefaultTimeout = 30 * time.Second
	DefaultLimit   = 25

	// MaxPerPage is the search API page-size ceiling.
	MaxPerPage = 100
)

// Config holds configuration for the GitHub adapter.
type Config struct {
	// Token is an optional personal access token. Unauthenticated
	// requests work but are limited to 10 searches per minute.
	Token string

	// BaseURL overrides the API base URL (used in tests).
	BaseURL string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration

	// HTTPClient overrides the default client (used in tests).
	HTTPClient *http.Client
}

// Adapter searches repositories by topic, most-starred first.
type Adapter struct {
	gh      *gh.Client
	limiter *RateLimiter
	closed  bool
}

// New creates a GitHub adapter.
func New(cfg Config) (*Adapter, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		if cfg.Token != "" {
			ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
			httpClient = oauth2.NewClient(context.Background(), ts)
		} else {
			httpClient = &http.Client{}
		}
		httpClient.Timeout = cfg.Timeout
	}

	client := gh.NewClient(httpClient)
	if cfg.BaseURL != "" {
		base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parse base url: %w", err)
		}
		client.BaseURL = base
	}

	return &Adapter{
		gh:      client,
		limiter: NewRateLimiter(cfg.Token != ""),
	}, nil
}

// Source returns the adapter variant name.
func (a *Adapter) Source() string {
	return domain.SourceGitHub
}

// Fetch searches repositories tagged with the topic in params.Query,
// ordered by stars descending.
func (a *Adapter) Fetch(ctx context.Context, params domain.FetchParams) ([]domain.RawItem, error) {
	if a.closed {
		return nil, domain.ErrAdapterClosed
	}
	if params.Query == "" {
		return nil, fmt.Errorf("%w: topic required", domain.ErrInvalidInput)
	}
	limit := params.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxPerPage {
		limit = MaxPerPage
	}

	if err := a.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	opts := &gh.SearchOptions{
		Sort:        "stars",
		Order:       "desc",
		ListOptions: gh.ListOptions{PerPage: limit},
	}
	result, resp, err := a.gh.Search.Repositories(ctx, "topic:"+params.Query, opts)
	if err != nil {
		var rateErr *gh.RateLimitError
		if errors.As(err, &rateErr) {
			return nil, fmt.Errorf("%w: search quota exhausted until %s",
				domain.ErrRateLimited, rateErr.Rate.Reset.Format(time.RFC3339))
		}
		return nil, fmt.Errorf("search repositories: %w", err)
	}
	if resp != nil {
		a.limiter.UpdateFromResponse(resp.Response)
	}

	items := make([]domain.RawItem, 0, len(result.Repositories))
	for _, repo := range result.Repositories {
		items = append(items, toItem(repo, params.Query))
		if len(items) == limit {
			break
		}
	}
	return items, nil
}

// toItem converts one repository into the pipeline's raw shape.
func toItem(repo *gh.Repository, topic string) domain.RawItem {
	var preview strings.Builder
	preview.WriteString(repo.GetDescription())
	if lang := repo.GetLanguage(); lang != "" {
		if preview.Len() > 0 {
			preview.WriteString(" | ")
		}
		preview.WriteString(lang)
	}
	fmt.Fprintf(&preview, " | %d stars", repo.GetStargazersCount())

	var createdAt time.Time
	if ts := repo.GetCreatedAt(); !ts.IsZero() {
		createdAt = ts.Time.UTC()
	}

	return domain.RawItem{
		Title:       repo.GetFullName(),
		URL:         repo.GetHTMLURL(),
		Thumbnail:   repo.GetOwner().GetAvatarURL(),
		Source:      domain.SourceGitHub,
		ContentType: domain.ContentTypeRepository,
		Preview:     domain.TruncatePreview(strings.TrimSpace(preview.String())),
		Tags:        []string{topic, "code", "github", "opensource"},
		CreatedAt:   createdAt,
	}
}

// Close marks the adapter unusable.
func (a *Adapter) Close() error {
	a.closed = true
	return nil
}
