// Package podcast provides a source adapter backed by the iTunes
// Search API podcast catalog.
package podcast

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/promptfeed-cli/internal/core/domain"
	"github.com/custodia-labs/promptfeed-cli/internal/core/ports/driven"
)

// Ensure Adapter implements the interface.
var _ driven.SourceAdapter = (*Adapter)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://itunes.apple.com"
	DefaultTimeout = 30 * time.Second
	DefaultLimit   = 25
)

// Config holds configuration for the podcast adapter.
type Config struct {
	// BaseURL is the iTunes API base URL (default: https://itunes.apple.com).
	BaseURL string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration

	// HTTPClient overrides the default client (used in tests).
	HTTPClient *http.Client
}

// Adapter searches the podcast catalog for a term.
type Adapter struct {
	client  *http.Client
	baseURL string
	closed  bool
}

// searchResponse is the iTunes search envelope.
type searchResponse struct {
	Results []show `json:"results"`
}

// show is the subset of an iTunes podcast result we consume.
type show struct {
	CollectionName    string `json:"collectionName"`
	CollectionViewURL string `json:"collectionViewUrl"`
	ArtistName        string `json:"artistName"`
	ArtworkURL        string `json:"artworkUrl600"`
	PrimaryGenreName  string `json:"primaryGenreName"`
	ReleaseDate       string `json:"releaseDate"`
}

// New creates a podcast adapter.
func New(cfg Config) *Adapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &Adapter{
		client:  client,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// Source returns the adapter variant name.
func (a *Adapter) Source() string {
	return domain.SourcePodcast
}

// Fetch searches the podcast catalog for params.Query.
func (a *Adapter) Fetch(ctx context.Context, params domain.FetchParams) ([]domain.RawItem, error) {
	if a.closed {
		return nil, domain.ErrAdapterClosed
	}
	if params.Query == "" {
		return nil, fmt.Errorf("%w: search term required", domain.ErrInvalidInput)
	}
	limit := params.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	q := url.Values{}
	q.Set("term", params.Query)
	q.Set("media", "podcast")
	q.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, a.baseURL+"/search?"+q.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: itunes returned %d", domain.ErrRateLimited, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("itunes error (status %d)", resp.StatusCode)
	}

	var search searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	items := make([]domain.RawItem, 0, len(search.Results))
	for i := range search.Results {
		items = append(items, toItem(&search.Results[i], params.Query))
	}
	return items, nil
}

// toItem converts one catalog result into the pipeline's raw shape.
func toItem(s *show, term string) domain.RawItem {
	preview := s.ArtistName
	if s.PrimaryGenreName != "" {
		if preview != "" {
			preview += " - "
		}
		preview += s.PrimaryGenreName
	}

	var createdAt time.Time
	if s.ReleaseDate != "" {
		if t, err := time.Parse(time.RFC3339, s.ReleaseDate); err == nil {
			createdAt = t.UTC()
		}
	}

	return domain.RawItem{
		Title:       s.CollectionName,
		URL:         s.CollectionViewURL,
		Thumbnail:   s.ArtworkURL,
		Source:      domain.SourcePodcast,
		ContentType: domain.ContentTypeAudio,
		Preview:     domain.TruncatePreview(preview),
		Tags:        []string{term, "podcast", "audio"},
		CreatedAt:   createdAt,
	}
}

// Close marks the adapter unusable.
func (a *Adapter) Close() error {
	a.closed = true
	return nil
}
