// Package youtube provides a source adapter for recent channel uploads
// via the YouTube Data API v3.
package youtube

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/custodia-labs/promptfeed-cli/internal/core/domain"
	"github.com/custodia-labs/promptfeed-cli/internal/core/ports/driven"
)

// Ensure Adapter implements the interface.
var _ driven.SourceAdapter = (*Adapter)(nil)

// Default configuration values.
const (
	DefaultLimit = 25

	// MaxResults is the search endpoint page-size ceiling.
	MaxResults = 50

	// WatchURLPrefix builds a canonical video URL from an id.
	WatchURLPrefix = "https://www.youtube.com/watch?v="
)

// Config holds configuration for the YouTube adapter.
type Config struct {
	// APIKey is the YouTube Data API key. Required outside tests.
	APIKey string

	// Endpoint overrides the API base URL (used in tests).
	Endpoint string

	// HTTPClient overrides the default client (used in tests).
	HTTPClient *http.Client
}

// Adapter lists a channel's uploads, newest first. The API service is
// built lazily on first fetch so construction never needs a context.
type Adapter struct {
	cfg     Config
	service *youtube.Service
	closed  bool
}

// New creates a YouTube adapter.
func New(cfg Config) (*Adapter, error) {
	if cfg.APIKey == "" && cfg.HTTPClient == nil {
		return nil, fmt.Errorf("%w: youtube api key required", domain.ErrInvalidInput)
	}
	return &Adapter{cfg: cfg}, nil
}

// Source returns the adapter variant name.
func (a *Adapter) Source() string {
	return domain.SourceYouTube
}

// ensureService initializes the API service if not already done.
func (a *Adapter) ensureService(ctx context.Context) error {
	if a.service != nil {
		return nil
	}

	var opts []option.ClientOption
	if a.cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(a.cfg.APIKey))
	}
	if a.cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(a.cfg.HTTPClient))
	}
	if a.cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(a.cfg.Endpoint))
	}

	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return fmt.Errorf("create youtube service: %w", err)
	}
	a.service = service
	return nil
}

// Fetch lists recent uploads of the channel named by params.Query.
func (a *Adapter) Fetch(ctx context.Context, params domain.FetchParams) ([]domain.RawItem, error) {
	if a.closed {
		return nil, domain.ErrAdapterClosed
	}
	if params.Query == "" {
		return nil, fmt.Errorf("%w: channel id required", domain.ErrInvalidInput)
	}
	limit := params.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxResults {
		limit = MaxResults
	}

	if err := a.ensureService(ctx); err != nil {
		return nil, err
	}

	call := a.service.Search.List([]string{"snippet"}).
		ChannelId(params.Query).
		Type("video").
		Order("date").
		MaxResults(int64(limit)).
		Context(ctx)

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("search channel uploads: %w", err)
	}

	items := make([]domain.RawItem, 0, len(resp.Items))
	for _, result := range resp.Items {
		if result.Id == nil || result.Id.VideoId == "" || result.Snippet == nil {
			continue
		}
		items = append(items, toItem(result, params.Query))
	}
	return items, nil
}

// toItem converts one search result into the pipeline's raw shape.
func toItem(result *youtube.SearchResult, channel string) domain.RawItem {
	snippet := result.Snippet

	thumbnail := ""
	if snippet.Thumbnails != nil {
		switch {
		case snippet.Thumbnails.High != nil:
			thumbnail = snippet.Thumbnails.High.Url
		case snippet.Thumbnails.Default != nil:
			thumbnail = snippet.Thumbnails.Default.Url
		}
	}

	var createdAt time.Time
	if snippet.PublishedAt != "" {
		if t, err := time.Parse(time.RFC3339, snippet.PublishedAt); err == nil {
			createdAt = t.UTC()
		}
	}

	return domain.RawItem{
		Title:       snippet.Title,
		URL:         WatchURLPrefix + result.Id.VideoId,
		Thumbnail:   thumbnail,
		Source:      domain.SourceYouTube,
		ContentType: domain.ContentTypeVideo,
		Preview:     domain.TruncatePreview(snippet.Description),
		Tags:        []string{channel, "video", "youtube"},
		CreatedAt:   createdAt,
	}
}

// Close marks the adapter unusable.
func (a *Adapter) Close() error {
	a.closed = true
	return nil
}
