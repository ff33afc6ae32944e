// Package medium provides a source adapter that scrapes Medium tag
// listing pages. Medium has no public listing API, so this adapter
// parses the HTML directly and degrades gracefully when the markup
// drifts: articles it cannot make sense of are skipped, not errors.
package medium

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/custodia-labs/promptfeed-cli/internal/core/domain"
	"github.com/custodia-labs/promptfeed-cli/internal/core/ports/driven"
)

// Ensure Adapter implements the interface.
var _ driven.SourceAdapter = (*Adapter)(nil)

// Default configuration values.
const (
	DefaultBaseURL   = "https://medium.com"
	DefaultUserAgent = "promptfeed/1.0"
	DefaultTimeout   = 30 * time.Second
	DefaultLimit     = 25
)

// Config holds configuration for the Medium adapter.
type Config struct {
	// BaseURL is the Medium base URL (default: https://medium.com).
	BaseURL string

	// UserAgent identifies the client.
	UserAgent string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration

	// HTTPClient overrides the default client (used in tests).
	HTTPClient *http.Client
}

// Adapter scrapes article cards from a Medium tag page.
type Adapter struct {
	client    *http.Client
	baseURL   string
	userAgent string
	closed    bool
}

// New creates a Medium adapter.
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
	}
}

// Source returns the adapter variant name.
func (a *Adapter) Source() string {
	return domain.SourceMedium
}

// Fetch scrapes the tag listing page for params.Query.
func (a *Adapter) Fetch(ctx context.Context, params domain.FetchParams) ([]domain.RawItem, error) {
	if a.closed {
		return nil, domain.ErrAdapterClosed
	}
	if params.Query == "" {
		return nil, fmt.Errorf("%w: tag required", domain.ErrInvalidInput)
	}
	limit := params.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	pageURL := a.baseURL + "/tag/" + url.PathEscape(params.Query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", a.userAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("medium error (status %d)", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	base, err := url.Parse(a.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	var items []domain.RawItem
	doc.Find("article").EachWithBreak(func(_ int, card *goquery.Selection) bool {
		item, ok := a.parseCard(card, base, params.Query)
		if ok {
			items = append(items, item)
		}
		return len(items) < limit
	})
	return items, nil
}

// parseCard extracts one article from its listing card. Cards without a
// recognisable title or link are skipped.
func (a *Adapter) parseCard(card *goquery.Selection, base *url.URL, tag string) (domain.RawItem, bool) {
	title := strings.TrimSpace(card.Find("h2").First().Text())
	if title == "" {
		title = strings.TrimSpace(card.Find("h3").First().Text())
	}
	if title == "" {
		return domain.RawItem{}, false
	}

	href, _ := card.Find("a[href]").First().Attr("href")
	link := resolveLink(base, href)
	if link == "" {
		return domain.RawItem{}, false
	}

	preview := strings.TrimSpace(card.Find("p").First().Text())
	thumbnail, _ := card.Find("img[src]").First().Attr("src")

	return domain.RawItem{
		Title:       title,
		URL:         link,
		Thumbnail:   thumbnail,
		Source:      domain.SourceMedium,
		ContentType: domain.ContentTypeArticle,
		Preview:     domain.TruncatePreview(preview),
		Tags:        []string{tag, "article", "blog"},
	}, true
}

// resolveLink turns a card href into an absolute URL, stripping the
// tracking query Medium appends to listing links.
func resolveLink(base *url.URL, href string) string {
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	abs := base.ResolveReference(ref)
	abs.RawQuery = ""
	return abs.String()
}

// Close marks the adapter unusable.
func (a *Adapter) Close() error {
	a.closed = true
	return nil
}
