package domain

import (
	"crypto/md5" //nolint:gosec // Content fingerprint, not a security boundary.
	"encoding/hex"
	"strings"
	"time"
)

// Source identifiers for the supported adapter variants.
const (
	SourceReddit  = "reddit"
	SourceYouTube = "youtube"
	SourceMedium  = "medium"
	SourcePodcast = "podcast"
	SourceGitHub  = "github"
)

// Content type identifiers.
const (
	ContentTypeText       = "text"
	ContentTypeVideo      = "video"
	ContentTypeArticle    = "article"
	ContentTypeAudio      = "audio"
	ContentTypeRepository = "repository"
)

// PreviewLimit is the maximum preview length in runes. Adapters truncate
// source descriptions to this bound before handing items to the pipeline.
const PreviewLimit = 500

// RawItem is the transient, pre-canonical shape produced by a source
// adapter. It becomes a ContentRecord (id assigned, embedding computed)
// only inside the catalog's ingestion path, never in the adapter itself.
type RawItem struct {
	// Title is the human-readable title of the item.
	Title string `json:"title"`

	// URL is the canonical location of the item. May be empty for
	// sources that do not expose stable links.
	URL string `json:"url"`

	// Thumbnail is an optional image URL.
	Thumbnail string `json:"thumbnail,omitempty"`

	// Source identifies the adapter variant that produced the item.
	Source string `json:"source"`

	// ContentType categorises the item (text, video, article, ...).
	ContentType string `json:"content_type"`

	// Preview is a bounded-length text snippet.
	Preview string `json:"preview"`

	// Tags is a small set of short strings seeded from the fetch query.
	Tags []string `json:"tags"`

	// CreatedAt is the source-reported creation time, or the fetch time
	// when the source does not report one.
	CreatedAt time.Time `json:"created_at"`
}

// Key returns the identity key for the item: the canonical URL, or a
// source-specific fallback when the URL is absent. Two items with equal
// keys collapse to the same ContentRecord at ingestion.
func (r *RawItem) Key() string {
	if r.URL != "" {
		return r.URL
	}
	return r.Source + ":" + r.Title
}

// ContentRecord is the canonical, immutable unit of retrieval.
// Records are only ever appended; there is no update or delete.
type ContentRecord struct {
	// ID is the content fingerprint derived from the item key.
	ID string `json:"id"`

	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	Source      string    `json:"source"`
	ContentType string    `json:"content_type"`
	Preview     string    `json:"preview"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`

	// Embedding is the fixed-dimension vector computed once at ingestion.
	Embedding []float32 `json:"embedding,omitempty"`
}

// Fingerprint returns the deterministic content id for an identity key.
// The same key always yields the same id, which is what makes
// re-ingestion of an already-seen URL a no-op.
func Fingerprint(key string) string {
	sum := md5.Sum([]byte(key)) //nolint:gosec // Identity hash only.
	return hex.EncodeToString(sum[:])
}

// EmbeddingText composes the text that is embedded for a record:
// title, preview and tags joined with spaces.
func (c *ContentRecord) EmbeddingText() string {
	parts := make([]string, 0, 3)
	if c.Title != "" {
		parts = append(parts, c.Title)
	}
	if c.Preview != "" {
		parts = append(parts, c.Preview)
	}
	if len(c.Tags) > 0 {
		parts = append(parts, strings.Join(c.Tags, " "))
	}
	return strings.Join(parts, " ")
}

// WithoutEmbedding returns a copy of the record with the embedding
// stripped, suitable for returning to callers.
func (c *ContentRecord) WithoutEmbedding() ContentRecord {
	out := *c
	out.Embedding = nil
	return out
}

// TruncatePreview bounds a snippet to PreviewLimit runes.
func TruncatePreview(s string) string {
	runes := []rune(s)
	if len(runes) <= PreviewLimit {
		return s
	}
	return string(runes[:PreviewLimit])
}

// FetchParams is the scalar configuration a source adapter receives:
// a site-specific identifier or topic, and a result-count limit.
type FetchParams struct {
	// Query is the source-specific identifier: subreddit name, channel
	// id, tag, search term or topic depending on the adapter.
	Query string `json:"query" toml:"query"`

	// Limit caps the number of items fetched. Zero means the adapter
	// default.
	Limit int `json:"limit" toml:"limit"`
}
