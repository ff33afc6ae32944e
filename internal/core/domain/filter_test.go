package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterMatches(t *testing.T) {
	rec := ContentRecord{Source: SourceReddit, ContentType: ContentTypeText}

	tests := []struct {
		name   string
		filter FilterConfig
		want   bool
	}{
		{"zero filter matches", FilterConfig{}, true},
		{"content type match", FilterConfig{ContentType: ContentTypeText}, true},
		{"content type mismatch", FilterConfig{ContentType: ContentTypeVideo}, false},
		{"source member", FilterConfig{Sources: []string{SourceMedium, SourceReddit}}, true},
		{"source non-member", FilterConfig{Sources: []string{SourceMedium}}, false},
		{"both must pass", FilterConfig{ContentType: ContentTypeText, Sources: []string{SourceMedium}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(&rec))
		})
	}
}

func TestParseFilterMap(t *testing.T) {
	f := ParseFilterMap(map[string]any{
		"content_type": "video",
		"source":       []any{"reddit", "youtube"},
		"min_score":    42,
		"author":       "someone",
	})

	assert.Equal(t, "video", f.ContentType)
	assert.Equal(t, []string{"reddit", "youtube"}, f.Sources)
}

func TestParseFilterMapScalarSource(t *testing.T) {
	f := ParseFilterMap(map[string]any{"source": "github"})
	assert.Equal(t, []string{"github"}, f.Sources)
}

func TestParseFilterMapWrongTypes(t *testing.T) {
	f := ParseFilterMap(map[string]any{
		"content_type": 7,
		"source":       3.14,
	})
	assert.True(t, f.IsZero())
}
