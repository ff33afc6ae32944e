package podcast

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/promptfeed-cli/internal/core/domain"
)

const searchResult = `{
	"resultCount": 2,
	"results": [
		{
			"collectionName": "The Focus Show",
			"collectionViewUrl": "https://podcasts.example.com/focus-show",
			"artistName": "Jane Host",
			"artworkUrl600": "https://art.example.com/focus.jpg",
			"primaryGenreName": "Self-Improvement",
			"releaseDate": "2024-03-01T08:00:00Z"
		},
		{
			"collectionName": "Minimal Metadata",
			"collectionViewUrl": "https://podcasts.example.com/minimal"
		}
	]
}`

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "productivity", r.URL.Query().Get("term"))
		assert.Equal(t, "podcast", r.URL.Query().Get("media"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		w.Write([]byte(searchResult))
	}))
	defer srv.Close()

	adapter := New(Config{BaseURL: srv.URL})
	items, err := adapter.Fetch(context.Background(), domain.FetchParams{Query: "productivity", Limit: 5})
	require.NoError(t, err)
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, "The Focus Show", first.Title)
	assert.Equal(t, "https://podcasts.example.com/focus-show", first.URL)
	assert.Equal(t, "https://art.example.com/focus.jpg", first.Thumbnail)
	assert.Equal(t, domain.SourcePodcast, first.Source)
	assert.Equal(t, domain.ContentTypeAudio, first.ContentType)
	assert.Equal(t, "Jane Host - Self-Improvement", first.Preview)
	assert.Equal(t, []string{"productivity", "podcast", "audio"}, first.Tags)
	assert.Equal(t, 2024, first.CreatedAt.Year())

	second := items[1]
	assert.Empty(t, second.Preview)
	assert.True(t, second.CreatedAt.IsZero())
}

func TestFetchRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	adapter := New(Config{BaseURL: srv.URL})
	_, err := adapter.Fetch(context.Background(), domain.FetchParams{Query: "productivity"})
	assert.ErrorIs(t, err, domain.ErrRateLimited)
}

func TestFetchEmptyQuery(t *testing.T) {
	adapter := New(Config{})
	_, err := adapter.Fetch(context.Background(), domain.FetchParams{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFetchAfterClose(t *testing.T) {
	adapter := New(Config{})
	require.NoError(t, adapter.Close())
	_, err := adapter.Fetch(context.Background(), domain.FetchParams{Query: "productivity"})
	assert.ErrorIs(t, err, domain.ErrAdapterClosed)
}
