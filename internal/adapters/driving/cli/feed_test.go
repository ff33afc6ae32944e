package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/promptfeed-cli/internal/core/domain"
)

func TestFeedCmd_Use(t *testing.T) {
	assert.Equal(t, "feed [prompt]", feedCmd.Use)
}

func TestFeedCmd_RequiresExactlyOneArg(t *testing.T) {
	_, err := execute("feed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestFeedCmd_HasLimitFlag(t *testing.T) {
	flag := feedCmd.Flags().Lookup("limit")
	require.NotNil(t, flag, "limit flag should exist")
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "10", flag.DefValue)
}

func TestFeedCmd_EmptyCatalog(t *testing.T) {
	cleanup := setupTestDeps()
	defer cleanup()

	out, err := execute("feed", "anything")
	require.NoError(t, err)
	assert.Contains(t, out, "No matching content.")
}

func TestFeedCmd_ReturnsIngestedContent(t *testing.T) {
	cleanup := setupTestDeps()
	defer cleanup()

	_, err := library.Ingest(context.Background(), []domain.RawItem{
		{
			Title:       "Morning focus routine",
			URL:         "https://example.com/focus",
			Source:      domain.SourceMedium,
			ContentType: domain.ContentTypeArticle,
		},
	})
	require.NoError(t, err)

	out, err := execute("feed", "focus routine")
	require.NoError(t, err)
	assert.Contains(t, out, "Morning focus routine")
	assert.Contains(t, out, "https://example.com/focus")
}

func TestFeedCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestDeps()
	defer cleanup()

	_, err := library.Ingest(context.Background(), []domain.RawItem{
		{
			Title:       "A record",
			URL:         "https://example.com/r",
			Source:      domain.SourceReddit,
			ContentType: domain.ContentTypeText,
		},
	})
	require.NoError(t, err)

	out, err := execute("feed", "record", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"title": "A record"`)
}

func TestFeedCmd_SourceFilterExcludes(t *testing.T) {
	cleanup := setupTestDeps()
	defer cleanup()

	_, err := library.Ingest(context.Background(), []domain.RawItem{
		{
			Title:       "Reddit only",
			URL:         "https://example.com/reddit",
			Source:      domain.SourceReddit,
			ContentType: domain.ContentTypeText,
		},
	})
	require.NoError(t, err)

	out, err := execute("feed", "reddit", "--source", "github")
	require.NoError(t, err)
	assert.Contains(t, out, "No matching content.")
}

func TestFeedCmd_NotConfigured(t *testing.T) {
	prev := feedService
	feedService = nil
	defer func() { feedService = prev }()

	_, err := execute("feed", "anything")
	assert.ErrorContains(t, err, "not configured")
}
