package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[embedding]
backend = "openai"
api_key = "sk-test"
model = "text-embedding-3-small"
dimensions = 256

[storage]
backend = "sqlite"

[sources.github]
token = "ghp_test"

[aggregation]
task_timeout_seconds = 20

[[aggregation.tasks]]
source = "reddit"

[aggregation.tasks.params]
query = "golang"
limit = 10

[[aggregation.tasks]]
source = "github"

[aggregation.tasks.params]
query = "machine-learning"
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.Embedding.Backend)
	assert.Equal(t, "sk-test", cfg.Embedding.APIKey)
	assert.Equal(t, 256, cfg.Embedding.Dimensions)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "ghp_test", cfg.Sources.GitHub.Token)
	assert.Equal(t, 20, cfg.Aggregation.TaskTimeoutSeconds)

	require.Len(t, cfg.Aggregation.Tasks, 2)
	assert.Equal(t, "reddit", cfg.Aggregation.Tasks[0].Source)
	assert.Equal(t, "golang", cfg.Aggregation.Tasks[0].Params.Query)
	assert.Equal(t, 10, cfg.Aggregation.Tasks[0].Params.Limit)
	assert.Equal(t, "machine-learning", cfg.Aggregation.Tasks[1].Params.Query)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, "ollama", cfg.Embedding.Backend)
	assert.Equal(t, "file", cfg.Storage.Backend)
}

func TestLoadInvalidToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("[embedding\nbackend ="), 0600))

	_, err := Load(path)
	assert.ErrorContains(t, err, "parse config")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DefaultFileName)

	cfg := Default()
	cfg.Embedding.Model = "nomic-embed-text"
	cfg.Sources.YouTube.APIKey = "yt-key"
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "nomic-embed-text", loaded.Embedding.Model)
	assert.Equal(t, "yt-key", loaded.Sources.YouTube.APIKey)
}
