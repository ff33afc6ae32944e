// Command promptfeed aggregates content sources into a semantically
// searchable catalog and serves prompt-ranked feeds.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	configfile "github.com/custodia-labs/promptfeed-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/promptfeed-cli/internal/adapters/driven/embedding/ollama"
	"github.com/custodia-labs/promptfeed-cli/internal/adapters/driven/embedding/openai"
	snapshotfile "github.com/custodia-labs/promptfeed-cli/internal/adapters/driven/snapshot/file"
	snapshotsqlite "github.com/custodia-labs/promptfeed-cli/internal/adapters/driven/snapshot/sqlite"
	"github.com/custodia-labs/promptfeed-cli/internal/adapters/driven/vectorindex/flat"
	"github.com/custodia-labs/promptfeed-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/promptfeed-cli/internal/core/ports/driven"
	"github.com/custodia-labs/promptfeed-cli/internal/core/services"
	"github.com/custodia-labs/promptfeed-cli/internal/logger"
	"github.com/custodia-labs/promptfeed-cli/internal/sources"
	githubsource "github.com/custodia-labs/promptfeed-cli/internal/sources/github"
	redditsource "github.com/custodia-labs/promptfeed-cli/internal/sources/reddit"
	youtubesource "github.com/custodia-labs/promptfeed-cli/internal/sources/youtube"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "promptfeed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	embedder, err := buildEmbedder(cfg.Embedding)
	if err != nil {
		return err
	}
	defer embedder.Close()

	index, err := flat.New(embedder.Dimensions())
	if err != nil {
		return err
	}

	snapshots, err := buildSnapshotStore(cfg.Storage)
	if err != nil {
		return err
	}
	defer snapshots.Close()

	library, err := services.NewLibrary(embedder, index, snapshots)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := library.Load(ctx); err != nil {
		return fmt.Errorf("restore catalog: %w", err)
	}

	factory := sources.NewFactory(sources.FactoryConfig{
		Reddit:  redditsource.Config{UserAgent: cfg.Sources.Reddit.UserAgent},
		YouTube: youtubesource.Config{APIKey: cfg.Sources.YouTube.APIKey},
		GitHub:  githubsource.Config{Token: cfg.Sources.GitHub.Token},
	})

	taskTimeout := time.Duration(cfg.Aggregation.TaskTimeoutSeconds) * time.Second
	aggregator := services.NewAggregator(factory, taskTimeout)
	feed := services.NewFeedService(embedder, library)

	cli.SetVersion(version)
	cli.SetDeps(cli.Deps{
		Aggregator:   aggregator,
		FeedService:  feed,
		Library:      library,
		DefaultTasks: cfg.Aggregation.Tasks,
		WatchDir:     filepath.Join(dataDir(cfg.Storage), "inbox"),
	})

	execErr := cli.Execute()

	// Best effort: give a failed mid-run snapshot one more chance.
	if err := library.Flush(ctx); err != nil {
		logger.Warn("Final snapshot flush failed: %v", err)
	}
	return execErr
}

// loadConfig reads the config file, honoring the PROMPTFEED_CONFIG
// environment override.
func loadConfig() (configfile.Config, error) {
	path := os.Getenv("PROMPTFEED_CONFIG")
	if path == "" {
		var err error
		path, err = configfile.DefaultPath()
		if err != nil {
			return configfile.Config{}, err
		}
	}
	return configfile.Load(path)
}

// buildEmbedder selects the embedding backend.
func buildEmbedder(cfg configfile.EmbeddingConfig) (driven.EmbeddingService, error) {
	switch cfg.Backend {
	case "", "ollama":
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
		}), nil
	case "openai":
		return openai.NewEmbeddingService(openai.Config{
			APIKey:     cfg.APIKey,
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
		})
	default:
		return nil, fmt.Errorf("unknown embedding backend %q", cfg.Backend)
	}
}

// buildSnapshotStore selects the persistence backend.
func buildSnapshotStore(cfg configfile.StorageConfig) (driven.CatalogSnapshotStore, error) {
	switch cfg.Backend {
	case "", "file":
		return snapshotfile.NewStore(cfg.DataDir)
	case "sqlite":
		return snapshotsqlite.NewStore(cfg.DataDir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// dataDir resolves the effective data directory for auxiliary paths.
func dataDir(cfg configfile.StorageConfig) string {
	if cfg.DataDir != "" {
		return cfg.DataDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".promptfeed", "data")
}
