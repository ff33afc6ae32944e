// Package sources wires the individual source adapters behind a single
// factory keyed by source name.
package sources

import (
	"fmt"

	"github.com/custodia-labs/promptfeed-cli/internal/core/domain"
	"github.com/custodia-labs/promptfeed-cli/internal/core/ports/driven"
	"github.com/custodia-labs/promptfeed-cli/internal/sources/github"
	"github.com/custodia-labs/promptfeed-cli/internal/sources/medium"
	"github.com/custodia-labs/promptfeed-cli/internal/sources/podcast"
	"github.com/custodia-labs/promptfeed-cli/internal/sources/reddit"
	"github.com/custodia-labs/promptfeed-cli/internal/sources/youtube"
)

// Ensure Factory implements the interface.
var _ driven.AdapterFactory = (*Factory)(nil)

// FactoryConfig bundles the per-source configuration.
type FactoryConfig struct {
	Reddit  reddit.Config
	YouTube youtube.Config
	Medium  medium.Config
	Podcast podcast.Config
	GitHub  github.Config
}

// Factory creates a fresh adapter per request. Adapters are cheap to
// build and the aggregator closes each one after its task, so there is
// no pooling.
type Factory struct {
	cfg FactoryConfig
}

// NewFactory creates an adapter factory.
func NewFactory(cfg FactoryConfig) *Factory {
	return &Factory{cfg: cfg}
}

// Create returns an adapter for the named source.
func (f *Factory) Create(source string) (driven.SourceAdapter, error) {
	switch source {
	case domain.SourceReddit:
		return reddit.New(f.cfg.Reddit), nil
	case domain.SourceYouTube:
		return youtube.New(f.cfg.YouTube)
	case domain.SourceMedium:
		return medium.New(f.cfg.Medium), nil
	case domain.SourcePodcast:
		return podcast.New(f.cfg.Podcast), nil
	case domain.SourceGitHub:
		return github.New(f.cfg.GitHub)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedSource, source)
	}
}

// Supported lists the source names the factory can create.
func Supported() []string {
	return []string{
		domain.SourceReddit,
		domain.SourceYouTube,
		domain.SourceMedium,
		domain.SourcePodcast,
		domain.SourceGitHub,
	}
}
