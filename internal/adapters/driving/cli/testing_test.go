package cli

import (
	"bytes"
	"context"
	"strings"

	"github.com/custodia-labs/promptfeed-cli/internal/adapters/driven/vectorindex/flat"
	"github.com/custodia-labs/promptfeed-cli/internal/core/domain"
	"github.com/custodia-labs/promptfeed-cli/internal/core/ports/driving"
	"github.com/custodia-labs/promptfeed-cli/internal/core/services"
)

// hashEmbedder is a tiny deterministic embedder for command tests.
type hashEmbedder struct{}

func (hashEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, 4)
	for i, r := range strings.ToLower(text) {
		vec[i%4] += float32(r % 7)
	}
	return vec, nil
}

func (h hashEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		vec, err := h.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (hashEmbedder) Dimensions() int            { return 4 }
func (hashEmbedder) ModelName() string          { return "hash-test" }
func (hashEmbedder) Ping(context.Context) error { return nil }
func (hashEmbedder) Close() error               { return nil }

// nullSnapshot discards snapshots.
type nullSnapshot struct{}

func (nullSnapshot) Load(context.Context) ([]domain.ContentRecord, error) { return nil, nil }
func (nullSnapshot) Save(context.Context, []domain.ContentRecord) error   { return nil }
func (nullSnapshot) Close() error                                         { return nil }

// stubAggregator returns canned items.
type stubAggregator struct {
	items []domain.RawItem
}

func (a *stubAggregator) Run(_ context.Context, tasks []driving.AdapterTask) ([]domain.RawItem, domain.AggregationSummary) {
	summary := domain.AggregationSummary{RunID: "test-run", Items: len(a.items)}
	for _, task := range tasks {
		summary.Reports = append(summary.Reports, domain.AdapterReport{
			Source: task.Source,
			Query:  task.Params.Query,
			Items:  len(a.items),
		})
	}
	return a.items, summary
}

// setupTestDeps wires the commands with in-memory services and returns
// a cleanup restoring the previous wiring.
func setupTestDeps() func() {
	prev := Deps{
		Aggregator:   aggregator,
		FeedService:  feedService,
		Library:      library,
		DefaultTasks: defaultTasks,
		WatchDir:     watchDir,
	}

	embedder := hashEmbedder{}
	index, err := flat.New(embedder.Dimensions())
	if err != nil {
		panic(err)
	}
	lib, err := services.NewLibrary(embedder, index, nullSnapshot{})
	if err != nil {
		panic(err)
	}

	SetDeps(Deps{
		Aggregator: &stubAggregator{items: []domain.RawItem{
			{
				Title:       "Scraped item",
				URL:         "https://example.com/scraped",
				Source:      domain.SourceReddit,
				ContentType: domain.ContentTypeText,
			},
		}},
		FeedService: services.NewFeedService(embedder, lib),
		Library:     lib,
	})

	return func() { SetDeps(prev) }
}

// execute runs the root command with args and returns its output.
// Flag variables are reset first; cobra keeps their values across runs.
func execute(args ...string) (string, error) {
	feedLimit, feedType, feedSources, feedJSON = 10, "", nil, false
	scrapeLimit = 0
	watchDirFlag = ""
	verbose = false

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
