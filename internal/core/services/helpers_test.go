package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/custodia-labs/promptfeed-cli/internal/core/domain"
	"github.com/custodia-labs/promptfeed-cli/internal/core/ports/driven"
)

// vocabEmbedder is a deterministic embedding function for tests: it
// maps text to a vector of word counts over a fixed vocabulary, so
// similarity is proportional to shared-word overlap.
type vocabEmbedder struct {
	vocab   []string
	failFor string
}

func newVocabEmbedder() *vocabEmbedder {
	return &vocabEmbedder{
		vocab: []string{
			"focus", "deep", "work", "distraction", "avoid",
			"github", "ml", "repo", "trending", "podcast",
		},
	}
}

func (e *vocabEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if e.failFor != "" && strings.Contains(text, e.failFor) {
		return nil, errors.New("embedding backend down")
	}
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	vec := make([]float32, len(e.vocab))
	for _, w := range words {
		for i, v := range e.vocab {
			if w == v {
				vec[i]++
			}
		}
	}
	return vec, nil
}

func (e *vocabEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		vec, err := e.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (e *vocabEmbedder) Dimensions() int            { return len(e.vocab) }
func (e *vocabEmbedder) ModelName() string          { return "vocab-overlap-test" }
func (e *vocabEmbedder) Ping(context.Context) error { return nil }
func (e *vocabEmbedder) Close() error               { return nil }

// brokenEmbedder always fails.
type brokenEmbedder struct{ dims int }

func (e *brokenEmbedder) Embed(context.Context, string) ([]float32, error) {
	return nil, errors.New("no embedding backend")
}

func (e *brokenEmbedder) EmbedBatch(context.Context, []string) ([][]float32, error) {
	return nil, errors.New("no embedding backend")
}

func (e *brokenEmbedder) Dimensions() int            { return e.dims }
func (e *brokenEmbedder) ModelName() string          { return "broken" }
func (e *brokenEmbedder) Ping(context.Context) error { return errors.New("down") }
func (e *brokenEmbedder) Close() error               { return nil }

// shortEmbedder returns vectors of the wrong length to provoke
// dimension-mismatch handling.
type shortEmbedder struct {
	inner driven.EmbeddingService
}

func (e *shortEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return []float32{1}, nil
}

func (e *shortEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return [][]float32{{1}}, nil
}

func (e *shortEmbedder) Dimensions() int            { return e.inner.Dimensions() }
func (e *shortEmbedder) ModelName() string          { return "short" }
func (e *shortEmbedder) Ping(context.Context) error { return nil }
func (e *shortEmbedder) Close() error               { return nil }

// memSnapshot is an in-memory snapshot store.
type memSnapshot struct {
	mu      sync.Mutex
	records []domain.ContentRecord
	saveErr error
	saves   int
}

func (s *memSnapshot) Load(context.Context) ([]domain.ContentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ContentRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *memSnapshot) Save(_ context.Context, records []domain.ContentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.records = make([]domain.ContentRecord, len(records))
	copy(s.records, records)
	s.saves++
	return nil
}

func (s *memSnapshot) Close() error { return nil }

// fakeAdapter returns canned items or an error.
type fakeAdapter struct {
	source string
	items  []domain.RawItem
	err    error
	fetch  func(ctx context.Context, params domain.FetchParams) ([]domain.RawItem, error)
}

func (a *fakeAdapter) Source() string { return a.source }

func (a *fakeAdapter) Fetch(ctx context.Context, params domain.FetchParams) ([]domain.RawItem, error) {
	if a.fetch != nil {
		return a.fetch(ctx, params)
	}
	if a.err != nil {
		return nil, a.err
	}
	return a.items, nil
}

func (a *fakeAdapter) Close() error { return nil }

// fakeFactory resolves adapters by name.
type fakeFactory struct {
	adapters map[string]driven.SourceAdapter
}

func (f *fakeFactory) Create(source string) (driven.SourceAdapter, error) {
	adapter, ok := f.adapters[source]
	if !ok {
		return nil, domain.ErrUnsupportedSource
	}
	return adapter, nil
}

// rawItem builds a minimal test item.
func rawItem(title, url, source, contentType string) domain.RawItem {
	return domain.RawItem{
		Title:       title,
		URL:         url,
		Source:      source,
		ContentType: contentType,
	}
}
