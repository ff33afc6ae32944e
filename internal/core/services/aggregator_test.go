package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/promptfeed-cli/internal/core/domain"
	"github.com/custodia-labs/promptfeed-cli/internal/core/ports/driven"
	"github.com/custodia-labs/promptfeed-cli/internal/core/ports/driving"
)

func TestAggregatorFaultIsolation(t *testing.T) {
	// 10 tasks: 7 return two items each, 3 fail.
	adapters := make(map[string]driven.SourceAdapter)
	var tasks []driving.AdapterTask

	for i := 0; i < 7; i++ {
		name := fmt.Sprintf("ok-%d", i)
		adapters[name] = &fakeAdapter{
			source: name,
			items: []domain.RawItem{
				rawItem(name+" first", "https://example.com/"+name+"/1", name, domain.ContentTypeText),
				rawItem(name+" second", "https://example.com/"+name+"/2", name, domain.ContentTypeText),
			},
		}
		tasks = append(tasks, driving.AdapterTask{Source: name, Params: domain.FetchParams{Query: "q"}})
	}
	for i := 0; i < 3; i++ {
		name := fmt.Sprintf("bad-%d", i)
		adapters[name] = &fakeAdapter{source: name, err: errors.New("upstream 500")}
		tasks = append(tasks, driving.AdapterTask{Source: name, Params: domain.FetchParams{Query: "q"}})
	}

	agg := NewAggregator(&fakeFactory{adapters: adapters}, 0)
	items, summary := agg.Run(context.Background(), tasks)

	assert.Len(t, items, 14)
	assert.Len(t, summary.Reports, 10)
	assert.Equal(t, 7, summary.Succeeded())
	assert.Equal(t, 3, summary.Failed())
	assert.Equal(t, 14, summary.Items)
	assert.NotEmpty(t, summary.RunID)
}

func TestAggregatorUnknownSourceIsFailure(t *testing.T) {
	adapters := map[string]driven.SourceAdapter{
		"known": &fakeAdapter{
			source: "known",
			items:  []domain.RawItem{rawItem("a", "https://example.com/a", "known", domain.ContentTypeText)},
		},
	}
	agg := NewAggregator(&fakeFactory{adapters: adapters}, 0)

	items, summary := agg.Run(context.Background(), []driving.AdapterTask{
		{Source: "known", Params: domain.FetchParams{Query: "q"}},
		{Source: "mystery", Params: domain.FetchParams{Query: "q"}},
	})

	assert.Len(t, items, 1)
	assert.Equal(t, 1, summary.Succeeded())
	assert.Equal(t, 1, summary.Failed())

	for i := range summary.Reports {
		if summary.Reports[i].Source == "mystery" {
			assert.Contains(t, summary.Reports[i].Err, domain.ErrUnsupportedSource.Error())
		}
	}
}

func TestAggregatorTimeoutIsolatesSlowTask(t *testing.T) {
	slow := &fakeAdapter{
		source: "slow",
		fetch: func(ctx context.Context, _ domain.FetchParams) ([]domain.RawItem, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	fast := &fakeAdapter{
		source: "fast",
		items:  []domain.RawItem{rawItem("fast item", "https://example.com/fast", "fast", domain.ContentTypeText)},
	}

	agg := NewAggregator(&fakeFactory{adapters: map[string]driven.SourceAdapter{
		"slow": slow,
		"fast": fast,
	}}, 50*time.Millisecond)

	items, summary := agg.Run(context.Background(), []driving.AdapterTask{
		{Source: "slow", Params: domain.FetchParams{Query: "q"}},
		{Source: "fast", Params: domain.FetchParams{Query: "q"}},
	})

	require.Len(t, items, 1)
	assert.Equal(t, "fast item", items[0].Title)
	assert.Equal(t, 1, summary.Succeeded())
	assert.Equal(t, 1, summary.Failed())
}

func TestAggregatorCancelledRunReturns(t *testing.T) {
	blocked := &fakeAdapter{
		source: "blocked",
		fetch: func(ctx context.Context, _ domain.FetchParams) ([]domain.RawItem, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	agg := NewAggregator(&fakeFactory{adapters: map[string]driven.SourceAdapter{
		"blocked": blocked,
	}}, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	var items []domain.RawItem
	go func() {
		items, _ = agg.Run(ctx, []driving.AdapterTask{
			{Source: "blocked", Params: domain.FetchParams{Query: "q"}},
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
	assert.Empty(t, items)
}

func TestAggregatorNoTasks(t *testing.T) {
	agg := NewAggregator(&fakeFactory{adapters: nil}, 0)
	items, summary := agg.Run(context.Background(), nil)

	assert.Empty(t, items)
	assert.Empty(t, summary.Reports)
	assert.Zero(t, summary.Items)
}
