package driving

import (
	"context"

	"github.com/custodia-labs/promptfeed-cli/internal/core/domain"
)

// AdapterTask names one unit of aggregation work: a source variant plus
// its fetch parameters.
type AdapterTask struct {
	// Source is the adapter variant to run (domain.Source*).
	Source string `json:"source" toml:"source"`

	// Params are the fetch parameters for the task.
	Params domain.FetchParams `json:"params" toml:"params"`
}

// Aggregator fans out over source adapters and merges their results.
type Aggregator interface {
	// Run dispatches every task concurrently, each bounded by its own
	// timeout, and blocks until all finish or time out. Failing tasks
	// contribute zero items and never cancel or delay siblings. The
	// merged item sequence may contain duplicates across adapters;
	// dedup happens at ingestion.
	Run(ctx context.Context, tasks []AdapterTask) ([]domain.RawItem, domain.AggregationSummary)
}
