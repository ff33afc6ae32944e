package domain

import "time"

// AdapterReport is the per-adapter outcome of an aggregation run.
// A failed or timed-out task has Err set and Items zero; it never
// affects sibling adapters.
type AdapterReport struct {
	// Source is the adapter variant name.
	Source string `json:"source"`

	// Query echoes the fetch parameters the task ran with.
	Query string `json:"query"`

	// Items is the number of raw items the adapter returned.
	Items int `json:"items"`

	// Err holds the failure reason, empty on success.
	Err string `json:"err,omitempty"`

	// Elapsed is how long the task took (or ran before timing out).
	Elapsed time.Duration `json:"elapsed"`
}

// Failed reports whether the task failed.
func (r *AdapterReport) Failed() bool {
	return r.Err != ""
}

// AggregationSummary describes one fan-out run across source adapters.
type AggregationSummary struct {
	// RunID uniquely identifies the aggregation run.
	RunID string `json:"run_id"`

	// Reports holds one entry per scheduled task, in completion order.
	Reports []AdapterReport `json:"reports"`

	// Items is the total number of merged raw items.
	Items int `json:"items"`
}

// Succeeded counts tasks that completed without error.
func (s *AggregationSummary) Succeeded() int {
	n := 0
	for i := range s.Reports {
		if !s.Reports[i].Failed() {
			n++
		}
	}
	return n
}

// Failed counts tasks that errored or timed out.
func (s *AggregationSummary) Failed() int {
	return len(s.Reports) - s.Succeeded()
}

// ItemFailure records one raw item that could not be ingested.
type ItemFailure struct {
	// Key is the item's identity key (URL or fallback).
	Key string `json:"key"`

	// Reason describes why ingestion failed.
	Reason string `json:"reason"`
}

// IngestReport is the outcome of one ingestion batch.
type IngestReport struct {
	// Ingested is the number of new records appended to the catalog.
	Ingested int `json:"ingested"`

	// Duplicates is the number of items skipped because a record with
	// the same id already exists.
	Duplicates int `json:"duplicates"`

	// Failures lists items dropped from the batch (embedding failure,
	// dimension mismatch). Non-fatal for the batch.
	Failures []ItemFailure `json:"failures,omitempty"`

	// PersistErr holds the persistence failure reason, if the post-batch
	// snapshot write failed. In-memory state is kept; the next successful
	// snapshot includes all pending records.
	PersistErr string `json:"persist_err,omitempty"`
}
