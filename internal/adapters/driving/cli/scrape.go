package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/promptfeed-cli/internal/core/domain"
	"github.com/custodia-labs/promptfeed-cli/internal/core/ports/driving"
)

var scrapeLimit int

// timeRound trims elapsed durations for display.
const timeRound = time.Millisecond

var scrapeCmd = &cobra.Command{
	Use:   "scrape [source:query ...]",
	Short: "Fetch new content and ingest it into the catalog",
	Long: `Runs the aggregation pipeline: every named task fetches
concurrently, failures are isolated per source, and the surviving items
are embedded and appended to the catalog.

Tasks are given as source:query pairs, e.g. "reddit:golang" or
"github:machine-learning". With no arguments the scrape plan from the
config file is used.`,
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().IntVarP(&scrapeLimit, "limit", "n", 0, "per-source item limit (0 = source default)")
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	if aggregator == nil || library == nil {
		return errors.New("aggregation pipeline not configured")
	}

	tasks, err := parseTasks(args)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		tasks = defaultTasks
	}
	if len(tasks) == 0 {
		return errors.New("no tasks: pass source:query arguments or configure [aggregation] tasks")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	items, summary := aggregator.Run(ctx, tasks)

	for i := range summary.Reports {
		r := &summary.Reports[i]
		if r.Failed() {
			cmd.Printf("  ✗ %s(%s): %s\n", r.Source, r.Query, r.Err)
		} else {
			cmd.Printf("  ✓ %s(%s): %d items in %s\n", r.Source, r.Query, r.Items, r.Elapsed.Round(timeRound))
		}
	}

	report, err := library.Ingest(ctx, items)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("\nRun %s: %d fetched, %d ingested, %d duplicates, %d dropped\n",
		summary.RunID, summary.Items, report.Ingested, report.Duplicates, len(report.Failures))
	if report.PersistErr != "" {
		cmd.Printf("warning: snapshot not persisted: %s\n", report.PersistErr)
	}
	return nil
}

// parseTasks converts source:query arguments into adapter tasks.
func parseTasks(args []string) ([]driving.AdapterTask, error) {
	tasks := make([]driving.AdapterTask, 0, len(args))
	for _, arg := range args {
		source, query, ok := strings.Cut(arg, ":")
		if !ok || source == "" || query == "" {
			return nil, fmt.Errorf("%w: task %q is not source:query", domain.ErrInvalidInput, arg)
		}
		tasks = append(tasks, driving.AdapterTask{
			Source: source,
			Params: domain.FetchParams{Query: query, Limit: scrapeLimit},
		})
	}
	return tasks, nil
}
