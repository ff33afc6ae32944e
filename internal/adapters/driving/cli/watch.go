package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/promptfeed-cli/internal/adapters/driving/watch"
)

var watchDirFlag string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Ingest raw-item batches dropped into a directory",
	Long: `Watches a drop directory for JSON batch files of raw items.
Each batch is ingested into the catalog and deleted once processed.
Runs until interrupted.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchDirFlag, "dir", "", "drop directory (default: <data dir>/inbox)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if library == nil {
		return errors.New("catalog not configured")
	}

	dir := watchDirFlag
	if dir == "" {
		dir = watchDir
	}

	watcher, err := watch.NewWatcher(library, dir)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s (ctrl-c to stop)\n", dir)
	if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}
