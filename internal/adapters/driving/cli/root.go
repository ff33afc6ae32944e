// Package cli provides the promptfeed command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/promptfeed-cli/internal/core/ports/driving"
	"github.com/custodia-labs/promptfeed-cli/internal/core/services"
	"github.com/custodia-labs/promptfeed-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services injected by the composition root before Execute runs.
var (
	aggregator   driving.Aggregator
	feedService  driving.FeedService
	library      *services.Library
	defaultTasks []driving.AdapterTask
	watchDir     string
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "promptfeed",
	Short: "Aggregate content sources into a semantically searchable feed",
	Long: `promptfeed pulls content from forums, video channels, blogs,
podcast catalogs and code repositories into one catalog, and serves
prompt-driven feeds ranked by embedding similarity.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
}

// Deps bundles everything the commands need.
type Deps struct {
	Aggregator   driving.Aggregator
	FeedService  driving.FeedService
	Library      *services.Library
	DefaultTasks []driving.AdapterTask
	WatchDir     string
}

// SetDeps injects the wired services. Called by the composition root
// before Execute.
func SetDeps(deps Deps) {
	aggregator = deps.Aggregator
	feedService = deps.FeedService
	library = deps.Library
	defaultTasks = deps.DefaultTasks
	watchDir = deps.WatchDir
}

// SetVersion records the build version shown by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
