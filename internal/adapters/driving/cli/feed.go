package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/promptfeed-cli/internal/core/domain"
)

var (
	feedLimit   int
	feedType    string
	feedSources []string
	feedJSON    bool
)

var feedCmd = &cobra.Command{
	Use:   "feed [prompt]",
	Short: "Build a feed ranked by similarity to a prompt",
	Long: `Embeds the prompt and returns the catalog records nearest to
it, most similar first. Results can be narrowed by content type and
source; filtering never changes the similarity order.`,
	Args: cobra.ExactArgs(1),
	RunE: runFeed,
}

func init() {
	feedCmd.Flags().IntVarP(&feedLimit, "limit", "n", 10, "maximum number of results")
	feedCmd.Flags().StringVar(&feedType, "type", "", "only records of this content type")
	feedCmd.Flags().StringSliceVar(&feedSources, "source", nil, "only records from these sources")
	feedCmd.Flags().BoolVar(&feedJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(feedCmd)
}

func runFeed(cmd *cobra.Command, args []string) error {
	if feedService == nil {
		return errors.New("feed service not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	filters := domain.FilterConfig{
		ContentType: feedType,
		Sources:     feedSources,
	}
	records, err := feedService.Query(ctx, args[0], feedLimit, filters)
	if err != nil {
		return fmt.Errorf("feed query failed: %w", err)
	}

	if feedJSON {
		return outputFeedJSON(cmd, records)
	}
	return outputFeedList(cmd, records)
}

func outputFeedJSON(cmd *cobra.Command, records []domain.ContentRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputFeedList(cmd *cobra.Command, records []domain.ContentRecord) error {
	if len(records) == 0 {
		cmd.Println("No matching content.")
		return nil
	}

	for i := range records {
		rec := &records[i]
		cmd.Printf("  [%d] %s (%s/%s)\n", i+1, rec.Title, rec.Source, rec.ContentType)
		if rec.URL != "" {
			cmd.Printf("      %s\n", rec.URL)
		}
		if rec.Preview != "" {
			cmd.Printf("      %s\n", rec.Preview)
		}
		cmd.Println()
	}
	return nil
}
