package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/promptfeed-cli/internal/core/domain"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [text]",
	Short: "Assign category tags to a piece of text",
	Long: `Runs the keyword classifier over the text and prints the
matching categories. Text matching no category prints "general".`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		categories := domain.Classify(args[0])
		cmd.Println(strings.Join(categories, ", "))
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
