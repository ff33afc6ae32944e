package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog statistics",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if library == nil {
			return errors.New("catalog not configured")
		}
		cmd.Printf("Records:    %d\n", library.Size())
		cmd.Printf("Dimensions: %d\n", library.Dimensions())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
