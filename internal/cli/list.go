package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed revisions for the current platform",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := newFetcher()
		if err != nil {
			return err
		}

		revisions, err := f.LocalRevisions()
		if err != nil {
			return err
		}
		for _, revision := range revisions {
			fmt.Fprintln(cmd.OutOrStdout(), revision)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
