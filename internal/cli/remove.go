package cli

import (
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <revision>",
	Short: "Delete an installed revision",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := newFetcher()
		if err != nil {
			return err
		}
		if err := f.Remove(args[0]); err != nil {
			return err
		}
		logger.Info().Str("revision", args[0]).Msg("revision removed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
