package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/datallboy/bget/internal/fetcher"
)

var infoCmd = &cobra.Command{
	Use:   "info <revision>",
	Short: "Show paths, URL and install state for a revision",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := newFetcher()
		if err != nil {
			return err
		}

		info, err := f.RevisionInfo(args[0])
		if err != nil {
			return err
		}

		out := struct {
			*fetcher.RevisionInfo
			Available *bool `json:"available,omitempty"`
		}{RevisionInfo: info}

		if remote, _ := cmd.Flags().GetBool("remote"); remote {
			available, err := f.CanDownload(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out.Available = &available
		}

		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	infoCmd.Flags().Bool("remote", false, "also check download availability with a HEAD request")
	rootCmd.AddCommand(infoCmd)
}
