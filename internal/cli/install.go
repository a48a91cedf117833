package cli

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install [revision]",
	Short: "Download and install a browser revision",
	Long: `Download the archive for a revision, verify its container format and
extract it into the cache. Without a revision argument, the latest
published build is resolved and installed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := newFetcher()
		if err != nil {
			return err
		}

		var revision string
		if len(args) == 1 {
			revision = args[0]
		} else {
			revision, err = f.LatestRevision(cmd.Context())
			if err != nil {
				return fmt.Errorf("resolve latest revision: %w", err)
			}
			logger.Info().Str("revision", revision).Msg("resolved latest revision")
		}

		quiet, _ := cmd.Flags().GetBool("quiet")
		info, err := f.Download(cmd.Context(), revision, progressCallback(quiet, revision))
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), info.ExecutablePath)
		return nil
	},
}

func init() {
	installCmd.Flags().BoolP("quiet", "q", false, "suppress the progress bar")
	rootCmd.AddCommand(installCmd)
}

// progressCallback renders a byte progress bar, falling back to a spinner
// when the server does not report a content length.
func progressCallback(quiet bool, revision string) func(received, total int64) {
	if quiet {
		return nil
	}

	var bar *progressbar.ProgressBar
	return func(received, total int64) {
		if bar == nil {
			limit := total
			if limit == 0 {
				limit = -1 // unknown length
			}
			bar = progressbar.DefaultBytes(limit, "downloading "+revision)
		}
		_ = bar.Set64(received)
	}
}
