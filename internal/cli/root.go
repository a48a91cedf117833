// Package cli implements the bget command tree.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/datallboy/bget/internal/browser"
	"github.com/datallboy/bget/internal/config"
	"github.com/datallboy/bget/internal/fetcher"
)

var (
	cfgFile      string
	flagProduct  string
	flagPlatform string
	flagPath     string
	flagHost     string
	flagLogLevel string

	logger = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "bget",
	Short: "Fetch and manage browser binaries",
	Long: `bget downloads Chromium snapshot and Firefox nightly builds, installs
them into a local cache and resolves the executable path for each
installed revision.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogging()
	},
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/bget/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagProduct, "product", "", "browser product (chromium, firefox)")
	rootCmd.PersistentFlags().StringVar(&flagPlatform, "platform", "", "target platform (linux, linux-arm64, mac, win32, win64)")
	rootCmd.PersistentFlags().StringVar(&flagPath, "path", "", "download root (default under the user cache dir)")
	rootCmd.PersistentFlags().StringVar(&flagHost, "host", "", "download host override")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error, disabled)")
}

func initLogging() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	level := cfg.Log.Level
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	logger = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(parsed)
	if cfg.Log.Pretty {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if flagProduct != "" {
		cfg.Product = flagProduct
	}
	if flagPlatform != "" {
		cfg.Platform = flagPlatform
	}
	if flagPath != "" {
		cfg.Path = flagPath
	}
	if flagHost != "" {
		cfg.Host = flagHost
	}
	return cfg, nil
}

// newFetcher builds a Fetcher from the merged flag/config/env settings.
func newFetcher() (*fetcher.Fetcher, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	product, err := browser.ParseProduct(cfg.Product)
	if err != nil {
		return nil, err
	}
	var platform browser.Platform
	if cfg.Platform != "" {
		platform, err = browser.ParsePlatform(cfg.Platform)
		if err != nil {
			return nil, err
		}
	}

	return fetcher.New(fetcher.Options{
		Product:  product,
		Platform: platform,
		Path:     cfg.Path,
		Host:     cfg.Host,
		Logger:   &logger,
	})
}
