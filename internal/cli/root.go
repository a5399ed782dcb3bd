package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/kmnx-league/internal/config"
	"github.com/mcoot/kmnx-league/internal/factory"
	"github.com/mcoot/kmnx-league/internal/logging"
	redisstorage "github.com/mcoot/kmnx-league/internal/storage/redis"
)

var (
	cfg      *Config
	settings *config.Config
	app      *factory.App
	out      *Output
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "kmnx",
		Short: "KMNx league standings and results",
		Long: `kmnx shows the KMNx league table, fixtures and results.

Matches are classified as upcoming, live or ended against the current time.
Edits made with "schedule add", "score" and "team add" are kept in the
configured store until "reset" discards them.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !ValidFormat(cfg.Output) {
				return fmt.Errorf("unknown output format %q: must be text, json or html", cfg.Output)
			}
			out = NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())

			var err error
			settings, err = cfg.Settings(cmd)
			if err != nil {
				return err
			}

			logger, err := logging.New(settings.Log.Level, settings.Log.Format, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			classifierCfg, err := settings.Classifier()
			if err != nil {
				return err
			}
			clk, err := cfg.Clock()
			if err != nil {
				return err
			}

			redisCfg := redisstorage.DefaultConfig()
			redisCfg.URL = settings.Store.RedisURL
			redisCfg.DataTTL = settings.Store.RedisTTL

			app, err = factory.New(factory.Config{
				Data:        settings.Data,
				Classifier:  classifierCfg,
				Logger:      &logger,
				StorageType: settings.Store.Type,
				StateFile:   settings.Store.StateFile,
				RedisConfig: &redisCfg,
				Clock:       clk,
			})
			if err != nil {
				return fmt.Errorf("failed to open %s store: %w", settings.Store.Type, err)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return closeApp()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.ConfigPath, "config", cfg.ConfigPath, "Config file (env: KMNX_CONFIG)")
	flags.StringVar(&cfg.Data, "data", "", "League data file or URL (env: KMNX_DATA)")
	flags.StringVar(&cfg.Store, "store", "", "Edit store: memory, file, redis (env: KMNX_STORE)")
	flags.StringVar(&cfg.StateFile, "state-file", "", "File store location (env: KMNX_STATE_FILE)")
	flags.StringVar(&cfg.RedisURL, "redis-url", "", "Redis URL for the redis store (env: KMNX_REDIS_URL)")
	flags.StringVar(&cfg.Timezone, "timezone", "", "Zone of match dates and times, e.g. +02:00 or Europe/Berlin (env: KMNX_TIMEZONE)")
	flags.DurationVar(&cfg.MatchDuration, "match-duration", 0, "Live window length (env: KMNX_MATCH_DURATION)")
	flags.StringVar(&cfg.Now, "now", cfg.Now, "Evaluate at this RFC 3339 time instead of the clock (env: KMNX_NOW)")
	flags.StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json, html (env: KMNX_OUTPUT)")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newLeaderboardCmd())
	rootCmd.AddCommand(newTeamsCmd())
	rootCmd.AddCommand(newTeamCmd())
	rootCmd.AddCommand(newResultsCmd())
	rootCmd.AddCommand(newScheduleCmd())
	rootCmd.AddCommand(newNextCmd())
	rootCmd.AddCommand(newScoreCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newWatchCmd())

	return rootCmd
}

// closeApp releases the store, if one was opened
func closeApp() error {
	if app == nil {
		return nil
	}
	err := app.Close()
	app = nil
	return err
}

// Execute runs the root command
func Execute() {
	err := NewRootCmd().Execute()
	_ = closeApp()
	if err != nil {
		NewOutput(cfg.Output, os.Stdout, os.Stderr).PrintError(err)
		os.Exit(1)
	}
}
