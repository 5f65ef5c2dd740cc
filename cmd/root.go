package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/misterclayt0n/tabata/internal/config"
	"github.com/misterclayt0n/tabata/internal/storage"
	"github.com/spf13/cobra"
)

var (
	logLevel string
	appCfg   = &config.Config{}
)

var rootCmd = &cobra.Command{
	Use:           "tabata",
	Short:         "Interval workout timer: tabata, EMOM, for time and AMRAP",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		appCfg = cfg

		level := logLevel
		if !cmd.Flags().Changed("log-level") && cfg.Log.Level != "" {
			level = cfg.Log.Level
		}
		lvl, err := parseLevel(level)
		if err != nil {
			return err
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
		return nil
	},
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return lvl, nil
}

// openStorage opens the history database named by the environment or config.
func openStorage() (*storage.Storage, error) {
	return storage.NewStorage(appCfg)
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
}
