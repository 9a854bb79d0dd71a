package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/theoremus-urban-solutions/tramline/config"
	"github.com/theoremus-urban-solutions/tramline/internal"
)

var (
	configPath string
	envFile    string
)

var rootCmd = &cobra.Command{
	Use:   "tramline",
	Short: "Single-line journey planner and live vehicle tracker",
	Long: `tramline composes journeys along authored line geometries and keeps a
live collection of vehicle markers from a GTFS-Realtime or AMQP feed.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		internal.InitLogging()
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", envFile, err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default config.yml or ./config/config.yml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the config")
	rootCmd.AddCommand(serveCmd, journeyCmd, importCmd)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration file, falling back to defaults plus
// environment overrides when no file exists.
func loadConfig() (config.AppConfig, error) {
	var err error
	if configPath != "" {
		err = config.LoadAppConfigFrom(configPath)
	} else {
		err = config.LoadAppConfig()
	}
	if errors.Is(err, os.ErrNotExist) && configPath == "" {
		config.Config, err = config.Parse(nil)
	}
	return config.Config, err
}
