package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/denisAlshanov/mediafetch/internal/config"
	"github.com/denisAlshanov/mediafetch/internal/utils"
)

// Version is set at build time via ldflags; APP_VERSION overrides it at runtime.
var Version = "dev"

var flagEnvFiles []string

// cfg holds the loaded configuration (defaults < env files < environment).
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:               "mediafetch",
	Short:             "HTTP service that downloads media with yt-dlp",
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              serveRun,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&flagEnvFiles, "env-file", nil, "Dotenv file(s) to load (default: .env)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(flagEnvFiles...)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	utils.SetLogLevel(cfg.Server.LogLevel)
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("mediafetch " + Version)
	},
}
