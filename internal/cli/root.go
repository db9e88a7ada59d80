// Package cli holds the manifestgen command tree.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/manifestgen/internal/infrastructure/config"
	"github.com/GriffinCanCode/manifestgen/internal/infrastructure/logging"
)

// RootCmd represents the root command
var RootCmd = &cobra.Command{
	Use:           "manifestgen",
	Short:         "Generate web app manifests and icon sets",
	SilenceErrors: true,
	SilenceUsage:  true,
}

var (
	apiURL   string
	logLevel string
	devLogs  bool
)

func init() {
	RootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "manifest backend base URL (overrides API_URL)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")
	RootCmd.PersistentFlags().BoolVar(&devLogs, "dev", false, "human readable logs")

	RootCmd.AddCommand(serveCmd)
	RootCmd.AddCommand(generateCmd)
}

// loadConfig merges environment configuration with persistent flags
func loadConfig() (*config.Config, *logging.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if apiURL != "" {
		cfg.API.URL = apiURL
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if devLogs {
		cfg.Logging.Development = true
	}
	return cfg, logging.FromConfig(cfg.Logging.Level, cfg.Logging.Development), nil
}
