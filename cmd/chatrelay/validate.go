package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"relay-hq/chatrelay/pkg/cli"
	"relay-hq/chatrelay/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Long: `Load the configuration file, apply environment overrides, and check it
for problems without starting the server.

The check covers:
  - Required upstream credentials (bot ID and API key)
  - Upstream base URL syntax
  - Rate limit window, request count, and prune schedule
  - Logging level and format

Examples:
  # Validate the default config file
  chatrelay validate

  # Validate a specific file
  chatrelay validate --config /etc/chatrelay/config.yaml`,
	RunE: validateConfig,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return cli.NewConfigError(cfgFile, fmt.Sprintf("failed to load config: %v", err))
	}

	if err := config.Validate(cfg); err != nil {
		return cli.NewConfigError(cfgFile, err.Error())
	}

	fmt.Println("✓ Configuration valid")
	fmt.Printf("  Listen address: %s\n", cfg.Server.ListenAddress)
	fmt.Printf("  Upstream:       %s (bot %s)\n", cfg.Upstream.BaseURL, cfg.Upstream.BotID)
	if cfg.RateLimit.Enabled {
		fmt.Printf("  Rate limit:     %d requests per %s\n", cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)
	} else {
		fmt.Println("  Rate limit:     disabled")
	}
	fmt.Printf("  Static dir:     %s\n", cfg.Server.StaticDir)
	return nil
}
