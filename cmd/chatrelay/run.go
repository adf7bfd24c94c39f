package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"relay-hq/chatrelay/pkg/cli"
	"relay-hq/chatrelay/pkg/config"
	"relay-hq/chatrelay/pkg/ratelimit"
	"relay-hq/chatrelay/pkg/server"
	"relay-hq/chatrelay/pkg/telemetry/logging"
	"relay-hq/chatrelay/pkg/telemetry/metrics"
	"relay-hq/chatrelay/pkg/upstream"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the chat relay server",
	Long: `Start the chat relay server with the specified configuration.

The server listens on the configured address, serves the chat widget's
static assets, and forwards validated chat messages to the Chatbase API.

Examples:
  # Start with default config
  chatrelay run

  # Start with custom config
  chatrelay run --config /etc/chatrelay/config.yaml

  # Override listen address
  chatrelay run --listen 0.0.0.0:8080

  # Validate config without starting server
  chatrelay run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return cli.NewConfigError(cfgFile, fmt.Sprintf("failed to load config: %v", err))
	}

	// Apply flag overrides
	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	if err := config.Validate(cfg); err != nil {
		return cli.NewConfigError(cfgFile, err.Error())
	}

	if err := logging.SetDefault(cfg.Telemetry.Logging); err != nil {
		return cli.NewConfigError(cfgFile, fmt.Sprintf("failed to configure logging: %v", err))
	}

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	fmt.Printf("Chatrelay v%s\n", Version)
	fmt.Printf("Loading configuration from: %s\n", cfgFile)
	fmt.Println("✓ Configuration loaded")

	client := upstream.NewClient(cfg.Upstream)

	var limiter *ratelimit.FixedWindow
	var pruner *ratelimit.Pruner
	if cfg.RateLimit.Enabled {
		limiter = ratelimit.NewFixedWindow(ratelimit.Config{
			Window:      cfg.RateLimit.Window,
			MaxRequests: cfg.RateLimit.MaxRequests,
		})

		if cfg.RateLimit.PruneSchedule != "" {
			pruner = ratelimit.NewPruner(limiter, cfg.RateLimit.PruneSchedule)
			if err := pruner.Start(context.Background()); err != nil {
				return cli.NewCommandError("run", fmt.Errorf("failed to start bucket pruner: %w", err))
			}
			defer pruner.Stop()
		}

		fmt.Printf("✓ Rate limiter active (%d requests per %s)\n",
			cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)
	}

	var collector *metrics.Collector
	if cfg.Telemetry.Metrics.Enabled {
		collector = metrics.NewCollector()
	}

	var serverLimiter ratelimit.Limiter
	if limiter != nil {
		serverLimiter = limiter
	}
	srv := server.New(cfg, client, serverLimiter, collector)

	ctx := cli.SetupSignalHandler()

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Start(ctx); err != nil {
			errChan <- err
		}
		close(errChan)
	}()

	fmt.Println()
	fmt.Printf("✓ Server listening on %s\n", cfg.Server.ListenAddress)
	fmt.Printf("✓ Chat endpoint:   http://%s%s\n", cfg.Server.ListenAddress, server.ChatPath)
	fmt.Printf("✓ Health endpoint: http://%s%s\n", cfg.Server.ListenAddress, server.HealthPath)
	if cfg.Telemetry.Metrics.Enabled {
		fmt.Printf("✓ Metrics endpoint: http://%s%s\n", cfg.Server.ListenAddress, cfg.Telemetry.Metrics.Path)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	if err := <-errChan; err != nil {
		return cli.NewCommandError("run", err)
	}

	fmt.Println("✓ Server stopped")
	return nil
}
