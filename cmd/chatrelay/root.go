package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "chatrelay",
	Short: "Chatrelay - credential-holding relay for Chatbase bots",
	Long: `Chatrelay is a small HTTP service that sits between a web widget and
the Chatbase conversational API.

It provides:
  - A single POST /api/chat endpoint with message validation
  - Per-address fixed-window rate limiting
  - Upstream error translation with stable client-facing messages
  - Server-side credential handling (the API key never leaves the server)`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
