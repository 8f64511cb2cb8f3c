package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Unmask06/pressurize/internal/logging"
)

var (
	logLevel string
	logJSON  bool
)

var rootCmd = &cobra.Command{
	Use:   "pressurize",
	Short: "Transient gas-flow valve simulation toolkit",
	Long:  "Pressurize simulates transient gas flow between two vessels through an opening or closing valve.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger builds the process logger from the persistent flags, with an
// optional LOG_LEVEL env override.
func newLogger() *slog.Logger {
	level := logLevel
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		level = env
	}
	return logging.New(logging.Options{Level: level, JSON: logJSON})
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Emit logs as JSON")
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(propertiesCmd)
}
