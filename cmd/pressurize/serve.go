package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Unmask06/pressurize/internal/api"
	"github.com/Unmask06/pressurize/internal/logging"
	"github.com/Unmask06/pressurize/internal/units"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the simulation HTTP API",
	Long:  "serve exposes batch and streaming simulation runs plus gas property lookups over HTTP.",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()

		addr := serveAddr
		if env := os.Getenv("LISTEN_ADDR"); env != "" {
			addr = env
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		ctx = logging.NewContext(ctx, log)

		srv := api.NewServer(units.Default())
		log.Info("API listening", "addr", addr)
		if err := srv.Start(ctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		log.Info("API stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address for the HTTP API")
}
