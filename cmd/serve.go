package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/adarshkumar7463/army-chatbot/internal/api"
	"github.com/adarshkumar7463/army-chatbot/internal/chatbot"
)

var (
	serveAddr string
	serveDev  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "",
		"listen address (overrides configuration)")
	serveCmd.Flags().BoolVar(&serveDev, "dev", false,
		"use an in-memory record store instead of PostgreSQL")
	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app, err := setup(ctx, serveDev, chatbot.NewMetrics())
	if err != nil {
		return err
	}
	defer app.close()

	addr := serveAddr
	if addr == "" {
		addr = app.cfg.HTTPAddr
	}

	server := api.NewServer(app.engine, app.store, app.pool,
		app.exporter.Dir(), app.logger)

	app.logger.Info("HTTP server ready",
		"addr", addr,
		"api", "/api/v1/*",
		"health", "/health, /ready",
	)

	if err := server.Run(ctx, addr); err != nil {
		return fmt.Errorf("HTTP server: %w", err)
	}
	return nil
}
