package main

import (
	"context"
	"fmt"

	"github.com/jonathan/career-navigator/internal/config"
	"github.com/jonathan/career-navigator/internal/server"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the career guidance wizard behind JWT authentication.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (defaults to PORT or 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	if err := cfg.ValidateServer(); err != nil {
		return err
	}

	d, err := bootstrap(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer d.close()

	srv, err := server.New(server.Options{
		Port:      cfg.Port,
		DB:        d.db,
		LLM:       d.llm,
		JWT:       cfg.JWT,
		Passwords: cfg.Passwords(),
		Logger:    d.log,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start()
}
