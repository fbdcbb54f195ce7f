package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-evaluator/internal/llm"
	"github.com/jonathan/portfolio-evaluator/internal/server"
)

func newServeCmd(opts *globalOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long:  `Start an HTTP server exposing POST /models, POST /analyze and POST /analyze/stream. Credentials are supplied in each request body.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			log, err := newLogger(cfg, "stdout")
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			analyzer, err := newAnalyzer(cfg, log)
			if err != nil {
				return fmt.Errorf("failed to create analyzer: %w", err)
			}

			srv, err := server.New(cfg, server.Deps{
				Analyzer:   analyzer,
				ListModels: llm.ListTextModels,
				Logger:     log,
			})
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}

			return srv.Start()
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "Port to listen on (overrides server.port)")
	return cmd
}
