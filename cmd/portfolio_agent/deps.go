package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/portfolio-evaluator/internal/config"
	"github.com/jonathan/portfolio-evaluator/internal/fetch"
	"github.com/jonathan/portfolio-evaluator/internal/llm"
	"github.com/jonathan/portfolio-evaluator/internal/logger"
	"github.com/jonathan/portfolio-evaluator/internal/pipeline"
)

// loadConfig reads the config file and environment, then applies persistent flag overrides
func loadConfig(cmd *cobra.Command, opts *globalOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("log-json") {
		cfg.Log.JSON = opts.logJSON
	}
	if cmd.Flags().Changed("debug") {
		cfg.Log.Debug = opts.debug
	}
	return cfg, nil
}

// newLogger builds the process logger. CLI report commands log to stderr so stdout stays parseable.
func newLogger(cfg *config.Config, output string) (*zap.Logger, error) {
	log, err := logger.NewWithOutput(cfg.Log.JSON, cfg.Log.Debug, output)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, nil
}

// completionConfig maps the completion section onto client settings
func completionConfig(cfg *config.Config) *llm.Config {
	return &llm.Config{
		Temperature: cfg.Completion.Temperature,
		Timeout:     cfg.Completion.Timeout,
	}
}

// renderOptions maps the render section onto renderer options
func renderOptions(cfg *config.Config) *fetch.Options {
	return &fetch.Options{
		PageLoadTimeout: cfg.Render.PageLoadTimeout,
		SettleDelay:     cfg.Render.SettleDelay,
		MaxConcurrent:   cfg.Render.MaxConcurrent,
		UserAgent:       cfg.Render.UserAgent,
	}
}

// newAnalyzer wires the renderer and completion client factory into a pipeline
func newAnalyzer(cfg *config.Config, log *zap.Logger) (*pipeline.Analyzer, error) {
	renderer, err := fetch.NewRenderer(cfg.Render.Mode, renderOptions(cfg), log)
	if err != nil {
		return nil, err
	}

	return pipeline.NewAnalyzer(pipeline.Options{
		Renderer:      renderer,
		ClientFactory: llm.NewFactory(completionConfig(cfg)),
		MaxTextLength: cfg.Analysis.MaxTextLength,
		Logger:        log,
	})
}
