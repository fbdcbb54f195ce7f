package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-evaluator/internal/llm"
	"github.com/jonathan/portfolio-evaluator/internal/types"
)

func newModelsCmd(opts *globalOptions) *cobra.Command {
	var (
		apiKey     string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List the text-generation models available to an API key",
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := types.ModelsRequest{APIKey: apiKey}
			if err := req.Validate(); err != nil {
				return fmt.Errorf("--api-key is required")
			}
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Completion.Timeout)
			defer cancel()

			models, err := llm.ListTextModels(ctx, req.APIKey)
			if err != nil {
				return fmt.Errorf("failed to list models: %w", err)
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string][]string{"models": models})
			}
			for _, m := range models {
				if _, err := fmt.Fprintln(out, m); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&apiKey, "api-key", "", "Gemini API key (required)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print {\"models\": [...]} instead of one model per line")
	return cmd
}
