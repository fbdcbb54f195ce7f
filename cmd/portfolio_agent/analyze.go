package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-evaluator/internal/ingestion"
	"github.com/jonathan/portfolio-evaluator/internal/observability"
	"github.com/jonathan/portfolio-evaluator/internal/pipeline"
	"github.com/jonathan/portfolio-evaluator/internal/schemas"
	"github.com/jonathan/portfolio-evaluator/internal/types"
)

// analyzeOptions holds the analyze command flags
type analyzeOptions struct {
	portfolioURL string
	jd           string
	jdFile       string
	model        string
	apiKey       string
	jsonOutput   bool
	quiet        bool
}

func newAnalyzeCmd(opts *globalOptions) *cobra.Command {
	aOpts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a portfolio against a job description",
		Long:  "Render the portfolio at --url, screen it against the job description and print the recruiter report.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd, opts, aOpts)
		},
	}

	cmd.Flags().StringVar(&aOpts.portfolioURL, "url", "", "Portfolio URL (required)")
	cmd.Flags().StringVar(&aOpts.jd, "jd", "", "Job description text")
	cmd.Flags().StringVar(&aOpts.jdFile, "jd-file", "", "Path to a job description text file")
	cmd.Flags().StringVar(&aOpts.model, "model", "", "Model identifier, see the models command (required)")
	cmd.Flags().StringVar(&aOpts.apiKey, "api-key", "", "Gemini API key (required)")
	cmd.Flags().BoolVar(&aOpts.jsonOutput, "json", false, "Print the report as JSON")
	cmd.Flags().BoolVarP(&aOpts.quiet, "quiet", "q", false, "Do not print stage progress")
	cmd.MarkFlagsMutuallyExclusive("jd", "jd-file")

	return cmd
}

// resolveJobDescription returns the description from --jd or --jd-file.
// An explicitly empty --jd is allowed and yields no ATS keywords.
func resolveJobDescription(cmd *cobra.Command, aOpts *analyzeOptions) (*string, error) {
	switch {
	case aOpts.jdFile != "":
		text, err := ingestion.ReadJobDescription(aOpts.jdFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read job description: %w", err)
		}
		return &text, nil
	case cmd.Flags().Changed("jd"):
		text := aOpts.jd
		return &text, nil
	default:
		return nil, fmt.Errorf("one of --jd or --jd-file is required")
	}
}

func runAnalyze(cmd *cobra.Command, opts *globalOptions, aOpts *analyzeOptions) error {
	jd, err := resolveJobDescription(cmd, aOpts)
	if err != nil {
		return err
	}

	req := &types.AnalysisRequest{
		PortfolioURL:   aOpts.portfolioURL,
		JobDescription: jd,
		Model:          aOpts.model,
		APIKey:         aOpts.apiKey,
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w (need --url, --model and --api-key)", err)
	}

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, "stderr")
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	analyzer, err := newAnalyzer(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create analyzer: %w", err)
	}

	progress := observability.NewPrinter(cmd.ErrOrStderr())
	var onProgress pipeline.ProgressCallback
	if !aOpts.quiet {
		onProgress = func(event pipeline.ProgressEvent) {
			progress.PrintStage(event.Index, event.Total, event.Message)
		}
	}

	result, err := analyzer.Analyze(cmd.Context(), req, onProgress)
	if err != nil {
		return err
	}

	return writeReport(cmd, result, aOpts.jsonOutput)
}

// writeReport prints the result as schema-checked JSON or as formatted boxes
func writeReport(cmd *cobra.Command, result *types.AnalysisResult, asJSON bool) error {
	if !asJSON {
		observability.NewPrinter(cmd.OutOrStdout()).PrintAnalysis(result)
		return nil
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := schemas.Validate(schemas.AnalysisResult, string(jsonBytes)); err != nil {
		return fmt.Errorf("report does not validate against schema: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
	return err
}
