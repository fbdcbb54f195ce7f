// Package pipeline orchestrates one portfolio analysis: render, classify,
// extract the job descriptor, match keywords, assess fit and assemble the report.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/portfolio-evaluator/internal/assessment"
	"github.com/jonathan/portfolio-evaluator/internal/classify"
	"github.com/jonathan/portfolio-evaluator/internal/fetch"
	"github.com/jonathan/portfolio-evaluator/internal/ingestion"
	"github.com/jonathan/portfolio-evaluator/internal/llm"
	"github.com/jonathan/portfolio-evaluator/internal/logger"
	"github.com/jonathan/portfolio-evaluator/internal/matching"
	"github.com/jonathan/portfolio-evaluator/internal/parsing"
	"github.com/jonathan/portfolio-evaluator/internal/types"
)

// ProgressEvent represents a stage starting during an analysis
type ProgressEvent struct {
	Stage   Stage  `json:"stage"`
	Index   int    `json:"index"`
	Total   int    `json:"total"`
	Message string `json:"message"`
}

// ProgressCallback is called when a stage starts
type ProgressCallback func(event ProgressEvent)

// Options configures an Analyzer
type Options struct {
	Renderer      fetch.Renderer
	ClientFactory llm.Factory
	MaxTextLength int // capped at ingestion.DefaultMaxTextLength
	Logger        *zap.Logger
}

// Analyzer runs analyses. It holds no per-request state and is safe for concurrent use.
type Analyzer struct {
	renderer      fetch.Renderer
	newClient     llm.Factory
	maxTextLength int
	logger        *zap.Logger
}

// NewAnalyzer creates an Analyzer
func NewAnalyzer(opts Options) (*Analyzer, error) {
	if opts.Renderer == nil {
		return nil, fmt.Errorf("renderer is required")
	}
	if opts.ClientFactory == nil {
		return nil, fmt.Errorf("completion client factory is required")
	}
	if opts.MaxTextLength <= 0 || opts.MaxTextLength > ingestion.DefaultMaxTextLength {
		opts.MaxTextLength = ingestion.DefaultMaxTextLength
	}
	return &Analyzer{
		renderer:      opts.Renderer,
		newClient:     opts.ClientFactory,
		maxTextLength: opts.MaxTextLength,
		logger:        logger.OrNop(opts.Logger),
	}, nil
}

// completionLogLimit bounds the completion excerpt logged when a completion is unusable
const completionLogLimit = 200

// run is the per-request working state
type run struct {
	onProgress ProgressCallback
	log        *zap.Logger
	completed  Stage
}

// stage emits progress, runs fn and wraps any failure with the stage name.
// A stage only starts once the stage it depends on has completed.
func (r *run) stage(ctx context.Context, name Stage, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return &StageError{Stage: name, Cause: err}
	}

	def, index, err := GetStageDefinition(name)
	if err != nil {
		return &StageError{Stage: name, Cause: err}
	}
	if def.DependsOn != r.completed {
		return &StageError{
			Stage: name,
			Cause: fmt.Errorf("stage %s requires %s to complete first", name, def.DependsOn),
		}
	}
	if r.onProgress != nil {
		r.onProgress(ProgressEvent{
			Stage:   name,
			Index:   index + 1,
			Total:   len(stageRegistry),
			Message: def.Message,
		})
	}

	start := time.Now()
	if err := fn(); err != nil {
		fields := []zap.Field{
			zap.String(logger.FieldStage, string(name)),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		}
		var malformed *llm.MalformedCompletionError
		if errors.As(err, &malformed) && malformed.Completion != "" {
			fields = append(fields, zap.String("completion", logger.TruncateForLog(malformed.Completion, completionLogLimit)))
		}
		r.log.Debug("stage failed", fields...)
		return &StageError{Stage: name, Cause: err}
	}
	r.log.Debug("stage completed",
		zap.String(logger.FieldStage, string(name)),
		zap.Duration("duration", time.Since(start)),
	)
	r.completed = name
	return nil
}

// Analyze runs the full pipeline for one request. Stages run strictly in order;
// the first failure aborts the run and no partial result is returned.
// It makes one render call and two completion calls.
func (a *Analyzer) Analyze(ctx context.Context, req *types.AnalysisRequest, onProgress ProgressCallback) (*types.AnalysisResult, error) {
	if req == nil {
		return nil, &types.ValidationError{Message: types.MissingFieldsMessage}
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r := &run{
		onProgress: onProgress,
		log: a.logger.With(
			zap.String(logger.FieldURL, req.PortfolioURL),
			zap.String(logger.FieldModel, req.Model),
		),
	}
	start := time.Now()

	var (
		snapshot   *types.PortfolioSnapshot
		build      types.BuildClassification
		text       string
		client     llm.Client
		descriptor *types.JobDescriptor
		match      types.KeywordMatch
		fit        *types.FitAssessment
		result     *types.AnalysisResult
	)
	defer func() {
		if client != nil {
			_ = client.Close()
		}
	}()

	err := r.stage(ctx, StageRender, func() error {
		var err error
		snapshot, err = a.renderer.Render(ctx, req.PortfolioURL)
		if err == nil && snapshot == nil {
			err = errors.New("renderer returned no page")
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	err = r.stage(ctx, StageClassify, func() error {
		build = classify.Build(snapshot.HTML, snapshot.Links)
		text = ingestion.PreparePortfolioText(snapshot.Text, a.maxTextLength)
		r.log.Debug("portfolio prepared",
			zap.String("build_type", string(build.BuildType)),
			zap.Int("text_length", len(text)),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = r.stage(ctx, StageExtractJD, func() error {
		var err error
		client, err = a.newClient(ctx, req.APIKey, req.Model)
		if err != nil {
			return err
		}
		descriptor, err = parsing.ExtractJobDescriptor(ctx, client, req.JD())
		return err
	})
	if err != nil {
		return nil, err
	}

	err = r.stage(ctx, StageMatch, func() error {
		match = matching.MatchKeywords(descriptor.ATSKeywords, strings.ToLower(text))
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = r.stage(ctx, StageAssessFit, func() error {
		var err error
		fit, err = assessment.AssessFit(ctx, client, text, descriptor.ATSKeywords)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = r.stage(ctx, StageAssemble, func() error {
		result = Assemble(req.PortfolioURL, build, descriptor, match, fit)
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.log.Info("analysis completed",
		zap.String("hiring_decision", string(result.HiringDecision)),
		zap.Int("jd_fit_score", result.FitScore),
		zap.Int("ats_keyword_score", result.ATSMatch.Score),
		zap.Duration("duration", time.Since(start)),
	)
	return result, nil
}

// Assemble merges the stage outputs into the report
func Assemble(portfolioURL string, build types.BuildClassification, descriptor *types.JobDescriptor, match types.KeywordMatch, fit *types.FitAssessment) *types.AnalysisResult {
	return &types.AnalysisResult{
		PortfolioURL:   portfolioURL,
		JobTitle:       descriptor.JobTitle,
		EvaluationMode: types.EvaluationMode,
		PortfolioBuild: build,
		ATSMatch: types.ATSMatch{
			Score:        match.Score,
			MatchedCount: len(match.Matched),
			MissingCount: len(match.Missing),
		},
		SkillEvidence: types.SkillEvidence{
			StrongMatchCount:  len(fit.StrongMatches),
			PartialMatchCount: len(fit.PartialMatches),
			MissingSkillCount: len(fit.MissingSkills),
			PartialMatches:    fit.PartialMatches,
			MissingSkills:     fit.MissingSkills,
		},
		FitScore:       fit.FitScore,
		HiringDecision: fit.Decision,
		DecisionReason: fit.Reason,
	}
}
