package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/portfolio-evaluator/internal/logger"
	"github.com/jonathan/portfolio-evaluator/internal/pipeline"
	"github.com/jonathan/portfolio-evaluator/internal/types"
)

// ModelsResponse represents the response for /models
type ModelsResponse struct {
	Models []string `json:"models"`
}

// decodeBody reads a bounded JSON object into v
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &ErrInvalidBody{Cause: err}
	}
	return nil
}

// handleModels lists the text-generation models available to the supplied key
func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	var req types.ModelsRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.errorResponse(w, ModelsHTTPStatus(err), PublicMessage(err))
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, ModelsHTTPStatus(err), PublicMessage(err))
		return
	}

	models, err := s.listModels(r.Context(), req.APIKey)
	if err != nil {
		s.requestLogger(r).Warn("model listing failed", zap.Error(err))
		s.errorResponse(w, ModelsHTTPStatus(err), PublicMessage(err))
		return
	}
	if models == nil {
		models = []string{}
	}

	s.jsonResponse(w, http.StatusOK, ModelsResponse{Models: models})
}

// readAnalysisRequest decodes and validates an analysis body, writing a 400 on failure
func (s *Server) readAnalysisRequest(w http.ResponseWriter, r *http.Request) (*types.AnalysisRequest, bool) {
	var req types.AnalysisRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.errorResponse(w, HTTPStatus(err), PublicMessage(err))
		return nil, false
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, HTTPStatus(err), PublicMessage(err))
		return nil, false
	}
	return &req, true
}

// handleAnalyze runs the pipeline and returns the full report
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readAnalysisRequest(w, r)
	if !ok {
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), req, nil)
	if err != nil {
		s.requestLogger(r).Error("analysis failed",
			zap.String(logger.FieldURL, req.PortfolioURL),
			zap.String(logger.FieldModel, req.Model),
			zap.Error(err),
		)
		s.errorResponse(w, HTTPStatus(err), PublicMessage(err))
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleAnalyzeStream runs the pipeline and streams stage progress via SSE
func (s *Server) handleAnalyzeStream(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readAnalysisRequest(w, r)
	if !ok {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	log := s.requestLogger(r)
	result, err := s.analyzer.Analyze(r.Context(), req, func(event pipeline.ProgressEvent) {
		if err := sse.WriteEvent(EventStage, event); err != nil {
			log.Debug("error writing SSE event", zap.Error(err))
		}
	})
	if err != nil {
		log.Error("analysis failed",
			zap.String(logger.FieldURL, req.PortfolioURL),
			zap.String(logger.FieldModel, req.Model),
			zap.Error(err),
		)
		sse.WriteError(PublicMessage(err))
		return
	}

	if err := sse.WriteEvent(EventResult, result); err != nil {
		log.Debug("error writing SSE result", zap.Error(err))
	}
}
