// Package fetch renders portfolio pages into text, markup and outbound links.
package fetch

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jonathan/portfolio-evaluator/internal/types"
	"go.uber.org/zap"
)

// Defaults for rendering a single page.
const (
	DefaultPageLoadTimeout = 60 * time.Second
	DefaultSettleDelay     = 3 * time.Second
	DefaultMaxConcurrent   = 2
	DefaultUserAgent       = "Mozilla/5.0 (compatible; PortfolioEvaluator/1.0)"
)

// Renderer modes
const (
	ModeBrowser = "browser"
	ModeHTTP    = "http"
)

// Renderer loads a page and captures what a visitor would see.
type Renderer interface {
	Render(ctx context.Context, pageURL string) (*types.PortfolioSnapshot, error)
}

// RenderError represents a failure to load or read a portfolio page.
type RenderError struct {
	URL     string
	Message string
	Timeout bool
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("render error for %s: %s", e.URL, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Options configures rendering behavior.
type Options struct {
	PageLoadTimeout time.Duration
	SettleDelay     time.Duration
	MaxConcurrent   int
	UserAgent       string
	Headers         map[string]string
}

// DefaultOptions returns sensible defaults for rendering.
func DefaultOptions() *Options {
	return &Options{
		PageLoadTimeout: DefaultPageLoadTimeout,
		SettleDelay:     DefaultSettleDelay,
		MaxConcurrent:   DefaultMaxConcurrent,
		UserAgent:       DefaultUserAgent,
	}
}

// withDefaults fills zero values from DefaultOptions
func (o *Options) withDefaults() *Options {
	defaults := DefaultOptions()
	if o == nil {
		return defaults
	}
	merged := *o
	if merged.PageLoadTimeout <= 0 {
		merged.PageLoadTimeout = defaults.PageLoadTimeout
	}
	if merged.SettleDelay < 0 {
		merged.SettleDelay = 0
	}
	if merged.MaxConcurrent <= 0 {
		merged.MaxConcurrent = defaults.MaxConcurrent
	}
	if merged.UserAgent == "" {
		merged.UserAgent = defaults.UserAgent
	}
	return &merged
}

// NewRenderer returns the renderer for the given mode
func NewRenderer(mode string, opts *Options, logger *zap.Logger) (Renderer, error) {
	switch mode {
	case ModeBrowser, "":
		return NewBrowserRenderer(opts, logger), nil
	case ModeHTTP:
		return NewHTTPRenderer(opts, logger), nil
	default:
		return nil, fmt.Errorf("unknown render mode %q", mode)
	}
}

// ValidateURL accepts only absolute http and https URLs.
func ValidateURL(pageURL string) (*url.URL, error) {
	parsed, err := url.Parse(strings.TrimSpace(pageURL))
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, &RenderError{
			URL:     pageURL,
			Message: "invalid URL: must be an absolute http or https URL",
			Cause:   err,
		}
	}
	return parsed, nil
}
