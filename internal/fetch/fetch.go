// Package fetch - fetch.go renders pages with a plain HTTP GET for hosts without a browser.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/portfolio-evaluator/internal/types"
	"go.uber.org/zap"
)

// maxBodyBytes caps how much of a page is read
const maxBodyBytes = 10 << 20

// Result holds the raw content from a URL fetch.
type Result struct {
	URL         string
	FinalURL    string
	HTML        string
	ContentType string
	StatusCode  int
}

// URL retrieves HTML content from a URL.
func URL(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	opts = opts.withDefaults()

	if _, err := ValidateURL(urlStr); err != nil {
		return nil, err
	}

	client := &http.Client{
		Timeout: opts.PageLoadTimeout,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &RenderError{
			URL:     urlStr,
			Message: "failed to create request",
			Cause:   err,
		}
	}

	req.Header.Set("User-Agent", opts.UserAgent)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		if isTimeout(err) && ctx.Err() == nil {
			return nil, &RenderError{
				URL:     urlStr,
				Message: fmt.Sprintf("page load timed out after %s", opts.PageLoadTimeout),
				Timeout: true,
				Cause:   err,
			}
		}
		return nil, &RenderError{
			URL:     urlStr,
			Message: "HTTP request failed",
			Cause:   err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &RenderError{
			URL:     urlStr,
			Message: "failed to read response body",
			Cause:   err,
		}
	}

	result := &Result{
		URL:         urlStr,
		FinalURL:    resp.Request.URL.String(),
		HTML:        string(bodyBytes),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return result, &RenderError{
			URL:     urlStr,
			Message: fmt.Sprintf("HTTP status %d", resp.StatusCode),
		}
	}

	return result, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// ExtractPage parses HTML and returns the visible body text plus every anchor
// href resolved against base.
func ExtractPage(html string, base *url.URL) (string, []string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	links := make([]string, 0)
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		if base != nil {
			ref = base.ResolveReference(ref)
		}
		links = append(links, ref.String())
	})

	// Non-visible elements never contribute text
	doc.Find("script, style, noscript, template").Remove()

	text := cleanWhitespace(doc.Find("body").Text())
	return text, links, nil
}

// cleanWhitespace trims every line and drops blank ones.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}

// HTTPRenderer renders pages without executing scripts.
// Client-side apps will expose little text; the browser renderer handles those.
type HTTPRenderer struct {
	opts   *Options
	logger *zap.Logger
}

// NewHTTPRenderer creates a renderer backed by net/http and goquery.
func NewHTTPRenderer(opts *Options, logger *zap.Logger) *HTTPRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPRenderer{opts: opts.withDefaults(), logger: logger}
}

// Render fetches the page and extracts text and links from the served markup.
func (r *HTTPRenderer) Render(ctx context.Context, pageURL string) (*types.PortfolioSnapshot, error) {
	start := time.Now()

	result, err := URL(ctx, pageURL, r.opts)
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(result.FinalURL)
	if err != nil {
		base = nil
	}

	text, links, err := ExtractPage(result.HTML, base)
	if err != nil {
		return nil, &RenderError{URL: pageURL, Message: "failed to parse page", Cause: err}
	}

	r.logger.Debug("fetched page",
		zap.String("portfolio_url", pageURL),
		zap.Int("status", result.StatusCode),
		zap.Int("text_length", len(text)),
		zap.Int("links", len(links)),
		zap.Duration("duration", time.Since(start)),
	)

	return &types.PortfolioSnapshot{
		URL:   pageURL,
		Text:  text,
		HTML:  result.HTML,
		Links: links,
	}, nil
}
