// Package fetch - browser.go renders pages in headless Chrome so client-side apps show their content.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/jonathan/portfolio-evaluator/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

const (
	bodyTextScript = `document.body ? document.body.innerText : ""`
	linksScript    = `Array.from(document.querySelectorAll('a')).map(a => a.href)`
)

// BrowserRenderer renders pages with chromedp. Requires Chrome/Chromium on the host.
type BrowserRenderer struct {
	opts   *Options
	slots  *semaphore.Weighted
	logger *zap.Logger
}

// NewBrowserRenderer creates a renderer that runs at most opts.MaxConcurrent browsers at once.
func NewBrowserRenderer(opts *Options, logger *zap.Logger) *BrowserRenderer {
	opts = opts.withDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BrowserRenderer{
		opts:   opts,
		slots:  semaphore.NewWeighted(int64(opts.MaxConcurrent)),
		logger: logger,
	}
}

func (r *BrowserRenderer) allocatorOptions() []chromedp.ExecAllocatorOption {
	return append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(r.opts.UserAgent),
	)
}

// Render loads the page, waits for the body, lets scripts settle and captures
// visible text, full markup and every anchor's resolved href.
func (r *BrowserRenderer) Render(ctx context.Context, pageURL string) (*types.PortfolioSnapshot, error) {
	if _, err := ValidateURL(pageURL); err != nil {
		return nil, err
	}

	if err := r.slots.Acquire(ctx, 1); err != nil {
		return nil, &RenderError{URL: pageURL, Message: "cancelled while waiting for a browser", Cause: err}
	}
	defer r.slots.Release(1)

	start := time.Now()
	r.logger.Debug("starting headless browser", zap.String("portfolio_url", pageURL))

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, r.allocatorOptions()...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	// Launch the browser before the page-load clock starts
	if err := chromedp.Run(browserCtx); err != nil {
		return nil, &RenderError{URL: pageURL, Message: "failed to start browser", Cause: err}
	}

	loadCtx, cancelLoad := context.WithTimeout(browserCtx, r.opts.PageLoadTimeout)
	err := chromedp.Run(loadCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body"),
	)
	timedOut := errors.Is(loadCtx.Err(), context.DeadlineExceeded)
	cancelLoad()
	if err != nil {
		if ctx.Err() == nil && (timedOut || errors.Is(err, context.DeadlineExceeded)) {
			return nil, &RenderError{
				URL:     pageURL,
				Message: fmt.Sprintf("page load timed out after %s", r.opts.PageLoadTimeout),
				Timeout: true,
				Cause:   err,
			}
		}
		return nil, &RenderError{URL: pageURL, Message: "navigation failed", Cause: err}
	}

	var (
		text  string
		html  string
		links []string
	)
	err = chromedp.Run(browserCtx,
		chromedp.Sleep(r.opts.SettleDelay),
		chromedp.Evaluate(bodyTextScript, &text),
		chromedp.OuterHTML("html", &html),
		chromedp.Evaluate(linksScript, &links),
	)
	if err != nil {
		return nil, &RenderError{URL: pageURL, Message: "failed to read rendered page", Cause: err}
	}

	r.logger.Debug("rendered page",
		zap.String("portfolio_url", pageURL),
		zap.Int("text_length", len(text)),
		zap.Int("html_bytes", len(html)),
		zap.Int("links", len(links)),
		zap.Duration("duration", time.Since(start)),
	)

	if links == nil {
		links = []string{}
	}
	return &types.PortfolioSnapshot{
		URL:   pageURL,
		Text:  text,
		HTML:  html,
		Links: links,
	}, nil
}
