// Package fetch - browser.go renders JavaScript-heavy pages in headless Chrome.
package fetch

import (
	"context"
	"log"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/gaurav-prasanna/semanticmd/core"
)

// BrowserFetcher renders pages with chromedp and returns the resulting DOM
// as HTML. Requires Chrome or Chromium on the host.
type BrowserFetcher struct {
	Timeout time.Duration
	// Settle is how long to wait after the body is ready for scripts to run.
	Settle  time.Duration
	Verbose bool
}

// NewBrowser creates a BrowserFetcher with default timings.
func NewBrowser(verbose bool) *BrowserFetcher {
	return &BrowserFetcher{Timeout: defaultTimeout, Settle: 2 * time.Second, Verbose: verbose}
}

// Fetch navigates to the URL and captures the rendered document.
func (b *BrowserFetcher) Fetch(ctx context.Context, rawURL string) (*core.FetchResult, error) {
	if err := validateURL(rawURL); err != nil {
		return nil, err
	}
	if b.Verbose {
		log.Printf("[BROWSER] Starting headless browser for: %s", rawURL)
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeout := b.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var rendered string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(rawURL),
		chromedp.WaitReady("body"),
		chromedp.Sleep(b.Settle),
		chromedp.OuterHTML("html", &rendered),
	)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "browser rendering failed", Cause: err}
	}

	if b.Verbose {
		log.Printf("[BROWSER] Rendered HTML: %d bytes", len(rendered))
	}
	return &core.FetchResult{URL: rawURL, StatusCode: 200, HTML: rendered}, nil
}
