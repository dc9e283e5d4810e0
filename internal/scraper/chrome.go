package scraper

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	DefaultNavigationTimeout = 60 * time.Second
	DefaultUserAgent         = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"
)

// ChromeNavigator renders pages in a headless Chrome started for each call.
type ChromeNavigator struct {
	timeout   time.Duration
	headless  bool
	userAgent string
	logger    *log.Logger
}

type ChromeOptions struct {
	Timeout   time.Duration
	Headless  bool
	UserAgent string
}

func NewChromeNavigator(opts ChromeOptions, logger *log.Logger) *ChromeNavigator {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultNavigationTimeout
	}
	if strings.TrimSpace(opts.UserAgent) == "" {
		opts.UserAgent = DefaultUserAgent
	}
	return &ChromeNavigator{
		timeout:   opts.Timeout,
		headless:  opts.Headless,
		userAgent: opts.UserAgent,
		logger:    logger,
	}
}

func (n *ChromeNavigator) allocatorOptions() []chromedp.ExecAllocatorOption {
	return append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", n.headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(n.userAgent),
	)
}

// Navigate loads url and returns the rendered HTML. The browser is closed
// before Navigate returns, whatever the outcome.
func (n *ChromeNavigator) Navigate(ctx context.Context, url string) (*Page, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, n.allocatorOptions()...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	reqCtx, reqCancel := context.WithTimeout(browserCtx, n.timeout)
	defer reqCancel()

	start := time.Now()
	var html string
	err := chromedp.Run(reqCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, &NavigationError{URL: url, Cause: err}
	}
	if n.logger != nil {
		n.logger.Printf("[Browser] rendered url=%s bytes=%d latency=%s", url, len(html), time.Since(start))
	}

	p, err := NewPage(url, html)
	if err != nil {
		return nil, &NavigationError{URL: url, Cause: err}
	}
	return p, nil
}

var _ Navigator = (*ChromeNavigator)(nil)
