package scraper

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
)

// StaticNavigator fetches pages without running JavaScript.
type StaticNavigator struct {
	timeout   time.Duration
	userAgent string
	logger    *log.Logger
}

func NewStaticNavigator(timeout time.Duration, userAgent string, logger *log.Logger) *StaticNavigator {
	if timeout <= 0 {
		timeout = DefaultNavigationTimeout
	}
	if strings.TrimSpace(userAgent) == "" {
		userAgent = DefaultUserAgent
	}
	return &StaticNavigator{timeout: timeout, userAgent: userAgent, logger: logger}
}

func (n *StaticNavigator) Navigate(ctx context.Context, pageURL string) (*Page, error) {
	if ctx.Err() != nil {
		return nil, &NavigationError{URL: pageURL, Cause: ctx.Err()}
	}

	var c *colly.Collector
	if allowed := hostFromURL(pageURL); allowed != "" {
		c = colly.NewCollector(colly.AllowedDomains(allowed), colly.UserAgent(n.userAgent))
	} else {
		c = colly.NewCollector(colly.UserAgent(n.userAgent))
	}
	c.SetRequestTimeout(n.timeout)

	var body []byte
	var status int
	var reqErr error

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept-Language", "en-US,en;q=0.9")
		if ctx.Err() != nil {
			r.Abort()
		}
	})

	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = r.Body
	})

	c.OnError(func(r *colly.Response, err error) {
		reqErr = err
	})

	start := time.Now()
	if err := c.Visit(pageURL); err != nil {
		return nil, &NavigationError{URL: pageURL, Cause: err}
	}
	c.Wait()

	if reqErr != nil {
		return nil, &NavigationError{URL: pageURL, Cause: reqErr}
	}
	if ctx.Err() != nil {
		return nil, &NavigationError{URL: pageURL, Cause: ctx.Err()}
	}
	if body == nil {
		return nil, &NavigationError{URL: pageURL, Cause: fmt.Errorf("empty response status=%d", status)}
	}
	if n.logger != nil {
		n.logger.Printf("[Browser] fetched url=%s status=%d bytes=%d latency=%s", pageURL, status, len(body), time.Since(start))
	}

	p, err := NewPage(pageURL, string(body))
	if err != nil {
		return nil, &NavigationError{URL: pageURL, Cause: err}
	}
	return p, nil
}

func hostFromURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	host := u.Host
	if host == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

var _ Navigator = (*StaticNavigator)(nil)
