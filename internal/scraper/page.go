package scraper

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Navigator loads a URL and returns the rendered document. Implementations
// own the browser session for the duration of a single call.
type Navigator interface {
	Navigate(ctx context.Context, url string) (*Page, error)
}

// Page is a rendered results page.
type Page struct {
	URL      string
	HTML     string
	Document *goquery.Document
}

func NewPage(url string, html string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Page{URL: url, HTML: html, Document: doc}, nil
}

// NavigationError reports a page that could not be loaded.
type NavigationError struct {
	URL   string
	Cause error
}

func (e *NavigationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return fmt.Sprintf("navigate %s: %v", e.URL, e.Cause)
	}
	return fmt.Sprintf("navigate %s", e.URL)
}

func (e *NavigationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}
