package scraper

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/akinankarali/upwork-job-api/internal/domain/job"

	"github.com/PuerkitoBio/goquery"
)

const SiteOrigin = "https://www.upwork.com"

// Markers identifying the parts of a job tile.
const (
	CardSelector        = "article[data-test='JobTile']"
	TitleLinkSelector   = "a[data-test*='job-tile-title-link']"
	DescriptionSelector = "div[data-test='UpCLineClamp JobDescription']"
	RateSelector        = "li[data-test='job-type-label']"
	ExperienceSelector  = "li[data-test='experience-level']"
	DurationSelector    = "li[data-test='duration-label']"
	TagSelector         = "div[data-test='TokenClamp JobAttrs'] span"
)

var (
	errMissingTitleLink = errors.New("missing title link")
	errEmptyTitle       = errors.New("empty title")
	errMissingHref      = errors.New("missing href")
)

// CardError is a single card that could not be turned into a listing.
type CardError struct {
	Index int
	Cause error
}

func (e *CardError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("card %d: %v", e.Index, e.Cause)
}

func (e *CardError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Batch holds the listings of one page in document order. Failures lists
// the cards that were skipped.
type Batch struct {
	Listings []job.Listing
	Failures []*CardError
}

type cardResult struct {
	listing job.Listing
	err     *CardError
}

type Extractor struct {
	origin *url.URL
	logger *log.Logger
}

func NewExtractor(logger *log.Logger) *Extractor {
	origin, _ := url.Parse(SiteOrigin)
	if logger == nil {
		logger = log.Default()
	}
	return &Extractor{origin: origin, logger: logger}
}

// Extract turns every job tile in doc into a listing. A card that fails
// is logged and dropped; it never affects the other cards.
func (e *Extractor) Extract(doc *goquery.Document) Batch {
	out := Batch{Listings: []job.Listing{}}
	if doc == nil {
		return out
	}

	cards := doc.Find(CardSelector)
	results := make([]cardResult, 0, cards.Length())
	cards.Each(func(i int, card *goquery.Selection) {
		results = append(results, e.extractCard(i, card))
	})

	for _, r := range results {
		if r.err != nil {
			if e.logger != nil {
				e.logger.Printf("[Extractor] card skipped index=%d err=%v", r.err.Index, r.err.Cause)
			}
			out.Failures = append(out.Failures, r.err)
			continue
		}
		out.Listings = append(out.Listings, r.listing)
	}
	return out
}

func (e *Extractor) extractCard(idx int, card *goquery.Selection) (res cardResult) {
	defer func() {
		if r := recover(); r != nil {
			res = cardResult{err: &CardError{Index: idx, Cause: fmt.Errorf("panic: %v", r)}}
		}
	}()

	link := card.Find(TitleLinkSelector).First()
	if link.Length() == 0 {
		return cardResult{err: &CardError{Index: idx, Cause: errMissingTitleLink}}
	}
	title := strings.TrimSpace(link.Text())
	if title == "" {
		return cardResult{err: &CardError{Index: idx, Cause: errEmptyTitle}}
	}
	href, ok := link.Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return cardResult{err: &CardError{Index: idx, Cause: errMissingHref}}
	}
	abs, err := e.resolve(href)
	if err != nil {
		return cardResult{err: &CardError{Index: idx, Cause: err}}
	}

	return cardResult{listing: job.Listing{
		Title:       title,
		URL:         abs,
		Description: optionalText(card, DescriptionSelector),
		Rate:        optionalText(card, RateSelector),
		Experience:  optionalText(card, ExperienceSelector),
		Duration:    optionalText(card, DurationSelector),
		Tags:        allText(card, TagSelector),
	}}
}

func (e *Extractor) resolve(href string) (string, error) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", fmt.Errorf("invalid href %q: %w", href, err)
	}
	return e.origin.ResolveReference(ref).String(), nil
}

func optionalText(card *goquery.Selection, selector string) string {
	sel := card.Find(selector).First()
	if sel.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(sel.Text())
}

func allText(card *goquery.Selection, selector string) []string {
	out := []string{}
	card.Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, strings.TrimSpace(s.Text()))
	})
	return out
}
