package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/akinankarali/upwork-job-api/internal/domain/job"
	"github.com/akinankarali/upwork-job-api/internal/scraper"
	"github.com/akinankarali/upwork-job-api/internal/search"

	"github.com/google/uuid"
)

type SearchUsecase interface {
	Search(ctx context.Context, raw RawParams) ([]job.Listing, error)
}

// SearchDeps wires a SearchService. Only Navigator is required.
type SearchDeps struct {
	Navigator scraper.Navigator
	Extractor *scraper.Extractor
	Cache     SearchCache
	CacheTTL  time.Duration
	Runs      RunRecorder
	Notifier  SearchNotifier
	Snapshots *scraper.SnapshotWriter
	Logger    *log.Logger
}

// SearchService compiles filters into a search URL, renders it and extracts
// the job tiles. It keeps no state between calls.
type SearchService struct {
	navigator scraper.Navigator
	extractor *scraper.Extractor
	cache     SearchCache
	cacheTTL  time.Duration
	runs      RunRecorder
	notifier  SearchNotifier
	snapshots *scraper.SnapshotWriter
	logger    *log.Logger
}

func NewSearchService(deps SearchDeps) *SearchService {
	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}
	ext := deps.Extractor
	if ext == nil {
		ext = scraper.NewExtractor(logger)
	}
	return &SearchService{
		navigator: deps.Navigator,
		extractor: ext,
		cache:     deps.Cache,
		cacheTTL:  deps.CacheTTL,
		runs:      deps.Runs,
		notifier:  deps.Notifier,
		snapshots: deps.Snapshots,
		logger:    logger,
	}
}

func (s *SearchService) Search(ctx context.Context, raw RawParams) ([]job.Listing, error) {
	if s == nil || s.navigator == nil {
		return nil, fmt.Errorf("%w: search service not configured", ErrInternal)
	}

	filters, err := ParseFilterSet(raw)
	if err != nil {
		return nil, err
	}

	searchURL := search.Compile(filters)
	s.logger.Printf("[Search] url=%s", searchURL)

	cacheKey := SearchCacheKey(searchURL)
	if s.cache != nil {
		var cached []job.Listing
		hit, err := s.cache.GetJSON(ctx, cacheKey, &cached)
		if err == nil && hit {
			s.logger.Printf("[Search] Cache HIT: %s", cacheKey)
			if cached == nil {
				cached = []job.Listing{}
			}
			return cached, nil
		}
		s.logger.Printf("[Search] Cache MISS: %s", cacheKey)
	}

	runID := s.startRun(ctx, searchURL, filters.Query())

	start := time.Now()
	page, err := s.navigator.Navigate(ctx, searchURL)
	if err != nil {
		s.logger.Printf("[Search] navigation failed url=%s err=%v", searchURL, err)
		s.finishRun(runID, RunStatusFailed, 0, 0)
		return nil, fmt.Errorf("%w: %w", ErrNavigation, err)
	}

	if s.snapshots != nil {
		if path, err := s.snapshots.Save(page); err != nil {
			s.logger.Printf("[Search] snapshot error url=%s err=%v", searchURL, err)
		} else if path != "" {
			s.logger.Printf("[Search] snapshot saved path=%s", path)
		}
	}

	batch := s.extractor.Extract(page.Document)
	s.logger.Printf("[Search] extracted listings=%d skipped=%d latency=%s", len(batch.Listings), len(batch.Failures), time.Since(start))

	for _, f := range batch.Failures {
		s.logRun(runID, "warn", f.Error())
	}
	s.finishRun(runID, RunStatusFinished, len(batch.Listings), len(batch.Failures))

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKey, batch.Listings, s.cacheTTL); err == nil {
			s.logger.Printf("[Search] Cache SET: %s", cacheKey)
		}
	}
	if s.notifier != nil {
		s.notifier.NotifySearchCompleted(filters.Query(), searchURL, len(batch.Listings), len(batch.Failures))
	}

	return batch.Listings, nil
}

func (s *SearchService) startRun(ctx context.Context, searchURL, query string) uuid.UUID {
	if s.runs == nil {
		return uuid.Nil
	}
	id, err := s.runs.StartRun(ctx, searchURL, query)
	if err != nil {
		s.logger.Printf("[Runs] start error url=%s err=%v", searchURL, err)
		return uuid.Nil
	}
	return id
}

// Run records outlive the request context so cancelled requests still
// leave a finished row behind.
func (s *SearchService) logRun(runID uuid.UUID, level, message string) {
	if s.runs == nil || runID == uuid.Nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.runs.LogRun(ctx, runID, level, message); err != nil {
		s.logger.Printf("[Runs] log error run_id=%s err=%v", runID, err)
	}
}

func (s *SearchService) finishRun(runID uuid.UUID, status string, listings, skipped int) {
	if s.runs == nil || runID == uuid.Nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.runs.FinishRun(ctx, runID, status, listings, skipped); err != nil {
		s.logger.Printf("[Runs] finish error run_id=%s err=%v", runID, err)
	}
}

var _ SearchUsecase = (*SearchService)(nil)
