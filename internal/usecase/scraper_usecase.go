package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/user/rera-scraper/internal/entity"
	"github.com/user/rera-scraper/internal/extractor"
	"github.com/user/rera-scraper/internal/repository"
	"github.com/user/rera-scraper/pkg/metrics"
	"github.com/user/rera-scraper/pkg/utils"
	"go.uber.org/zap"
)

// Scraper defines the interface for one listing-to-records pipeline run.
type Scraper interface {
	Run(ctx context.Context) (*RunResult, error)
}

// RunResult holds the records of a run in listing order.
type RunResult struct {
	Records []entity.ProjectRecord `json:"records"`
	Summary entity.RunSummary      `json:"summary"`
}

// Settings are the fixed parameters of a run.
type Settings struct {
	BaseURL  string
	ListURL  string
	Delay    time.Duration
	CacheTTL time.Duration
}

// SleepFunc pauses between detail lookups. It returns early with the
// context's error when ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Option configures optional collaborators of the scraper.
type Option func(*scraperUseCase)

// WithProjectRepository persists each run's records.
func WithProjectRepository(r repository.ProjectRepository) Option {
	return func(uc *scraperUseCase) { uc.projectRepo = r }
}

// WithFailureRepository records pages that could not be fetched.
func WithFailureRepository(r repository.FailureRepository) Option {
	return func(uc *scraperUseCase) { uc.failureRepo = r }
}

// WithDetailCache skips fetching detail pages extracted within the cache TTL.
func WithDetailCache(c repository.DetailCache) Option {
	return func(uc *scraperUseCase) { uc.cache = c }
}

// WithSleep replaces the pause between records.
func WithSleep(fn SleepFunc) Option {
	return func(uc *scraperUseCase) { uc.sleep = fn }
}

type scraperUseCase struct {
	fetcher     repository.PageFetcher
	listing     *extractor.ListingParser
	detail      *extractor.DetailExtractor
	projectRepo repository.ProjectRepository
	failureRepo repository.FailureRepository
	cache       repository.DetailCache
	metrics     *metrics.Metrics
	logger      *zap.Logger
	settings    Settings
	sleep       SleepFunc
}

// NewScraperUseCase creates a new instance of the scraper use case.
func NewScraperUseCase(
	fetcher repository.PageFetcher,
	listing *extractor.ListingParser,
	detail *extractor.DetailExtractor,
	m *metrics.Metrics,
	logger *zap.Logger,
	settings Settings,
	opts ...Option,
) Scraper {
	uc := &scraperUseCase{
		fetcher:  fetcher,
		listing:  listing,
		detail:   detail,
		metrics:  m,
		logger:   logger,
		settings: settings,
		sleep:    sleepContext,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Run fetches the listing page and one detail page per eligible row. Fetch,
// parse and row failures are logged and absorbed; the only error returned is
// the context's, together with the records gathered so far.
func (uc *scraperUseCase) Run(ctx context.Context) (*RunResult, error) {
	result := &RunResult{Records: []entity.ProjectRecord{}}
	result.Summary.StartedAt = time.Now()
	defer func() {
		result.Summary.FinishedAt = time.Now()
		result.Summary.Records = len(result.Records)
	}()

	doc, err := uc.fetch(ctx, entity.PageKindList, uc.settings.ListURL, &result.Summary)
	if err != nil {
		uc.logger.Error("failed to fetch project list page", zap.String("url", uc.settings.ListURL))
		return result, ctx.Err()
	}

	entries, err := uc.listing.Parse(doc)
	if err != nil {
		uc.logger.Error("project table not found", zap.String("url", uc.settings.ListURL), zap.Error(err))
		return result, nil
	}

	for _, entry := range entries {
		result.Summary.RowsSeen++

		switch entry.Skip {
		case extractor.SkipTooFewColumns:
			uc.metrics.IncSkipped(string(entry.Skip))
			result.Summary.SkippedRows++
			continue
		case extractor.SkipMissingLink:
			uc.logger.Info("no details link found for project", zap.String("project", entry.Row.ProjectName))
			uc.metrics.IncSkipped(string(entry.Skip))
			result.Summary.SkippedRows++
			continue
		}

		detailURL := utils.JoinOrigin(uc.settings.BaseURL, entry.Row.DetailLink)
		details := uc.extractDetails(ctx, detailURL, &result.Summary)

		record := entity.NewProjectRecord(entry.Row, details)
		uc.countMissing(details)
		result.Records = append(result.Records, record)
		uc.metrics.RecordsScrapedTotal.Inc()

		if err := uc.sleep(ctx, uc.settings.Delay); err != nil {
			uc.logger.Warn("scrape run interrupted", zap.Int("records", len(result.Records)), zap.Error(err))
			return result, err
		}
	}

	uc.persist(ctx, result.Records)
	return result, nil
}

// extractDetails returns empty details when the page cannot be fetched or parsed.
func (uc *scraperUseCase) extractDetails(ctx context.Context, detailURL string, summary *entity.RunSummary) entity.PromoterDetails {
	if uc.cache != nil {
		cached, hit, err := uc.cache.Get(ctx, detailURL)
		if err != nil {
			uc.logger.Warn("detail cache lookup failed", zap.String("url", detailURL), zap.Error(err))
		}
		if hit {
			uc.metrics.ObserveFetch(entity.PageKindDetail, "cached", 0)
			uc.reportOverlaps(detailURL, *cached)
			return *cached
		}
	}

	doc, err := uc.fetch(ctx, entity.PageKindDetail, detailURL, summary)
	if err != nil {
		return entity.PromoterDetails{}
	}

	details, err := uc.detail.Extract(doc)
	switch {
	case errors.Is(err, extractor.ErrContainerNotFound):
		uc.logger.Debug("detail container not found", zap.String("url", detailURL))
		return details
	case err != nil:
		uc.logger.Error("error extracting details", zap.String("url", detailURL), zap.Error(err))
		return details
	}

	uc.reportOverlaps(detailURL, details)

	if uc.cache != nil {
		if err := uc.cache.Put(ctx, detailURL, &details, uc.settings.CacheTTL); err != nil {
			uc.logger.Warn("failed to cache details", zap.String("url", detailURL), zap.Error(err))
		}
	}
	return details
}

// reportOverlaps runs for fresh and cached details alike.
func (uc *scraperUseCase) reportOverlaps(detailURL string, d entity.PromoterDetails) {
	if len(d.Overlaps) == 0 {
		return
	}
	uc.logger.Warn("element matched more than one label family",
		zap.String("url", detailURL), zap.Strings("overlaps", d.Overlaps))
	uc.metrics.LabelOverlapsTotal.Add(float64(len(d.Overlaps)))
}

func (uc *scraperUseCase) fetch(ctx context.Context, kind, url string, summary *entity.RunSummary) (*goquery.Document, error) {
	start := time.Now()
	doc, err := uc.fetcher.Fetch(ctx, url)
	seconds := time.Since(start).Seconds()

	if err != nil {
		uc.metrics.ObserveFetch(kind, "failure", seconds)
		summary.Failures++
		uc.recordFailure(ctx, kind, url, err)
		return nil, err
	}

	uc.metrics.ObserveFetch(kind, "success", seconds)
	return doc, nil
}

func (uc *scraperUseCase) recordFailure(ctx context.Context, kind, url string, fetchErr error) {
	if uc.failureRepo == nil {
		return
	}

	failure := &entity.FetchFailure{
		URL:         url,
		Kind:        kind,
		Reason:      fetchErr.Error(),
		AttemptedAt: time.Now(),
	}
	var statusErr *repository.StatusError
	if errors.As(fetchErr, &statusErr) {
		failure.HTTPStatusCode = statusErr.StatusCode
	}

	if err := uc.failureRepo.Save(ctx, failure); err != nil {
		// This is not a critical error, just log it.
		uc.logger.Warn("failed to record fetch failure", zap.String("url", url), zap.Error(err))
	}
}

func (uc *scraperUseCase) countMissing(d entity.PromoterDetails) {
	if d.Name == "" {
		uc.metrics.IncMissing(string(extractor.FieldPromoterName))
	}
	if d.Address == "" {
		uc.metrics.IncMissing(string(extractor.FieldAddress))
	}
	if d.GSTNumber == "" {
		uc.metrics.IncMissing(string(extractor.FieldGSTNumber))
	}
}

func (uc *scraperUseCase) persist(ctx context.Context, records []entity.ProjectRecord) {
	if uc.projectRepo == nil || len(records) == 0 {
		return
	}
	if err := uc.projectRepo.SaveAll(ctx, records); err != nil {
		uc.logger.Error("failed to save project records", zap.Int("records", len(records)), zap.Error(err))
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
