package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/user/rera-scraper/internal/repository"
	"go.uber.org/zap"
)

var ErrRunInProgress = errors.New("a scrape run is already in progress")

// Pipeline runs the scraper and hands the records to the presenter and the
// file writer. Only one run may be in flight at a time.
type Pipeline struct {
	scraper    Scraper
	writer     repository.RecordWriter
	presenter  repository.RecordPresenter
	outputPath string
	logger     *zap.Logger
	mu         sync.Mutex
}

func NewPipeline(s Scraper, w repository.RecordWriter, p repository.RecordPresenter, outputPath string, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		scraper:    s,
		writer:     w,
		presenter:  p,
		outputPath: outputPath,
		logger:     logger,
	}
}

// Execute performs one run. The output file is written even when the run was
// interrupted, so it always reflects the records gathered.
func (p *Pipeline) Execute(ctx context.Context) (*RunResult, error) {
	if !p.mu.TryLock() {
		return nil, ErrRunInProgress
	}
	defer p.mu.Unlock()

	res, runErr := p.scraper.Run(ctx)

	p.presenter.Render(res.Records)

	if err := p.writer.Write(p.outputPath, res.Records); err != nil {
		return res, fmt.Errorf("failed to write %s: %w", p.outputPath, err)
	}
	p.presenter.Saved(p.outputPath)

	p.logger.Info("scrape run finished",
		zap.String("output", p.outputPath),
		zap.Int("records", res.Summary.Records),
		zap.Int("skipped_rows", res.Summary.SkippedRows),
		zap.Int("failures", res.Summary.Failures),
		zap.Duration("duration", res.Summary.FinishedAt.Sub(res.Summary.StartedAt)),
	)
	return res, runErr
}
