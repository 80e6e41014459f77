package chromedp_fetcher

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/user/rera-scraper/internal/repository"
	"github.com/user/rera-scraper/pkg/proxy"
	"go.uber.org/zap"
)

// ChromedpFetcher renders pages in headless Chrome before parsing them.
// Use it when the registry serves the listing table from JavaScript.
type ChromedpFetcher struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	timeout     time.Duration
	logger      *zap.Logger
	once        sync.Once
}

// NewChromedpFetcher creates a fetcher backed by a single browser allocator.
func NewChromedpFetcher(pageLoadTimeout time.Duration, agents *proxy.Manager, logger *zap.Logger) *ChromedpFetcher {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if ua := agents.GetUserAgent(); ua != "" {
		opts = append(opts, chromedp.UserAgent(ua))
	}
	if p := agents.GetProxy(); p != "" {
		opts = append(opts, chromedp.ProxyServer(p))
	}
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &ChromedpFetcher{
		allocCtx:    allocCtx,
		allocCancel: cancel,
		timeout:     pageLoadTimeout,
		logger:      logger,
	}
}

// Fetch navigates to url, waits for the body and parses the rendered HTML.
func (c *ChromedpFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	taskCtx, cancel := chromedp.NewContext(c.allocCtx)
	defer cancel()

	taskCtx, cancelTimeout := context.WithTimeout(taskCtx, c.timeout)
	defer cancelTimeout()

	// Propagate caller cancellation into the browser tab.
	stop := context.AfterFunc(ctx, cancelTimeout)
	defer stop()

	resp, err := chromedp.RunResponse(taskCtx, chromedp.Navigate(url))
	if err != nil {
		err = fmt.Errorf("%w: %s: %w", repository.ErrFetchFailed, url, err)
		c.logger.Warn("error fetching page", zap.String("url", url), zap.Error(err))
		return nil, err
	}
	if err := checkStatus(resp); err != nil {
		err = fmt.Errorf("%w: %s: %w", repository.ErrFetchFailed, url, err)
		c.logger.Warn("error fetching page", zap.String("url", url), zap.Int64("status", resp.Status), zap.Error(err))
		return nil, err
	}

	var html string
	err = chromedp.Run(taskCtx,
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		err = fmt.Errorf("%w: %s: %w", repository.ErrFetchFailed, url, err)
		c.logger.Warn("error fetching page", zap.String("url", url), zap.Error(err))
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		err = fmt.Errorf("%w: %s: %w", repository.ErrParseFailed, url, err)
		c.logger.Warn("error parsing page", zap.String("url", url), zap.Error(err))
		return nil, err
	}
	return doc, nil
}

// checkStatus rejects non-2xx main document responses. A nil response
// (e.g. a data: URL) carries no status and is accepted.
func checkStatus(resp *network.Response) error {
	if resp == nil || (resp.Status >= 200 && resp.Status < 300) {
		return nil
	}
	return &repository.StatusError{StatusCode: int(resp.Status)}
}

// Close shuts down the browser allocator.
func (c *ChromedpFetcher) Close() {
	c.once.Do(c.allocCancel)
}
