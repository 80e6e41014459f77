package resty_fetcher

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/user/rera-scraper/internal/repository"
	"github.com/user/rera-scraper/pkg/proxy"
	"go.uber.org/zap"
)

// RestyFetcher fetches pages over plain HTTP and parses them with goquery.
type RestyFetcher struct {
	client *resty.Client
	agents *proxy.Manager
	logger *zap.Logger
}

// NewRestyFetcher creates a fetcher with a fixed request timeout. When the
// manager has proxies configured the first one is used for every request.
func NewRestyFetcher(timeout time.Duration, agents *proxy.Manager, logger *zap.Logger) *RestyFetcher {
	client := resty.New()
	client.SetTimeout(timeout)
	if p := agents.GetProxy(); p != "" {
		client.SetProxy(p)
	}

	return &RestyFetcher{
		client: client,
		agents: agents,
		logger: logger,
	}
}

// Fetch issues a GET and parses the body. Transport errors and non-2xx
// statuses are logged and returned; the caller treats them as "no page".
func (f *RestyFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	req := f.client.R().SetContext(ctx)
	if ua := f.agents.GetUserAgent(); ua != "" {
		req.SetHeader("User-Agent", ua)
	}

	res, err := req.Get(url)
	if err != nil {
		err = fmt.Errorf("%w: %s: %w", repository.ErrFetchFailed, url, err)
		f.logger.Warn("error fetching page", zap.String("url", url), zap.Error(err))
		return nil, err
	}

	if !res.IsSuccess() {
		err = fmt.Errorf("%w: %s: %w", repository.ErrFetchFailed, url, &repository.StatusError{StatusCode: res.StatusCode()})
		f.logger.Warn("error fetching page", zap.String("url", url), zap.Int("status", res.StatusCode()), zap.Error(err))
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		err = fmt.Errorf("%w: %s: %w", repository.ErrParseFailed, url, err)
		f.logger.Warn("error parsing page", zap.String("url", url), zap.Error(err))
		return nil, err
	}

	return doc, nil
}
