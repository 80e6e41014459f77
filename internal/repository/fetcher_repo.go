package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

var (
	ErrFetchFailed = errors.New("fetch failed")
	ErrParseFailed = errors.New("failed to parse page")
)

// StatusError reports a non-success HTTP status.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d", e.StatusCode)
}

// PageFetcher defines the contract for retrieving a page as a document tree.
type PageFetcher interface {
	// Fetch returns the parsed page, or an error meaning there is no result.
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}
