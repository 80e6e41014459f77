package entity

import "time"

const (
	PageKindList   = "list"
	PageKindDetail = "detail"
)

// FetchFailure mirrors the `fetch_failures` PostgreSQL table schema.
type FetchFailure struct {
	ID             int64     `json:"id"`
	URL            string    `json:"url"`
	Kind           string    `json:"kind"` // "list" or "detail"
	Reason         string    `json:"reason"`
	HTTPStatusCode int       `json:"http_status_code,omitempty"`
	AttemptedAt    time.Time `json:"attempted_at"`
}
