package entity

import "time"

// RunSummary counts what happened during one scrape run.
type RunSummary struct {
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	RowsSeen    int       `json:"rows_seen"`
	Records     int       `json:"records"`
	SkippedRows int       `json:"skipped_rows"`
	Failures    int       `json:"failures"`
}
