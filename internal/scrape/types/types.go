package types

import (
	"context"

	"immojobs-engine/internal/domain"
)

// Query is one search unit handed to a site scraper.
type Query struct {
	Term     string
	Location string
}

// Fetcher is implemented by each job site scraper. Fetch returns raw
// extracted records; relevance and dedup gating happen in the runner.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, q Query) ([]domain.Job, error)
}

// Status mirrors the last scrape run for the UI.
type Status struct {
	LastRunAt   string `json:"last_run_at"`
	LastOkAt    string `json:"last_ok_at"`
	LastError   string `json:"last_error"`
	LastAdded   int    `json:"last_added"`
	LastRemoved int    `json:"last_removed"`
	Running     bool   `json:"running"`
}
