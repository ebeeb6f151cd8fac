package httpapi

import (
	"context"
	"sync/atomic"

	"immojobs-engine/internal/collect"
	"immojobs-engine/internal/config"
	"immojobs-engine/internal/domain"
	"immojobs-engine/internal/events"
	"immojobs-engine/internal/scrape"
)

type Deps struct {
	Col *collect.Collector
	Hub *events.Hub

	// Atomic stores
	CfgVal       *atomic.Value // stores config.Config
	ScrapeStatus *atomic.Value // stores types.Status

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Scrape entrypoint (inject for testability)
	RunScrape func(ctx context.Context, cfg config.Config, onNewJob func(domain.Job)) (scrape.Result, error)
}
