// Package scrape orchestrates a full collection run across the enabled
// job sites.
package scrape

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"immojobs-engine/internal/collect"
	"immojobs-engine/internal/config"
	"immojobs-engine/internal/domain"
	"immojobs-engine/internal/report"
	"immojobs-engine/internal/scrape/apec"
	"immojobs-engine/internal/scrape/client"
	"immojobs-engine/internal/scrape/indeed"
	"immojobs-engine/internal/scrape/linkedin"
	"immojobs-engine/internal/scrape/types"
	"immojobs-engine/internal/scrape/wttj"
	"immojobs-engine/internal/store"
)

// linkedInExtraTerms always run after the primary English query.
var linkedInExtraTerms = []string{
	"property management",
	"asset management",
	"real estate investment",
	"property development",
	"immobilier paris",
	"gestion immobilière",
}

// wttjExtraTerms run after the French and English queries; the combined
// extras list is capped to keep the single-page site from dominating
// the runtime budget.
var wttjExtraTerms = []string{
	"immobilier transaction",
	"immobilier développement",
	"property management paris",
	"asset management immobilier",
	"real estate investment paris",
}

const wttjMaxExtraTerms = 3

// reportThreshold triggers a summary even when reporting is off.
const reportThreshold = 50

// Result summarizes one completed (or interrupted) run.
type Result struct {
	Added       int           `json:"added"`
	Removed     int           `json:"removed"`
	Interrupted bool          `json:"interrupted"`
	Runtime     time.Duration `json:"-"`
	OutputPath  string        `json:"output_path,omitempty"`
}

// Runner walks the enabled sites in a fixed order on a single worker,
// feeding every extracted record through the collector's gate.
type Runner struct {
	cfg      config.Config
	col      *collect.Collector
	onNewJob func(domain.Job)
}

// NewRunner builds a runner. onNewJob may be nil; it fires once per
// accepted record.
func NewRunner(cfg config.Config, col *collect.Collector, onNewJob func(domain.Job)) *Runner {
	return &Runner{cfg: cfg, col: col, onNewJob: onNewJob}
}

type sitePlan struct {
	enabled bool
	fetcher types.Fetcher
	queries []types.Query
}

// Run executes the full plan: failsafe recovery, sequential site
// sweeps with a checkpoint after each, the final dedup pass and the
// atomic save. Cancellation between query units leaves a snapshot on
// disk and keeps the failsafe for the next run.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	start := time.Now()

	if budget := r.cfg.MaxRuntime(); budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, budget)
		defer cancel()
	}

	dataDir := r.cfg.App.DataDir
	failsafe := store.FailsafePath(dataDir, r.cfg.Output.Filename)

	if r.col.Len() == 0 {
		prev, err := store.LoadJSON[domain.Job](failsafe)
		switch {
		case err != nil:
			log.Printf("[scrape] failsafe load: %v", err)
		case len(prev) > 0:
			r.col.Seed(prev)
			log.Printf("[scrape] recovered %d jobs from %s", len(prev), filepath.Base(failsafe))
		}
	}
	before := r.col.Len()

	hc := client.New(client.Config{
		Timeout:           r.cfg.RequestTimeout(),
		RequestsPerSecond: r.cfg.Scraper.RequestsPerSecond,
		Burst:             r.cfg.Scraper.Burst,
		MaxRetries:        r.cfg.Scraper.MaxRetries,
	})

	interrupted := false
	for _, plan := range r.plans(hc) {
		if !plan.enabled {
			continue
		}
		if ctx.Err() != nil {
			interrupted = true
			break
		}

		log.Printf("[scrape] %s: %d queries", plan.fetcher.Name(), len(plan.queries))
		for _, q := range plan.queries {
			if ctx.Err() != nil {
				interrupted = true
				break
			}
			jobs, err := plan.fetcher.Fetch(ctx, q)
			if err != nil {
				// Best effort per query; a blocked site must not
				// sink the whole run.
				log.Printf("[scrape] %s %q: %v", plan.fetcher.Name(), q.Term, err)
				continue
			}
			for _, j := range jobs {
				if r.col.Add(j) == collect.Accepted && r.onNewJob != nil {
					r.onNewJob(j)
				}
			}
		}

		if err := store.SaveJSON(failsafe, r.col.Snapshot()); err != nil {
			log.Printf("[scrape] failsafe save: %v", err)
		}
	}

	if interrupted || ctx.Err() != nil {
		if path, err := store.SaveInterrupted(dataDir, r.col.Snapshot()); err != nil {
			log.Printf("[scrape] interrupted snapshot: %v", err)
		} else {
			log.Printf("[scrape] run interrupted, snapshot at %s", filepath.Base(path))
		}
		return Result{
			Added:       r.col.Len() - before,
			Interrupted: true,
			Runtime:     time.Since(start),
		}, nil
	}

	removed := r.col.Finalize()
	if removed > 0 {
		log.Printf("[scrape] removed %d duplicate jobs", removed)
	}

	jobs := r.col.Snapshot()
	outPath := filepath.Join(dataDir, r.cfg.Output.Filename)
	if err := store.SaveJSON(outPath, jobs); err != nil {
		return Result{Runtime: time.Since(start)}, fmt.Errorf("save output: %w", err)
	}

	if err := os.Remove(failsafe); err != nil && !os.IsNotExist(err) {
		log.Printf("[scrape] failsafe remove: %v", err)
	}
	store.CleanupInterrupted(dataDir)

	res := Result{
		Added:      r.col.Len() - before,
		Removed:    removed,
		Runtime:    time.Since(start),
		OutputPath: outPath,
	}

	if r.cfg.Output.Report || len(jobs) > reportThreshold {
		if err := r.writeReport(dataDir, jobs, res.Runtime); err != nil {
			log.Printf("[scrape] report: %v", err)
		}
	}

	log.Printf("[scrape] done added=%d removed=%d total=%d runtime=%.1fs",
		res.Added, res.Removed, len(jobs), res.Runtime.Seconds())
	return res, nil
}

// plans builds the fixed site order with each site's query list.
func (r *Runner) plans(hc *client.Client) []sitePlan {
	loc := r.cfg.Queries.Location
	if loc == "" {
		loc = "Paris"
	}
	fr := types.Query{Term: r.cfg.Queries.French, Location: loc}
	en := types.Query{Term: r.cfg.Queries.English, Location: loc}

	liQueries := []types.Query{en}
	for _, term := range append(append([]string{}, linkedInExtraTerms...), r.cfg.Queries.AdditionalTerms...) {
		liQueries = append(liQueries, types.Query{Term: term, Location: loc})
	}

	wtExtras := append(append([]string{}, wttjExtraTerms...), r.cfg.Queries.AdditionalTerms...)
	if len(wtExtras) > wttjMaxExtraTerms {
		wtExtras = wtExtras[:wttjMaxExtraTerms]
	}
	wtQueries := []types.Query{fr, en}
	for _, term := range wtExtras {
		wtQueries = append(wtQueries, types.Query{Term: term, Location: loc})
	}

	return []sitePlan{
		{
			enabled: r.cfg.Sites.Indeed,
			fetcher: indeed.New(indeed.Config{
				MaxPages:   r.cfg.Scraper.MaxPages,
				DateFilter: r.cfg.Scraper.DateFilter,
			}, hc),
			queries: []types.Query{fr},
		},
		{
			enabled: r.cfg.Sites.APEC,
			fetcher: apec.New(hc),
			queries: []types.Query{fr},
		},
		{
			enabled: r.cfg.Sites.LinkedIn,
			fetcher: linkedin.New(linkedin.Config{
				MaxPages:   r.cfg.Scraper.MaxPages,
				DateFilter: r.cfg.Scraper.DateFilter,
			}, hc),
			queries: liQueries,
		},
		{
			enabled: r.cfg.Sites.WTTJ,
			fetcher: wttj.New(hc),
			queries: wtQueries,
		},
	}
}

func (r *Runner) writeReport(dataDir string, jobs []domain.Job, runtime time.Duration) error {
	base := strings.TrimSuffix(r.cfg.Output.Filename, filepath.Ext(r.cfg.Output.Filename))
	path := filepath.Join(dataDir, "report_"+base+".txt")

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := report.Write(f, jobs, runtime); err != nil {
		return err
	}
	log.Printf("[scrape] report written to %s", filepath.Base(path))
	return nil
}
