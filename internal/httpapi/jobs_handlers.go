package httpapi

import (
	"net/http"
	"strings"
	"time"

	"immojobs-engine/internal/collect"
	"immojobs-engine/internal/domain"
	"immojobs-engine/internal/store"
)

type JobsHandler struct {
	Col *collect.Collector
}

// List returns the collection, optionally filtered by free text (q),
// source, and scrape-date window (since).
func (h JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	jobs := filterJobs(h.Col.Snapshot(), q.Get("q"), q.Get("source"), q.Get("since"))
	writeJSON(w, map[string]any{
		"jobs":  jobs,
		"total": len(jobs),
		"stats": h.Col.Stats(),
	})
}

// Export streams the collection as JSON (default) or CSV.
func (h JobsHandler) Export(w http.ResponseWriter, r *http.Request) {
	jobs := h.Col.Snapshot()

	switch r.URL.Query().Get("format") {
	case "", "json":
		w.Header().Set("Content-Disposition", `attachment; filename="jobs.json"`)
		writeJSON(w, jobs)
	case "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="jobs.csv"`)
		if err := store.WriteCSV(w, jobs); err != nil {
			http.Error(w, err.Error(), 500)
		}
	default:
		WriteError(w, r, http.StatusBadRequest, "bad_format", "format must be json or csv")
	}
}

// sinceWindows maps the since query param to a lookback window; the
// values mirror the scraper's date_filter setting.
var sinceWindows = map[string]time.Duration{
	"1day":   24 * time.Hour,
	"1week":  7 * 24 * time.Hour,
	"2weeks": 14 * 24 * time.Hour,
	"1month": 30 * 24 * time.Hour,
}

func filterJobs(jobs []domain.Job, text, source, since string) []domain.Job {
	var cutoff time.Time
	if d, ok := sinceWindows[since]; ok {
		cutoff = time.Now().Add(-d)
	}
	if text == "" && source == "" && cutoff.IsZero() {
		return jobs
	}
	text = strings.ToLower(text)

	out := make([]domain.Job, 0, len(jobs))
	for _, j := range jobs {
		if source != "" && !strings.EqualFold(j.Source, source) {
			continue
		}
		if text != "" && !matchesText(j, text) {
			continue
		}
		if !cutoff.IsZero() && !scrapedSince(j, cutoff) {
			continue
		}
		out = append(out, j)
	}
	return out
}

// scrapedSince keeps records whose date cannot be parsed; hiding them
// would make them unreachable from the shell.
func scrapedSince(j domain.Job, cutoff time.Time) bool {
	d, err := time.Parse("2006-01-02", j.ScrapedDate)
	if err != nil {
		return true
	}
	return !d.Before(cutoff)
}

func matchesText(j domain.Job, text string) bool {
	return strings.Contains(strings.ToLower(j.Title), text) ||
		strings.Contains(strings.ToLower(j.Company), text) ||
		strings.Contains(strings.ToLower(j.Location), text) ||
		strings.Contains(strings.ToLower(j.Description), text)
}
