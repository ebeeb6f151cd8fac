// Package collect owns the in-memory job collection. Exactly one
// producer (the scrape worker) appends; HTTP handlers read snapshots.
package collect

import (
	"sync"

	"immojobs-engine/internal/classify"
	"immojobs-engine/internal/dedup"
	"immojobs-engine/internal/domain"
)

// Reason explains why Add rejected a record.
type Reason string

const (
	Accepted    Reason = ""
	NotRelevant Reason = "not_relevant"
	Duplicate   Reason = "duplicate"
)

// Stats counts the outcome of every Add call.
type Stats struct {
	Accepted    int `json:"accepted"`
	NotRelevant int `json:"not_relevant"`
	Duplicates  int `json:"duplicates"`
}

// Collector appends records that pass the classifier then the
// deduplicator, preserving insertion order. The mutex only protects
// readers taking snapshots mid-run; writes come from a single worker.
type Collector struct {
	mu         sync.Mutex
	classifier *classify.Classifier
	stopWords  []string
	jobs       []domain.Job
	stats      Stats
}

func New(c *classify.Classifier, stopWords []string) *Collector {
	return &Collector{classifier: c, stopWords: stopWords}
}

// Seed preloads previously collected jobs (failsafe recovery) without
// re-running them through the gate.
func (c *Collector) Seed(jobs []domain.Job) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.jobs = append(c.jobs, jobs...)
}

// Add gates job through classify-then-dedup and appends it on success.
func (c *Collector) Add(job domain.Job) Reason {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.classifier.IsRelevant(job.Title, job.Description) {
		c.stats.NotRelevant++
		return NotRelevant
	}
	if dedup.IsDuplicate(job, c.jobs) {
		c.stats.Duplicates++
		return Duplicate
	}

	c.jobs = append(c.jobs, job)
	c.stats.Accepted++
	return Accepted
}

// Finalize runs the end-of-run dedup pass in place and returns how
// many records it removed.
func (c *Collector) Finalize() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	before := len(c.jobs)
	c.jobs = dedup.Finalize(c.jobs, c.stopWords)
	return before - len(c.jobs)
}

// Snapshot returns a copy of the collection in insertion order.
func (c *Collector) Snapshot() []domain.Job {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.Job, len(c.jobs))
	copy(out, c.jobs)
	return out
}

// Len reports the current number of collected jobs.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.jobs)
}

// Stats returns a copy of the running counters.
func (c *Collector) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Enrich attaches a salary estimate to the job at index i if it still
// exists. Identity fields are never touched.
func (c *Collector) Enrich(i int, salary, fee float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i < 0 || i >= len(c.jobs) {
		return false
	}
	c.jobs[i].EstimatedSalary = salary
	c.jobs[i].EstimatedFee = fee
	return true
}
