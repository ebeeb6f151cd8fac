// Package report renders the post-run text summary.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"immojobs-engine/internal/domain"
)

const topKeywords = 15

// minKeywordLen skips short glue words in the keyword tally.
const minKeywordLen = 4

// Write renders a human-readable scrape summary: totals, per-source
// breakdown and the most common title keywords.
func Write(w io.Writer, jobs []domain.Job, runtime time.Duration) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Job Scraping Report - %s\n", time.Now().Format("2006-01-02 15:04:05"))
	b.WriteString("==========================================================\n\n")
	fmt.Fprintf(&b, "Total jobs collected: %d\n", len(jobs))

	b.WriteString("\nJobs by source:\n")
	for _, sc := range sourceCounts(jobs) {
		fmt.Fprintf(&b, "  - %s: %d jobs\n", sc.name, sc.count)
	}

	b.WriteString("\nMost common keywords in job titles:\n")
	for _, kc := range topTitleKeywords(jobs, topKeywords) {
		fmt.Fprintf(&b, "  - %s: %d occurrences\n", kc.name, kc.count)
	}

	fmt.Fprintf(&b, "\nTotal runtime: %.2f seconds\n", runtime.Seconds())

	_, err := io.WriteString(w, b.String())
	return err
}

type counted struct {
	name  string
	count int
}

func sourceCounts(jobs []domain.Job) []counted {
	m := map[string]int{}
	for _, j := range jobs {
		src := j.Source
		if src == "" {
			src = "Unknown"
		}
		m[src]++
	}
	return sortCounts(m, 0)
}

func topTitleKeywords(jobs []domain.Job, n int) []counted {
	m := map[string]int{}
	for _, j := range jobs {
		for _, word := range strings.Fields(strings.ToLower(j.Title)) {
			if utf8.RuneCountInString(word) < minKeywordLen {
				continue
			}
			m[word]++
		}
	}
	return sortCounts(m, n)
}

// sortCounts orders by count desc then name for stable output; n > 0
// caps the result.
func sortCounts(m map[string]int, n int) []counted {
	out := make([]counted, 0, len(m))
	for k, v := range m {
		out = append(out, counted{k, v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].name < out[j].name
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
