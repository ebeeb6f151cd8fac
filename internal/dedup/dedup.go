// Package dedup implements the two duplicate checks: a per-insertion
// fuzzy match against everything collected so far, and a coarser
// end-of-run rebuild keyed on a stop-word-stripped title. They use
// different normalizations and can disagree on edge cases; both run.
package dedup

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"immojobs-engine/internal/domain"
)

// jaccardThreshold is the similarity above which two titles at the
// same company are considered the same posting.
const jaccardThreshold = 0.8

// IsDuplicate reports whether candidate duplicates a record already in
// existing. A missing or "unknown" title is rejected as a duplicate
// outright. The scan is O(n) per candidate; collection sizes are a few
// hundred records, so no index is kept.
func IsDuplicate(candidate domain.Job, existing []domain.Job) bool {
	title := strings.ToLower(candidate.Title)
	company := strings.ToLower(candidate.Company)
	location := strings.ToLower(candidate.Location)

	if title == "" || title == "unknown" {
		return true
	}

	// Exact pass: same title and company.
	for _, j := range existing {
		if strings.ToLower(j.Title) == title && strings.ToLower(j.Company) == company {
			return true
		}
	}

	// Fuzzy pass: near-identical titles at the same company, unless
	// the locations clearly differ.
	for _, j := range existing {
		if strings.ToLower(j.Company) != company {
			continue
		}
		if Similarity(strings.ToLower(j.Title), title) <= jaccardThreshold {
			continue
		}
		existingLoc := strings.ToLower(j.Location)
		if location == "" || existingLoc == "" ||
			strings.Contains(existingLoc, location) || strings.Contains(location, existingLoc) {
			return true
		}
	}

	return false
}

// Similarity is the Jaccard index of the whitespace-tokenized word
// sets of a and b: |intersection| / |union|. Empty input scores 0.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}

	wordsA := mapset.NewThreadUnsafeSet(strings.Fields(strings.ToLower(a))...)
	wordsB := mapset.NewThreadUnsafeSet(strings.Fields(strings.ToLower(b))...)

	union := wordsA.Union(wordsB).Cardinality()
	if union == 0 {
		return 0
	}
	return float64(wordsA.Intersect(wordsB).Cardinality()) / float64(union)
}

// Key builds the end-of-run dedup key: lowercased trimmed title with
// stop words stripped, joined with the lowercased trimmed company.
// A stop word is removed only when it sits between single spaces, one
// replacement pass over the title.
func Key(title, company string, stopWords []string) string {
	t := strings.TrimSpace(strings.ToLower(title))
	c := strings.TrimSpace(strings.ToLower(company))
	for _, w := range stopWords {
		t = strings.ReplaceAll(t, " "+w+" ", " ")
	}
	return t + "|" + c
}

// Finalize rebuilds jobs keeping the first occurrence per Key. It is
// the safety net after a full run, separate from IsDuplicate.
func Finalize(jobs []domain.Job, stopWords []string) []domain.Job {
	seen := make(map[string]bool, len(jobs))
	out := make([]domain.Job, 0, len(jobs))
	for _, j := range jobs {
		k := Key(j.Title, j.Company, stopWords)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, j)
	}
	return out
}
