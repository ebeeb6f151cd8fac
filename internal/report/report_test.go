package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"immojobs-engine/internal/domain"
)

func TestWrite(t *testing.T) {
	jobs := []domain.Job{
		{Title: "Agent immobilier", Source: "Indeed"},
		{Title: "Agent immobilier senior", Source: "Indeed"},
		{Title: "Property manager", Source: "APEC"},
		{Title: "Un rôle", Source: ""},
	}

	var buf bytes.Buffer
	if err := Write(&buf, jobs, 42*time.Second); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		"Total jobs collected: 4",
		"Indeed: 2 jobs",
		"APEC: 1 jobs",
		"Unknown: 1 jobs",
		"agent: 2 occurrences",
		"immobilier: 2 occurrences",
		"Total runtime: 42.00 seconds",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}
}

func TestTopTitleKeywordsSkipsShortWords(t *testing.T) {
	jobs := []domain.Job{
		{Title: "un de la vente"},
		{Title: "rôle clé"},
	}

	counts := topTitleKeywords(jobs, 10)
	for _, c := range counts {
		switch c.name {
		case "un", "de", "la", "clé":
			t.Errorf("short word %q should be skipped", c.name)
		}
	}

	found := false
	for _, c := range counts {
		if c.name == "vente" {
			found = true
		}
	}
	if !found {
		t.Error("expected 'vente' in keyword counts")
	}

	// Length is counted in runes: "rôle" is four characters despite
	// its five bytes.
	foundRole := false
	for _, c := range counts {
		if c.name == "rôle" {
			foundRole = true
		}
	}
	if !foundRole {
		t.Error("expected 'rôle' in keyword counts")
	}
}

func TestSortCountsOrderAndCap(t *testing.T) {
	m := map[string]int{"b": 2, "a": 2, "c": 5, "d": 1}
	out := sortCounts(m, 3)

	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}
	if out[0].name != "c" {
		t.Errorf("highest count first, got %q", out[0].name)
	}
	// Ties break alphabetically for stable output.
	if out[1].name != "a" || out[2].name != "b" {
		t.Errorf("tie order wrong: %v", out)
	}
}
