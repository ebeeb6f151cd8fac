package dedup

import (
	"testing"

	"immojobs-engine/internal/domain"
	"immojobs-engine/internal/vocab"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "agent immobilier paris", "agent immobilier paris", 1},
		{"word order ignored", "senior agent immobilier", "agent immobilier senior", 1},
		{"partial overlap", "agent immobilier", "agent commercial", 1.0 / 3.0},
		{"one extra token stays below threshold", "agent immobilier", "agent immobilier senior", 2.0 / 3.0},
		{"disjoint", "one two", "three four", 0},
		{"empty left", "", "agent", 0},
		{"empty right", "agent", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Similarity(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if sym := Similarity(tt.b, tt.a); sym != got {
				t.Errorf("Similarity not symmetric: %v vs %v", got, sym)
			}
		})
	}
}

func TestIsDuplicate(t *testing.T) {
	existing := []domain.Job{
		{Title: "Agent Immobilier Senior", Company: "ABC Immo", Location: "Paris"},
		{Title: "Property Manager", Company: "Gecina", Location: "Paris 8e"},
	}

	tests := []struct {
		name      string
		candidate domain.Job
		want      bool
	}{
		{
			name:      "empty title rejected outright",
			candidate: domain.Job{Title: "", Company: "ABC Immo"},
			want:      true,
		},
		{
			name:      "unknown title rejected outright",
			candidate: domain.Job{Title: "Unknown", Company: "ABC Immo"},
			want:      true,
		},
		{
			name:      "exact match ignoring case",
			candidate: domain.Job{Title: "agent immobilier senior", Company: "abc immo", Location: "Lyon"},
			want:      true,
		},
		{
			name:      "same words reordered at same company",
			candidate: domain.Job{Title: "Senior Agent Immobilier", Company: "ABC Immo", Location: "Paris"},
			want:      true,
		},
		{
			name:      "reordered words but different company",
			candidate: domain.Job{Title: "Senior Agent Immobilier", Company: "XYZ Immo", Location: "Paris"},
			want:      false,
		},
		{
			name:      "reordered words but incompatible location",
			candidate: domain.Job{Title: "Senior Agent Immobilier", Company: "ABC Immo", Location: "Lyon"},
			want:      false,
		},
		{
			name:      "location substring is compatible",
			candidate: domain.Job{Title: "Manager Property", Company: "Gecina", Location: "Paris"},
			want:      true,
		},
		{
			name:      "missing location is compatible",
			candidate: domain.Job{Title: "Manager Property", Company: "Gecina"},
			want:      true,
		},
		{
			name:      "below similarity threshold",
			candidate: domain.Job{Title: "Agent Immobilier Senior Paris Ouest", Company: "ABC Immo", Location: "Paris"},
			want:      false,
		},
		{
			name:      "fresh listing",
			candidate: domain.Job{Title: "Gestionnaire de copropriété", Company: "Foncia", Location: "Paris"},
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsDuplicate(tt.candidate, existing)
			if got != tt.want {
				t.Errorf("IsDuplicate(%+v) = %v, want %v", tt.candidate, got, tt.want)
			}
		})
	}
}

func TestIsDuplicateEmptyCollection(t *testing.T) {
	j := domain.Job{Title: "Agent Immobilier", Company: "ABC"}
	if IsDuplicate(j, nil) {
		t.Error("nothing collected yet, expected no duplicate")
	}
}

func TestKey(t *testing.T) {
	stop := vocab.Default().StopWords

	tests := []struct {
		name    string
		title   string
		company string
		want    string
	}{
		{
			name:    "inner stop words stripped",
			title:   "Gestionnaire de patrimoine",
			company: "Foncia",
			want:    "gestionnaire patrimoine|foncia",
		},
		{
			name:    "leading stop word kept",
			title:   "Le gestionnaire de patrimoine",
			company: "Foncia",
			want:    "le gestionnaire patrimoine|foncia",
		},
		{
			name:    "whitespace trimmed",
			title:   "  Agent Immobilier  ",
			company: " ABC ",
			want:    "agent immobilier|abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Key(tt.title, tt.company, stop)
			if got != tt.want {
				t.Errorf("Key(%q, %q) = %q, want %q", tt.title, tt.company, got, tt.want)
			}
		})
	}
}

func TestFinalizeKeepsFirstOccurrence(t *testing.T) {
	stop := vocab.Default().StopWords
	jobs := []domain.Job{
		{Title: "Gestionnaire de patrimoine", Company: "Foncia", Source: "Indeed"},
		{Title: "Négociateur immobilier", Company: "Orpi", Source: "APEC"},
		{Title: "gestionnaire patrimoine", Company: "FONCIA", Source: "LinkedIn"},
	}

	out := Finalize(jobs, stop)
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if out[0].Source != "Indeed" {
		t.Errorf("first occurrence should win, got source %s", out[0].Source)
	}
	if out[1].Title != "Négociateur immobilier" {
		t.Errorf("unexpected survivor: %+v", out[1])
	}
}
