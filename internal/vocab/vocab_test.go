package vocab

import "testing"

func count(list []string, term string) int {
	n := 0
	for _, e := range list {
		if e == term {
			n++
		}
	}
	return n
}

// The list sizes are load-bearing for the tally rules; a dropped or
// added entry shifts classification thresholds silently.
func TestDefaultListSizes(t *testing.T) {
	v := Default()
	tests := []struct {
		name string
		list []string
		want int
	}{
		{"core terms", v.CoreTerms, 18},
		{"job titles", v.JobTitles, 16},
		{"property types", v.PropertyTypes, 12},
		{"activities", v.Activities, 24},
		{"related fields", v.RelatedFields, 40},
		{"investment terms", v.InvestmentTerms, 6},
		{"stop words", v.StopWords, 15},
	}
	for _, tt := range tests {
		if len(tt.list) != tt.want {
			t.Errorf("%s: %d entries, want %d", tt.name, len(tt.list), tt.want)
		}
	}
}

func TestDefaultSpotChecks(t *testing.T) {
	v := Default()

	// "commercial" appears twice among the property types and counts
	// twice in the tally rules.
	if got := count(v.PropertyTypes, "commercial"); got != 2 {
		t.Errorf("commercial appears %d times in property types, want 2", got)
	}

	// Accented FR entries must survive as-is; they match accented titles
	// that their ASCII siblings miss.
	for _, term := range []string{"immobilière", "foncière"} {
		if count(v.CoreTerms, term) != 1 {
			t.Errorf("core terms missing %q", term)
		}
	}
	for _, term := range []string{"négociateur", "négociatrice", "conseillère"} {
		if count(v.JobTitles, term) != 1 {
			t.Errorf("job titles missing %q", term)
		}
	}
	for _, term := range []string{"évaluation", "développement", "hypothécaire"} {
		if count(v.Activities, term) != 1 {
			t.Errorf("activities missing %q", term)
		}
	}
	for _, term := range []string{"bâtiment", "copropriété", "notaire", "am"} {
		if count(v.RelatedFields, term) != 1 {
			t.Errorf("related fields missing %q", term)
		}
	}
	if count(v.StopWords, "à") != 1 {
		t.Error("stop words missing accented à")
	}

	// "notaire" is a low-confidence field only, never a core term.
	if count(v.CoreTerms, "notaire") != 0 {
		t.Error("notaire must not be a core term")
	}
}

func TestMerge(t *testing.T) {
	def := Default()

	tests := []struct {
		name       string
		overlay    Vocabulary
		wantCore   []string
		wantTitles []string
	}{
		{
			name:       "empty overlay keeps defaults",
			overlay:    Vocabulary{},
			wantCore:   def.CoreTerms,
			wantTitles: def.JobTitles,
		},
		{
			name:       "non-empty list replaces, others fall back",
			overlay:    Vocabulary{CoreTerms: []string{"immo"}},
			wantCore:   []string{"immo"},
			wantTitles: def.JobTitles,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(Default(), tt.overlay)
			if len(got.CoreTerms) != len(tt.wantCore) || got.CoreTerms[0] != tt.wantCore[0] {
				t.Errorf("core terms = %v, want %v", got.CoreTerms, tt.wantCore)
			}
			if len(got.JobTitles) != len(tt.wantTitles) {
				t.Errorf("job titles = %d entries, want %d", len(got.JobTitles), len(tt.wantTitles))
			}
		})
	}
}
