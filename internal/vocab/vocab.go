// Package vocab holds the keyword vocabularies driving relevance
// classification and the final dedup pass. The lists mix French and
// English on purpose (Paris market) and are tuning data, not code:
// edit them here or override them from config, never inline at a
// call site.
package vocab

// Vocabulary groups the term lists by confidence tier.
type Vocabulary struct {
	// CoreTerms alone in a title are a high-confidence match.
	CoreTerms []string `yaml:"core_terms" json:"core_terms"`

	// JobTitles need a core or property term alongside them.
	JobTitles []string `yaml:"job_titles" json:"job_titles"`

	// PropertyTypes need an activity term alongside them.
	PropertyTypes []string `yaml:"property_types" json:"property_types"`

	// Activities are medium confidence.
	Activities []string `yaml:"activities" json:"activities"`

	// RelatedFields are low confidence; several must co-occur.
	RelatedFields []string `yaml:"related_fields" json:"related_fields"`

	// InvestmentTerms short-circuit to relevant on a title hit.
	InvestmentTerms []string `yaml:"investment_terms" json:"investment_terms"`

	// StopWords are stripped from titles when building the
	// end-of-run dedup key.
	StopWords []string `yaml:"stop_words" json:"stop_words"`
}

// Default returns the built-in vocabulary. Entries repeat across (and
// within) lists; the classifier's tally rules count entries, so the
// repeats carry weight and must stay.
func Default() Vocabulary {
	return Vocabulary{
		CoreTerms: []string{
			"immobilier", "immobilière", "real estate", "property", "foncier", "foncière",
			"biens immobiliers", "realty", "reit", "asset manager", "investment manager",
			"fund manager", "portfolio manager", "underwriter", "debt fund",
			"structured finance", "acquisitions", "asset management",
		},
		JobTitles: []string{
			"agent", "broker", "négociateur", "négociatrice", "conseiller", "conseillère",
			"consultant", "manager", "director", "advisor", "associate", "analyst",
			"appraiser", "surveyor", "estimator", "developer",
		},
		PropertyTypes: []string{
			"residential", "commercial", "industrial", "retail", "office", "housing",
			"apartment", "building", "development", "résidentiel", "commercial", "bureaux",
		},
		Activities: []string{
			"leasing", "lease", "rental", "letting", "transaction", "vente", "achat",
			"location", "gestion", "management", "investment", "investissement", "acquisition",
			"development", "développement", "construction", "promotion", "valuation",
			"évaluation", "estimation", "mortgage", "financement", "hypothécaire", "crédit",
		},
		RelatedFields: []string{
			"asset", "actifs", "portfolio", "portefeuille", "patrimoine", "wealth",
			"capital", "fund", "fonds", "trust", "reit", "project", "projet",
			"facility", "facilities", "bâtiment", "copropriété", "syndic", "notaire",
			"notarial", "legal", "juridique", "finance", "financial", "investment",
			"debt", "dette", "structured", "structuré", "underwriting", "acquisition",
			"asset management", "fund management", "investment management", "am", "aum",
			"analyste", "analyst", "private equity", "institutional",
		},
		InvestmentTerms: []string{
			"investment", "asset management", "fund", "portfolio", "acquisition", "debt",
		},
		StopWords: []string{
			"le", "la", "les", "de", "du", "des", "en", "à", "et",
			"the", "a", "an", "in", "for", "of",
		},
	}
}

// Merge overlays non-empty lists from o onto v. Lets the config file
// replace individual tiers without restating the whole vocabulary.
func Merge(v, o Vocabulary) Vocabulary {
	if len(o.CoreTerms) > 0 {
		v.CoreTerms = o.CoreTerms
	}
	if len(o.JobTitles) > 0 {
		v.JobTitles = o.JobTitles
	}
	if len(o.PropertyTypes) > 0 {
		v.PropertyTypes = o.PropertyTypes
	}
	if len(o.Activities) > 0 {
		v.Activities = o.Activities
	}
	if len(o.RelatedFields) > 0 {
		v.RelatedFields = o.RelatedFields
	}
	if len(o.InvestmentTerms) > 0 {
		v.InvestmentTerms = o.InvestmentTerms
	}
	if len(o.StopWords) > 0 {
		v.StopWords = o.StopWords
	}
	return v
}
