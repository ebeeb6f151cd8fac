package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate trims list fields and sanity-checks the config,
// returning a normalized copy plus anything the UI should surface.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Queries.AdditionalTerms = trimList(out.Queries.AdditionalTerms)
	out.Queries.French = strings.TrimSpace(out.Queries.French)
	out.Queries.English = strings.TrimSpace(out.Queries.English)
	out.Queries.Location = strings.TrimSpace(out.Queries.Location)

	// ---- Validation rules ----

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	if out.Scraper.MaxPages <= 0 {
		res.addErr("scraper.max_pages must be > 0")
	} else if out.Scraper.MaxPages > 20 {
		res.addWarn("scraper.max_pages is high (%d); runs may hit the runtime budget.", out.Scraper.MaxPages)
	}
	if out.Scraper.RequestsPerSecond <= 0 {
		res.addErr("scraper.requests_per_second must be > 0")
	} else if out.Scraper.RequestsPerSecond > 2 {
		res.addWarn("scraper.requests_per_second above 2 tends to trip anti-bot checks.")
	}
	if out.Scraper.RequestTimeoutSec <= 0 {
		res.addErr("scraper.request_timeout_seconds must be > 0")
	}
	if out.Scraper.MaxRuntimeSec <= 0 {
		res.addErr("scraper.max_runtime_seconds must be > 0")
	}
	if out.Scraper.MaxRetries < 0 {
		res.addErr("scraper.max_retries must be >= 0")
	}

	validFilter := false
	for _, f := range DateFilters {
		if out.Scraper.DateFilter == f {
			validFilter = true
			break
		}
	}
	if !validFilter {
		res.addErr("scraper.date_filter must be one of %q", DateFilters)
	}

	if out.Queries.French == "" && out.Queries.English == "" {
		res.addErr("queries.french and queries.english cannot both be empty")
	}
	if out.Queries.Location == "" {
		res.addWarn("queries.location is empty; defaulting to Paris at run time.")
	}

	if !out.Sites.Indeed && !out.Sites.APEC && !out.Sites.LinkedIn && !out.Sites.WTTJ {
		res.addWarn("no sites enabled; scrape runs will collect nothing.")
	}

	if out.Output.Filename == "" {
		res.addErr("output.filename is required")
	}
	if out.Salary.FeePercent < 0 || out.Salary.FeePercent > 100 {
		res.addErr("salary.fee_percent must be 0..100")
	}

	// Vocabulary overrides: empty strings inside a list are config
	// mistakes that would match everything.
	checkTerms := func(name string, xs []string) {
		for i, x := range xs {
			if strings.TrimSpace(x) == "" {
				res.addErr("vocabulary.%s[%d] cannot be empty", name, i)
			}
		}
	}
	checkTerms("core_terms", out.Vocabulary.CoreTerms)
	checkTerms("job_titles", out.Vocabulary.JobTitles)
	checkTerms("property_types", out.Vocabulary.PropertyTypes)
	checkTerms("activities", out.Vocabulary.Activities)
	checkTerms("related_fields", out.Vocabulary.RelatedFields)
	checkTerms("investment_terms", out.Vocabulary.InvestmentTerms)
	checkTerms("stop_words", out.Vocabulary.StopWords)

	return out, res
}
