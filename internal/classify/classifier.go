// Package classify decides whether a scraped listing is a real-estate
// job. Rules run in a fixed order and the first hit wins; the order is
// the contract, so don't reshuffle it for speed.
package classify

import (
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"immojobs-engine/internal/vocab"
)

// Classifier holds prebuilt Aho-Corasick automatons for the any-term
// rules plus the raw lists for the tally rules. The tally rules walk
// the concatenated lists entry by entry because repeated entries count
// more than once, which a matcher's unique-hit output would flatten.
type Classifier struct {
	core          *ahocorasick.Matcher
	investment    *ahocorasick.Matcher
	jobTitle      *ahocorasick.Matcher
	propertyType  *ahocorasick.Matcher
	activity      *ahocorasick.Matcher
	coreOrProp    *ahocorasick.Matcher // core terms + property types
	titleContext  *ahocorasick.Matcher // job titles + activities + property types
	tallyTitle    []string             // related fields + activities + property types
	tallyDesc     []string             // every list concatenated
	weakThreshold int
	descThreshold int
}

// New builds a classifier from a vocabulary. All matching is
// case-insensitive substring matching; terms are lowercased once here.
func New(v vocab.Vocabulary) *Classifier {
	core := lowerAll(v.CoreTerms)
	titles := lowerAll(v.JobTitles)
	props := lowerAll(v.PropertyTypes)
	acts := lowerAll(v.Activities)
	related := lowerAll(v.RelatedFields)
	invest := lowerAll(v.InvestmentTerms)

	return &Classifier{
		core:          ahocorasick.NewStringMatcher(core),
		investment:    ahocorasick.NewStringMatcher(invest),
		jobTitle:      ahocorasick.NewStringMatcher(titles),
		propertyType:  ahocorasick.NewStringMatcher(props),
		activity:      ahocorasick.NewStringMatcher(acts),
		coreOrProp:    ahocorasick.NewStringMatcher(concat(core, props)),
		titleContext:  ahocorasick.NewStringMatcher(concat(titles, acts, props)),
		tallyTitle:    concat(related, acts, props),
		tallyDesc:     concat(core, titles, props, acts, related),
		weakThreshold: 2,
		descThreshold: 3,
	}
}

// IsRelevant reports whether a listing looks like a real-estate job.
// description may be empty; an empty title and description is never
// relevant.
func (c *Classifier) IsRelevant(title, description string) bool {
	if title == "" && description == "" {
		return false
	}

	titleLow := strings.ToLower(title)
	descLow := strings.ToLower(description)

	// 1) Core term in title.
	if hits(c.core, titleLow) {
		return true
	}

	// 2) Generic role word in title + real-estate context anywhere.
	if hits(c.jobTitle, titleLow) && (hits(c.coreOrProp, titleLow) || hits(c.coreOrProp, descLow)) {
		return true
	}

	// 3) Property type in title + activity anywhere.
	if hits(c.propertyType, titleLow) && (hits(c.activity, titleLow) || hits(c.activity, descLow)) {
		return true
	}

	// 4) High-signal investment term in title.
	if hits(c.investment, titleLow) {
		return true
	}

	// 5) Enough weak signals in the title alone.
	if countEntries(c.tallyTitle, titleLow) >= c.weakThreshold {
		return true
	}

	// 6) Description fallback.
	if descLow != "" {
		if hits(c.core, descLow) && hits(c.titleContext, titleLow) {
			return true
		}
		if countEntries(c.tallyDesc, descLow) >= c.descThreshold {
			return true
		}
	}

	return false
}

func hits(m *ahocorasick.Matcher, text string) bool {
	if text == "" {
		return false
	}
	return len(m.Match([]byte(text))) > 0
}

// countEntries counts list entries found in text. Repeated entries
// count once each per occurrence in the list.
func countEntries(terms []string, text string) int {
	n := 0
	for _, t := range terms {
		if strings.Contains(text, t) {
			n++
		}
	}
	return n
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(s))
	}
	return out
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
