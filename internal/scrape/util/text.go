package util

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// FirstText walks a selector fallback chain and returns the first
// non-empty text. Job boards rename card classes constantly, so every
// extraction goes through a chain like this.
func FirstText(s *goquery.Selection, selectors ...string) string {
	for _, sel := range selectors {
		if t := CleanText(s.Find(sel).First().Text()); t != "" {
			return t
		}
	}
	return ""
}

// FirstSelection returns the first selector in the chain that matches
// anything.
func FirstSelection(doc *goquery.Document, selectors ...string) *goquery.Selection {
	for _, sel := range selectors {
		if found := doc.Find(sel); found.Length() > 0 {
			return found
		}
	}
	return nil
}

// AbsoluteURL resolves href against base when it is site-relative.
func AbsoluteURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "/") {
		return base + href
	}
	return href
}
