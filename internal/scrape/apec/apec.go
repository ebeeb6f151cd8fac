// Package apec scrapes apec.fr, the French executive job board. It is
// the most reliable of the four sources and gets a fan of query
// variations to widen the net.
package apec

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"

	"immojobs-engine/internal/domain"
	"immojobs-engine/internal/scrape/client"
	"immojobs-engine/internal/scrape/types"
	"immojobs-engine/internal/scrape/util"
)

const baseURL = "https://www.apec.fr"

// variationSuffixes fan one base query into role- and
// activity-flavored searches.
var variationSuffixes = []string{
	"", " agent", " conseiller", " manager", " négociateur", " transaction", " vente",
}

type Scraper struct {
	c *client.Client
}

func New(c *client.Client) *Scraper {
	return &Scraper{c: c}
}

func (s *Scraper) Name() string { return "apec" }

func (s *Scraper) Fetch(ctx context.Context, q types.Query) ([]domain.Job, error) {
	var out []domain.Job

	for _, suffix := range variationSuffixes {
		if ctx.Err() != nil {
			return out, ctx.Err()
		}

		term := q.Term + suffix
		u := fmt.Sprintf("%s/candidat/recherche-emploi.html/emploi?motsCles=%s&localisation=%s",
			baseURL, url.QueryEscape(term), url.QueryEscape(q.Location))

		doc, err := s.c.GetDocument(ctx, u, baseURL)
		if err != nil {
			log.Printf("[apec] query %q failed: %v", term, err)
			continue
		}

		cards := util.FirstSelection(doc, "div.card-body", "div.job-result-card")
		if cards == nil {
			continue
		}

		cards.Each(func(_ int, card *goquery.Selection) {
			if j, ok := extractCard(card, q.Location); ok {
				out = append(out, j)
			}
		})
	}

	return out, nil
}

func extractCard(card *goquery.Selection, fallbackLoc string) (domain.Job, bool) {
	title := util.FirstText(card, "h2.card-title", "h2.job-name")
	if title == "" {
		return domain.Job{}, false
	}

	company := util.FirstText(card, "div.card-offer__company", "div.company-name")
	if company == "" {
		company = "Unknown"
	}

	location := util.FirstText(card, "div.card-offer__location", "div.location")
	if location == "" {
		location = fallbackLoc
	}

	return domain.Job{
		Title:       title,
		Company:     company,
		Location:    location,
		Description: util.FirstText(card, "div.card-offer__description", "div.description"),
		Source:      "APEC",
		ScrapedDate: time.Now().Format("2006-01-02"),
		URL:         cardURL(card),
	}, true
}

// cardURL prefers the anchor wrapping the title, then any anchor in
// the card.
func cardURL(card *goquery.Selection) string {
	for _, sel := range []string{"a:has(h2.card-title)", "a:has(h2.job-name)", "a"} {
		if href, ok := card.Find(sel).First().Attr("href"); ok {
			return util.AbsoluteURL(baseURL, href)
		}
	}
	if href, ok := card.Closest("a").Attr("href"); ok {
		return util.AbsoluteURL(baseURL, href)
	}
	return ""
}
