// Package wttj scrapes Welcome to the Jungle search results.
package wttj

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"

	"immojobs-engine/internal/domain"
	"immojobs-engine/internal/scrape/client"
	"immojobs-engine/internal/scrape/types"
	"immojobs-engine/internal/scrape/util"
)

const baseURL = "https://www.welcometothejungle.com"

type Scraper struct {
	c *client.Client
}

func New(c *client.Client) *Scraper {
	return &Scraper{c: c}
}

func (s *Scraper) Name() string { return "wttj" }

func (s *Scraper) Fetch(ctx context.Context, q types.Query) ([]domain.Job, error) {
	u := fmt.Sprintf("%s/fr/jobs?query=%s&page=1&aroundQuery=%s",
		baseURL, url.QueryEscape(q.Term), url.QueryEscape(q.Location))

	doc, err := s.c.GetDocument(ctx, u, baseURL+"/fr")
	if err != nil {
		return nil, err
	}

	cards := util.FirstSelection(doc,
		`[data-testid="job-card"]`,
		".job-card",
		"article",
		".ais-Hits-item",
	)
	if cards == nil {
		return nil, nil
	}

	var out []domain.Job
	seen := map[string]bool{}

	cards.Each(func(_ int, card *goquery.Selection) {
		j, ok := extractCard(card, q.Location)
		if !ok || seen[j.URL] {
			return
		}
		seen[j.URL] = true
		out = append(out, j)
	})

	return out, nil
}

func extractCard(card *goquery.Selection, location string) (domain.Job, bool) {
	title := util.FirstText(card, "h3", `[data-testid="job-card-title"]`, ".job-title", ".title")
	if title == "" {
		return domain.Job{}, false
	}

	company := util.FirstText(card, `[data-testid="job-card-company"]`, ".company-name", ".company")
	if company == "" {
		company = "Unknown"
	}

	loc := util.FirstText(card, `[data-testid="job-card-location"]`, ".location")
	if loc == "" {
		loc = location
	}

	href, ok := card.Find("a").First().Attr("href")
	if !ok {
		return domain.Job{}, false
	}
	jobURL := util.AbsoluteURL(baseURL, href)
	if jobURL == "" {
		return domain.Job{}, false
	}

	return domain.Job{
		Title:       title,
		Company:     company,
		Location:    loc,
		Source:      "Welcome to the Jungle",
		ScrapedDate: time.Now().Format("2006-01-02"),
		URL:         jobURL,
	}, true
}
