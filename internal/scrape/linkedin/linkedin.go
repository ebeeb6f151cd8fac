// Package linkedin scrapes the public jobs-guest pagination API.
// LinkedIn actively blocks scrapers; empty pages end the run quietly.
package linkedin

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"immojobs-engine/internal/domain"
	"immojobs-engine/internal/scrape/client"
	"immojobs-engine/internal/scrape/types"
	"immojobs-engine/internal/scrape/util"
)

const (
	searchURL = "https://www.linkedin.com/jobs-guest/jobs/api/seeMoreJobPostings/search"
	pageSize  = 25
)

type Config struct {
	MaxPages   int
	DateFilter string
}

type Scraper struct {
	cfg Config
	c   *client.Client
}

func New(cfg Config, c *client.Client) *Scraper {
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 5
	}
	return &Scraper{cfg: cfg, c: c}
}

func (s *Scraper) Name() string { return "linkedin" }

func (s *Scraper) Fetch(ctx context.Context, q types.Query) ([]domain.Job, error) {
	var out []domain.Job

	for page := 0; page < s.cfg.MaxPages; page++ {
		if ctx.Err() != nil {
			return out, ctx.Err()
		}

		u := fmt.Sprintf("%s?keywords=%s&location=%s&start=%d",
			searchURL, url.QueryEscape(q.Term), url.QueryEscape(q.Location), page*pageSize)
		if tpr := dateFilterParam(s.cfg.DateFilter); tpr != "" {
			u += "&f_TPR=" + tpr
		}

		doc, err := s.c.GetDocument(ctx, u, "https://www.linkedin.com/jobs")
		if err != nil {
			return out, err
		}

		cards := doc.Find("div.job-search-card")
		if cards.Length() == 0 {
			break
		}

		cards.Each(func(_ int, card *goquery.Selection) {
			title := util.CleanText(card.Find("h3.base-search-card__title").First().Text())
			if title == "" {
				return
			}

			company := util.CleanText(card.Find("h4.base-search-card__subtitle").First().Text())
			if company == "" {
				company = "Unknown"
			}

			location := util.CleanText(card.Find("span.job-search-card__location").First().Text())
			if location == "" {
				location = q.Location
			}

			jobURL := ""
			for _, sel := range []string{"a.base-card__full-link", "a.job-search-card__link"} {
				if href, ok := card.Find(sel).First().Attr("href"); ok {
					jobURL = strings.TrimSpace(href)
					break
				}
			}

			out = append(out, domain.Job{
				Title:       title,
				Company:     company,
				Location:    location,
				Source:      "LinkedIn",
				ScrapedDate: time.Now().Format("2006-01-02"),
				URL:         jobURL,
			})
		})
	}

	return out, nil
}

// dateFilterParam maps the date filter onto LinkedIn's f_TPR seconds
// window.
func dateFilterParam(filter string) string {
	switch filter {
	case "1day":
		return "r86400"
	case "1week":
		return "r604800"
	case "2weeks":
		return "r1209600"
	case "1month":
		return "r2592000"
	}
	return ""
}
