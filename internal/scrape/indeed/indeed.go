// Package indeed scrapes fr.indeed.com. The HTML search pages are
// aggressively bot-protected, so after the card pass comes an RSS
// fallback over a rotation of high-signal investment queries.
package indeed

import (
	"context"
	"encoding/xml"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"immojobs-engine/internal/domain"
	"immojobs-engine/internal/scrape/client"
	"immojobs-engine/internal/scrape/types"
	"immojobs-engine/internal/scrape/util"
)

const baseURL = "https://fr.indeed.com"

// rssQueries rotate through the RSS fallback; only the first four run
// per fetch to stay inside the runtime budget.
var rssQueries = []string{
	"investment manager immobilier",
	"asset manager immobilier",
	"fund manager real estate",
	"analyste investissement immobilier",
	"acquisitions immobilières",
	"debt fund immobilier",
	"structured finance real estate",
	"portfolio manager immobilier",
	"underwriter immobilier",
}

const maxRSSQueries = 4

var locationRe = regexp.MustCompile(`Location: ([^<]+)`)

type Config struct {
	MaxPages   int
	DateFilter string // "", 1day, 1week, 2weeks, 1month
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

func (s *Scraper) Name() string { return "indeed" }

func (s *Scraper) Fetch(ctx context.Context, q types.Query) ([]domain.Job, error) {
	jobs, err := s.fetchHTML(ctx, q)
	if err != nil {
		log.Printf("[indeed] html pass failed: %v", err)
	}
	if len(jobs) > 0 {
		return jobs, nil
	}

	// HTML pass blocked or empty; the feed is less protected.
	return s.fetchRSS(ctx, q)
}

func (s *Scraper) fetchHTML(ctx context.Context, q types.Query) ([]domain.Job, error) {
	var out []domain.Job

	for page := 0; page < s.cfg.MaxPages; page++ {
		if ctx.Err() != nil {
			return out, ctx.Err()
		}

		u := fmt.Sprintf("%s/emplois?q=%s&l=%s&start=%d",
			baseURL, url.QueryEscape(q.Term), url.QueryEscape(q.Location), page*10)
		if days := dateFilterDays(s.cfg.DateFilter); days > 0 {
			u += fmt.Sprintf("&fromage=%d", days)
		}

		doc, err := s.c.GetDocument(ctx, u, baseURL)
		if err != nil {
			return out, err
		}

		cards := util.FirstSelection(doc,
			".job_seen_beacon",
			".tapItem",
			".cardOutline",
			"td.resultContent",
			`[data-testid="job-card"]`,
			`[class*="job-card"]`,
		)
		if cards == nil {
			break
		}

		cards.Each(func(_ int, card *goquery.Selection) {
			if j, ok := s.extractCard(card, q.Location); ok {
				out = append(out, j)
			}
		})
	}

	return out, nil
}

func (s *Scraper) extractCard(card *goquery.Selection, fallbackLoc string) (domain.Job, bool) {
	titleSel := firstMatch(card,
		"h2.jobTitle",
		`h2[class*="title"]`,
		`a[class*="jcs-JobTitle"]`,
		`a[id*="job-title"]`,
		`a[class*="title"]`,
		"span[title]",
	)
	if titleSel == nil {
		return domain.Job{}, false
	}
	title := util.CleanText(titleSel.Text())
	if title == "" {
		return domain.Job{}, false
	}

	company := util.FirstText(card,
		"span.companyName",
		`span[data-testid="company-name"]`,
		`[class*="companyName"]`,
		`[class*="company"]`,
	)
	if company == "" {
		company = "Unknown"
	}

	location := util.FirstText(card, "div.companyLocation", `[class*="location"]`)
	if location == "" {
		location = fallbackLoc
	}

	return domain.Job{
		Title:       title,
		Company:     company,
		Location:    location,
		Description: util.FirstText(card, "div.job-snippet", `[class*="snippet"]`, `[class*="summary"]`),
		Source:      "Indeed",
		ScrapedDate: time.Now().Format("2006-01-02"),
		URL:         extractCardURL(card, titleSel),
	}, true
}

// extractCardURL hunts for the posting link: href on the title anchor,
// an anchor inside or above the title, then any job link in the card.
func extractCardURL(card, titleSel *goquery.Selection) string {
	if href, ok := titleSel.Attr("href"); ok {
		return util.AbsoluteURL(baseURL, href)
	}
	if href, ok := titleSel.Find("a").First().Attr("href"); ok {
		return util.AbsoluteURL(baseURL, href)
	}
	if href, ok := titleSel.Closest("a").Attr("href"); ok {
		return util.AbsoluteURL(baseURL, href)
	}
	if href, ok := card.Find(`a[class*="job-"], a[class*="title"], a[href*="/viewjob"]`).First().Attr("href"); ok {
		return util.AbsoluteURL(baseURL, href)
	}
	return ""
}

type rssFeed struct {
	Items []rssItem `xml:"channel>item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

func (s *Scraper) fetchRSS(ctx context.Context, q types.Query) ([]domain.Job, error) {
	var out []domain.Job

	queries := rssQueries
	if len(queries) > maxRSSQueries {
		queries = queries[:maxRSSQueries]
	}

	for _, term := range queries {
		if ctx.Err() != nil {
			return out, ctx.Err()
		}

		u := fmt.Sprintf("%s/rss?q=%s&l=%s",
			baseURL, url.QueryEscape(term), url.QueryEscape(q.Location))

		body, err := s.c.Get(ctx, u, "")
		if err != nil {
			log.Printf("[indeed] rss query %q failed: %v", term, err)
			continue
		}

		var feed rssFeed
		if err := xml.Unmarshal(body, &feed); err != nil {
			log.Printf("[indeed] rss parse failed for %q: %v", term, err)
			continue
		}

		for _, item := range feed.Items {
			j, ok := jobFromRSSItem(item, q.Location)
			if ok {
				out = append(out, j)
			}
		}
	}

	return out, nil
}

// jobFromRSSItem splits the feed title ("Job Title - Company") and
// pulls the location out of the description when labeled.
func jobFromRSSItem(item rssItem, fallbackLoc string) (domain.Job, bool) {
	title := strings.TrimSpace(item.Title)
	if title == "" {
		return domain.Job{}, false
	}

	company := "Unknown"
	if i := strings.Index(title, " - "); i >= 0 {
		company = strings.TrimSpace(title[i+len(" - "):])
		title = strings.TrimSpace(title[:i])
	}

	location := fallbackLoc
	if m := locationRe.FindStringSubmatch(item.Description); m != nil {
		location = strings.TrimSpace(m[1])
	}

	return domain.Job{
		Title:       title,
		Company:     company,
		Location:    location,
		Description: item.Description,
		Source:      "Indeed (RSS)",
		ScrapedDate: time.Now().Format("2006-01-02"),
		URL:         strings.TrimSpace(item.Link),
	}, true
}

func firstMatch(s *goquery.Selection, selectors ...string) *goquery.Selection {
	for _, sel := range selectors {
		if found := s.Find(sel); found.Length() > 0 {
			return found.First()
		}
	}
	return nil
}

func dateFilterDays(filter string) int {
	switch filter {
	case "1day":
		return 1
	case "1week":
		return 7
	case "2weeks":
		return 14
	case "1month":
		return 30
	}
	return 0
}
