// Package client is the shared fetch layer for all site scrapers:
// browser-like headers with a rotating User-Agent, retry with
// exponential backoff, per-host rate limiting and charset-aware body
// decoding for the French boards that still serve latin-1.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
	"golang.org/x/text/encoding/htmlindex"

	"immojobs-engine/internal/scrape/util"
)

// userAgents is the rotation pool. Small on purpose: a handful of
// current mainstream strings draws less attention than exotic ones.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.1.1 Safari/605.1.15",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:89.0) Gecko/20100101 Firefox/89.0",
}

func RandomUserAgent() string {
	return userAgents[rand.IntN(len(userAgents))]
}

type Config struct {
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	MaxRetries        int
}

type Client struct {
	hc         *http.Client
	limiter    *util.HostLimiter
	maxRetries uint64
}

func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 0.5
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	return &Client{
		hc:         &http.Client{Timeout: cfg.Timeout},
		limiter:    util.NewHostLimiter(cfg.RequestsPerSecond, cfg.Burst),
		maxRetries: uint64(cfg.MaxRetries),
	}
}

// Get fetches rawURL and returns the decoded body. Non-200 responses
// count as transient failures and go through the retry schedule.
func (c *Client) Get(ctx context.Context, rawURL, referer string) ([]byte, error) {
	if err := c.limiter.WaitURL(ctx, rawURL); err != nil {
		return nil, err
	}

	attempt := func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		setBrowserHeaders(req, referer)

		res, err := c.hc.Do(req)
		if err != nil {
			return nil, err
		}
		defer res.Body.Close()

		if res.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("status code: %d", res.StatusCode)
		}

		body, err := io.ReadAll(res.Body)
		if err != nil {
			return nil, err
		}
		return decodeBody(body, res.Header.Get("Content-Type")), nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	return backoff.RetryWithData(attempt, backoff.WithContext(backoff.WithMaxRetries(bo, c.maxRetries), ctx))
}

// GetDocument fetches rawURL and parses it as HTML.
func (c *Client) GetDocument(ctx context.Context, rawURL, referer string) (*goquery.Document, error) {
	body, err := c.Get(ctx, rawURL, referer)
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(bytes.NewReader(body))
}

// setBrowserHeaders rotates the User-Agent per request and jitters the
// Accept header so consecutive requests don't look stamped out.
func setBrowserHeaders(req *http.Request, referer string) {
	req.Header.Set("User-Agent", RandomUserAgent())
	// Accept-Encoding is left to the transport so gzip bodies come
	// back decompressed.
	req.Header.Set("Accept-Language", "fr-FR,fr;q=0.9,en-US;q=0.8,en;q=0.7")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Cache-Control", "max-age=0")

	if rand.IntN(2) == 0 {
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	} else {
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	}

	if referer != "" {
		req.Header.Set("Referer", referer)
	}
}

// decodeBody converts non-UTF-8 responses (charset from Content-Type)
// to UTF-8. Unknown or missing charsets pass through untouched.
func decodeBody(body []byte, contentType string) []byte {
	ct := strings.ToLower(contentType)
	i := strings.Index(ct, "charset=")
	if i < 0 {
		return body
	}
	name := strings.Trim(ct[i+len("charset="):], `"; `)
	if j := strings.IndexByte(name, ';'); j >= 0 {
		name = name[:j]
	}
	if name == "" || name == "utf-8" || name == "utf8" {
		return body
	}

	enc, err := htmlindex.Get(name)
	if err != nil || enc == nil {
		return body
	}
	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return body
	}
	return decoded
}
