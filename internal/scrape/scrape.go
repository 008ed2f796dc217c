// Package scrape populates the catalog from Wikipedia's PlayStation game
// list pages.
package scrape

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/vmunix/ps1db/internal/catalog"
)

// Console launch dates; a release on one of these marks a launch title.
const (
	launchDateJP = "December 3, 1994"
	launchDateNA = "September 9, 1995"
	launchDateEU = "September 29, 1995"
)

const (
	userAgent = "ps1db/1.0 (+https://github.com/vmunix/ps1db)"
	wikiBase  = "https://en.wikipedia.org"
)

// Client fetches and parses the list pages.
type Client struct {
	http *http.Client
	log  *slog.Logger
}

// New creates a scrape client.
func New(httpClient *http.Client, log *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{http: httpClient, log: log.With("component", "scrape")}
}

// FetchAll fetches every list page in parallel and returns the merged rows
// in page order. Any page failing fails the whole fetch; a half-scraped
// catalog is worse than none.
func (c *Client) FetchAll(ctx context.Context, urls []string) ([]*catalog.Game, error) {
	results := make([][]*catalog.Game, len(urls))

	g, ctx := errgroup.WithContext(ctx)
	for i, u := range urls {
		i, u := i, u // shadow for go <1.22 loop-variable semantics
		g.Go(func() error {
			games, err := c.fetch(ctx, u)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", u, err)
			}
			c.log.Info("page scraped", "url", u, "games", len(games))
			results[i] = games
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []*catalog.Game
	for _, r := range results {
		all = append(all, r...)
	}
	return all, nil
}

func (c *Client) fetch(ctx context.Context, url string) ([]*catalog.Game, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return Parse(resp.Body)
}

// Parse extracts game rows from the first wikitable in the page. Cell layout
// is title, developer, publisher, then the JP, EU and NA release dates.
func Parse(r io.Reader) ([]*catalog.Game, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	var games []*catalog.Game
	doc.Find("table.wikitable").First().Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return // header
		}
		cells := row.Find("td, th")
		if cells.Length() < 5 {
			return
		}
		title := strings.TrimSpace(cells.Eq(0).Text())
		if title == "" {
			return
		}

		g := &catalog.Game{
			Title:     title,
			Developer: strings.TrimSpace(cells.Eq(1).Text()),
			Publisher: strings.TrimSpace(cells.Eq(2).Text()),
		}
		if href, ok := cells.Eq(0).Find("a").First().Attr("href"); ok {
			g.ReferenceURL = wikiBase + href
		}

		g.ReleaseDateJP = parseDate(cells.Eq(3).Text())
		g.ReleaseDateEU = parseDate(cells.Eq(4).Text())
		if cells.Length() > 5 {
			g.ReleaseDateNA = parseDate(cells.Eq(5).Text())
		}
		g.RegionJP = g.ReleaseDateJP != ""
		g.RegionEU = g.ReleaseDateEU != ""
		g.RegionNA = g.ReleaseDateNA != ""
		g.IsLaunchTitle = g.ReleaseDateJP == launchDateJP ||
			g.ReleaseDateNA == launchDateNA ||
			g.ReleaseDateEU == launchDateEU

		games = append(games, g)
	})
	return games, nil
}

func parseDate(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "unreleased") {
		return ""
	}
	return s
}
