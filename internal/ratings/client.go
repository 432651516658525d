package ratings

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"marquee/internal/logging"
	"marquee/internal/services"
	"marquee/internal/textutil"
)

// Client fetches pages from the rating site. Requests carry a stable
// user agent and a bounded timeout so a slow page cannot stall a run.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	logger    *slog.Logger
}

// NewClient constructs a rating site client.
func NewClient(baseURL, userAgent string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = logging.NewNop()
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		http:      &http.Client{Timeout: timeout},
		logger:    logging.NewComponentLogger(logger, "ratingclient"),
	}
}

// FilmURL builds the canonical film page URL for a slug.
func (c *Client) FilmURL(slug string) string {
	return c.baseURL + "/film/" + slug + "/"
}

// SearchURL builds the film search URL for a title.
func (c *Client) SearchURL(title string) string {
	return c.baseURL + "/search/films/" + url.PathEscape(textutil.Slug(title)) + "/"
}

// FetchPage retrieves and parses one HTML page. A 404 maps to
// services.ErrNotFound so callers can distinguish a missing film page from
// a transient failure.
func (c *Client) FetchPage(ctx context.Context, pageURL string) (*html.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "ratings", "fetch_page", "build request", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "ratings", "fetch_page",
			fmt.Sprintf("request %s after %s", pageURL, time.Since(start).Round(time.Millisecond)), err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, services.Wrap(services.ErrNotFound, "ratings", "fetch_page",
			fmt.Sprintf("page %s not found", pageURL), nil)
	case resp.StatusCode != http.StatusOK:
		return nil, services.Wrap(services.ErrTransient, "ratings", "fetch_page",
			fmt.Sprintf("page %s returned status %d", pageURL, resp.StatusCode), nil)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "ratings", "fetch_page",
			fmt.Sprintf("parse page %s", pageURL), err)
	}

	c.logger.Debug("fetched rating page",
		logging.String("url", pageURL),
		logging.Duration("elapsed", time.Since(start)))
	return doc, nil
}

// Search returns film page URLs from the site's search results, most
// relevant first, capped at limit.
func (c *Client) Search(ctx context.Context, title string, limit int) ([]string, error) {
	doc, err := c.FetchPage(ctx, c.SearchURL(title))
	if err != nil {
		return nil, err
	}

	links := filmLinks(doc)
	if limit > 0 && len(links) > limit {
		links = links[:limit]
	}

	urls := make([]string, 0, len(links))
	for _, link := range links {
		urls = append(urls, c.baseURL+link)
	}
	return urls, nil
}

// filmLinks collects distinct /film/<slug>/ paths from a parsed document in
// document order.
func filmLinks(doc *html.Node) []string {
	var (
		links []string
		seen  = make(map[string]struct{})
	)
	walk(doc, func(node *html.Node) {
		if node.Type != html.ElementNode || node.Data != "a" {
			return
		}
		href := attr(node, "href")
		if !strings.HasPrefix(href, "/film/") || strings.Count(href, "/") != 3 {
			return
		}
		if !strings.HasSuffix(href, "/") {
			return
		}
		if _, dup := seen[href]; dup {
			return
		}
		seen[href] = struct{}{}
		links = append(links, href)
	})
	return links
}

func walk(node *html.Node, visit func(*html.Node)) {
	visit(node)
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		walk(child, visit)
	}
}

func attr(node *html.Node, name string) string {
	for _, a := range node.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}
