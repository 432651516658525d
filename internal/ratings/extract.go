package ratings

import (
	"encoding/json"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// ExtractRating pulls the aggregate rating from a parsed film page. The
// structured JSON-LD block is authoritative; the social-card meta tag is the
// fallback for pages that omit it. Values outside [0, 5] are treated as
// absent.
func ExtractRating(doc *html.Node) (float64, bool) {
	if value, ok := ratingFromJSONLD(doc); ok {
		return value, true
	}
	return ratingFromMetaTag(doc)
}

// VerifyBackReference reports whether the page links back to the expected
// movie in the catalog. Film pages carry an outbound link of the form
// https://www.themoviedb.org/movie/<id>; a page for a different film either
// lacks the link or names another ID.
func VerifyBackReference(doc *html.Node, movieID int64) bool {
	marker := "themoviedb.org/movie/" + strconv.FormatInt(movieID, 10)
	found := false
	walk(doc, func(node *html.Node) {
		if found || node.Type != html.ElementNode || node.Data != "a" {
			return
		}
		href := attr(node, "href")
		idx := strings.Index(href, marker)
		if idx < 0 {
			return
		}
		rest := href[idx+len(marker):]
		if rest == "" || rest[0] == '/' || rest[0] == '?' {
			found = true
		}
	})
	return found
}

type jsonLDDocument struct {
	AggregateRating *struct {
		RatingValue json.Number `json:"ratingValue"`
	} `json:"aggregateRating"`
}

func ratingFromJSONLD(doc *html.Node) (float64, bool) {
	var (
		value float64
		found bool
	)
	walk(doc, func(node *html.Node) {
		if found || node.Type != html.ElementNode || node.Data != "script" {
			return
		}
		if attr(node, "type") != "application/ld+json" {
			return
		}
		payload := textContent(node)
		// Some pages wrap the block in CDATA comment guards.
		payload = strings.TrimSpace(payload)
		payload = strings.TrimPrefix(payload, "/* <![CDATA[ */")
		payload = strings.TrimSuffix(payload, "/* ]]> */")

		var parsed jsonLDDocument
		if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
			return
		}
		if parsed.AggregateRating == nil {
			return
		}
		rating, err := parsed.AggregateRating.RatingValue.Float64()
		if err != nil || !validRating(rating) {
			return
		}
		value = rating
		found = true
	})
	return value, found
}

func ratingFromMetaTag(doc *html.Node) (float64, bool) {
	var (
		value float64
		found bool
	)
	walk(doc, func(node *html.Node) {
		if found || node.Type != html.ElementNode || node.Data != "meta" {
			return
		}
		name := attr(node, "name")
		if name == "" {
			name = attr(node, "property")
		}
		if name != "twitter:data2" {
			return
		}
		rating, ok := parseOutOfFive(attr(node, "content"))
		if !ok {
			return
		}
		value = rating
		found = true
	})
	return value, found
}

// parseOutOfFive parses strings like "4.35 out of 5".
func parseOutOfFive(content string) (float64, bool) {
	content = strings.TrimSpace(content)
	head, tail, ok := strings.Cut(content, " out of ")
	if !ok || strings.TrimSpace(tail) != "5" {
		return 0, false
	}
	rating, err := strconv.ParseFloat(strings.TrimSpace(head), 64)
	if err != nil || !validRating(rating) {
		return 0, false
	}
	return rating, true
}

func validRating(value float64) bool {
	return value >= 0 && value <= 5
}

func textContent(node *html.Node) string {
	var b strings.Builder
	walk(node, func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
	})
	return b.String()
}
