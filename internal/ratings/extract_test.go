package ratings_test

import (
	"strings"
	"testing"

	"golang.org/x/net/html"

	"marquee/internal/ratings"
)

func parsePage(t *testing.T, body string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		t.Fatalf("parse page: %v", err)
	}
	return doc
}

func TestExtractRatingFromJSONLD(t *testing.T) {
	page := `<html><head>
<script type="application/ld+json">
/* <![CDATA[ */
{"@type":"Movie","name":"Tokyo Story","aggregateRating":{"ratingValue":4.48,"ratingCount":120543}}
/* ]]> */
</script>
<meta name="twitter:data2" content="3.00 out of 5" />
</head><body></body></html>`

	rating, found := ratings.ExtractRating(parsePage(t, page))
	if !found {
		t.Fatal("expected rating to be found")
	}
	if rating != 4.48 {
		t.Fatalf("expected structured rating 4.48 to win over meta tag, got %v", rating)
	}
}

func TestExtractRatingFallsBackToMetaTag(t *testing.T) {
	page := `<html><head>
<script type="application/ld+json">{"@type":"Movie","name":"Obscure Short"}</script>
<meta name="twitter:data2" content="4.35 out of 5" />
</head><body></body></html>`

	rating, found := ratings.ExtractRating(parsePage(t, page))
	if !found || rating != 4.35 {
		t.Fatalf("expected meta tag rating 4.35, got %v (found=%v)", rating, found)
	}
}

func TestExtractRatingAbsent(t *testing.T) {
	cases := []struct {
		name string
		page string
	}{
		{"no markers", `<html><head></head><body><p>No ratings here.</p></body></html>`},
		{"malformed json", `<html><head><script type="application/ld+json">{not json</script></head></html>`},
		{"out of range", `<html><head><meta name="twitter:data2" content="7.5 out of 5" /></head></html>`},
		{"wrong denominator", `<html><head><meta name="twitter:data2" content="8.1 out of 10" /></head></html>`},
		{"unrelated data", `<html><head><meta name="twitter:data2" content="136 minutes" /></head></html>`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if rating, found := ratings.ExtractRating(parsePage(t, tc.page)); found {
				t.Fatalf("expected no rating, got %v", rating)
			}
		})
	}
}

func TestVerifyBackReference(t *testing.T) {
	page := `<html><body>
<a href="https://www.themoviedb.org/movie/18148/" data-track-action="TMDB">TMDB</a>
<a href="https://www.imdb.com/title/tt0046438/">IMDb</a>
</body></html>`
	doc := parsePage(t, page)

	if !ratings.VerifyBackReference(doc, 18148) {
		t.Fatal("expected back reference to verify")
	}
	if ratings.VerifyBackReference(doc, 1814) {
		t.Fatal("prefix of the real ID must not verify")
	}
	if ratings.VerifyBackReference(doc, 99999) {
		t.Fatal("unrelated ID must not verify")
	}
}
