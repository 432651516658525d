package ratings_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"marquee/internal/ratings"
)

type fakeSite struct {
	films    map[string]string // slug -> page body
	searches map[string]string // search slug -> page body
	requests atomic.Int64
}

func (f *fakeSite) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/film/", func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		slug := filepath.Base(r.URL.Path)
		body, ok := f.films[slug]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, body)
	})
	mux.HandleFunc("/search/films/", func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		slug := filepath.Base(r.URL.Path)
		body, ok := f.searches[slug]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, body)
	})
	return mux
}

func filmPage(movieID int64, rating string) string {
	return fmt.Sprintf(`<html><head>
<meta name="twitter:data2" content="%s out of 5" />
</head><body>
<a href="https://www.themoviedb.org/movie/%d/">TMDB</a>
</body></html>`, rating, movieID)
}

func searchPage(slugs ...string) string {
	body := "<html><body><ul>"
	for _, slug := range slugs {
		body += fmt.Sprintf(`<li><a href="/film/%s/">%s</a></li>`, slug, slug)
	}
	return body + "</ul></body></html>"
}

func newResolver(t *testing.T, site *fakeSite) (*ratings.Resolver, *ratings.URLCache) {
	t.Helper()
	server := httptest.NewServer(site.handler())
	t.Cleanup(server.Close)

	client := ratings.NewClient(server.URL, "marquee-test/1.0", 5*time.Second, nil)
	cache := ratings.NewURLCache(filepath.Join(t.TempDir(), "rating_urls.json"), nil)
	return ratings.NewResolver(client, cache, 5, nil), cache
}

func TestResolveBySlugVerified(t *testing.T) {
	site := &fakeSite{
		films: map[string]string{"tokyo-story": filmPage(18148, "4.48")},
	}
	resolver, _ := newResolver(t, site)

	binding, err := resolver.Resolve(context.Background(), 18148, "Tokyo Story", 1953)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if binding.Confidence != ratings.ConfidenceVerified {
		t.Fatalf("expected verified binding, got %#v", binding)
	}
}

func TestResolveYearSuffixedSlug(t *testing.T) {
	site := &fakeSite{
		films: map[string]string{
			"nosferatu":      filmPage(653, "4.0"), // the 1922 original occupies the bare slug
			"nosferatu-2024": filmPage(426063, "3.6"),
		},
	}
	resolver, _ := newResolver(t, site)

	binding, err := resolver.Resolve(context.Background(), 426063, "Nosferatu", 2024)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if binding.Confidence != ratings.ConfidenceVerified {
		t.Fatalf("expected verified binding, got %#v", binding)
	}
	if filepath.Base(filepath.Dir(binding.URL)) != "nosferatu-2024" {
		t.Fatalf("expected year-suffixed slug, got %s", binding.URL)
	}
}

func TestResolveFallsBackToSearchVerified(t *testing.T) {
	site := &fakeSite{
		films: map[string]string{
			"the-housemaid-1960": filmPage(26955, "4.2"),
		},
		searches: map[string]string{
			"the-housemaid": searchPage("the-housemaid-2010", "the-housemaid-1960"),
		},
	}
	// The 2010 remake search hit exists but names another movie.
	site.films["the-housemaid-2010"] = filmPage(44013, "3.2")
	resolver, _ := newResolver(t, site)

	binding, err := resolver.Resolve(context.Background(), 26955, "The Housemaid", 0)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if binding.Confidence != ratings.ConfidenceVerified {
		t.Fatalf("expected verified search result, got %#v", binding)
	}
}

func TestResolveUnverifiedFallback(t *testing.T) {
	site := &fakeSite{
		films: map[string]string{
			// Page exists but its back reference names a different movie.
			"sanshiro-sugata": filmPage(99999, "3.5"),
		},
		searches: map[string]string{
			"sanshiro-sugata": searchPage("sanshiro-sugata"),
		},
	}
	resolver, _ := newResolver(t, site)

	binding, err := resolver.Resolve(context.Background(), 30712, "Sanshiro Sugata", 0)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if binding.Confidence != ratings.ConfidenceUnverified {
		t.Fatalf("expected unverified fallback, got %#v", binding)
	}
}

func TestResolveNone(t *testing.T) {
	site := &fakeSite{}
	resolver, _ := newResolver(t, site)

	binding, err := resolver.Resolve(context.Background(), 12345, "A Film Nobody Logged", 0)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if binding.Confidence != ratings.ConfidenceNone || binding.Usable() {
		t.Fatalf("expected no binding, got %#v", binding)
	}
}

func TestResolveUnverifiableSlugWithEmptySearch(t *testing.T) {
	site := &fakeSite{
		films: map[string]string{
			// The slug exists but belongs to a different film.
			"the-double": filmPage(55555, "3.1"),
		},
		searches: map[string]string{
			"the-double": searchPage(),
		},
	}
	resolver, cache := newResolver(t, site)

	binding, err := resolver.Resolve(context.Background(), 146227, "The Double", 0)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if binding.Usable() {
		t.Fatalf("expected no binding, got %#v", binding)
	}
	if _, found := cache.Lookup(146227); found {
		t.Fatal("a failed resolution must not be cached")
	}
}

func TestResolveUsesCache(t *testing.T) {
	site := &fakeSite{
		films: map[string]string{"playtime": filmPage(9428, "4.3")},
	}
	resolver, _ := newResolver(t, site)

	ctx := context.Background()
	if _, err := resolver.Resolve(ctx, 9428, "Playtime", 1967); err != nil {
		t.Fatalf("first Resolve failed: %v", err)
	}
	before := site.requests.Load()

	binding, err := resolver.Resolve(ctx, 9428, "Playtime", 1967)
	if err != nil {
		t.Fatalf("second Resolve failed: %v", err)
	}
	if binding.Confidence != ratings.ConfidenceVerified {
		t.Fatalf("expected cached verified binding, got %#v", binding)
	}
	if site.requests.Load() != before {
		t.Fatal("cached resolve must not hit the network")
	}
}

func TestFetchRating(t *testing.T) {
	site := &fakeSite{
		films: map[string]string{"tokyo-story": filmPage(18148, "4.48")},
	}
	resolver, _ := newResolver(t, site)

	rating, binding, found, err := resolver.FetchRating(context.Background(), 18148, "Tokyo Story", 1953)
	if err != nil {
		t.Fatalf("FetchRating failed: %v", err)
	}
	if !found || rating != 4.48 {
		t.Fatalf("expected rating 4.48, got %v (found=%v)", rating, found)
	}
	if binding.Confidence != ratings.ConfidenceVerified {
		t.Fatalf("expected verified binding, got %#v", binding)
	}
}
