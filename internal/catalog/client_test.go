package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchMovieWithOptions(t *testing.T) {
	var gotQuery, gotYear string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		gotQuery = r.URL.Query().Get("query")
		gotYear = r.URL.Query().Get("primary_release_year")
		if r.URL.Query().Get("api_key") != "test-key" {
			t.Error("api key not forwarded")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page":1,"results":[{"id":352,"title":"Killer of Sheep","release_date":"1977-11-14","popularity":4.2,"vote_count":120}],"total_pages":1,"total_results":1}`))
	}))
	defer server.Close()

	client, err := New("test-key", server.URL, "en-US")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	resp, err := client.SearchMovieWithOptions(context.Background(), "Killer of Sheep", SearchOptions{Year: 1977})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if gotQuery != "Killer of Sheep" {
		t.Errorf("query = %q", gotQuery)
	}
	if gotYear != "1977" {
		t.Errorf("year filter = %q", gotYear)
	}
	if len(resp.Results) != 1 || resp.Results[0].ID != 352 {
		t.Errorf("unexpected results: %+v", resp.Results)
	}
}

func TestSearchOmitsYearWhenZero(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("primary_release_year") {
			t.Error("year filter should be omitted")
		}
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	client, err := New("k", server.URL, "")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := client.SearchMovieWithOptions(context.Background(), "Jaws", SearchOptions{}); err != nil {
		t.Fatalf("search failed: %v", err)
	}
}

func TestGetMovieDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/352" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("append_to_response") != "credits,external_ids" {
			t.Error("expected appended credits and external ids")
		}
		_, _ = w.Write([]byte(`{
			"id":352,"title":"Killer of Sheep","overview":"Stan works in a slaughterhouse.",
			"release_date":"1977-11-14",
			"genres":[{"id":18,"name":"Drama"}],
			"credits":{"crew":[{"name":"Charles Burnett","job":"Director"},{"name":"Someone Else","job":"Editor"}]},
			"external_ids":{"imdb_id":"tt0077473"}
		}`))
	}))
	defer server.Close()

	client, err := New("k", server.URL, "")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	details, err := client.GetMovieDetails(context.Background(), 352)
	if err != nil {
		t.Fatalf("details failed: %v", err)
	}
	directors := details.Directors()
	if len(directors) != 1 || directors[0] != "Charles Burnett" {
		t.Errorf("Directors() = %v", directors)
	}
	if got := details.GenreNames(); len(got) != 1 || got[0] != "Drama" {
		t.Errorf("GenreNames() = %v", got)
	}
	if details.ExternalIDs.IMDBID != "tt0077473" {
		t.Errorf("imdb id = %q", details.ExternalIDs.IMDBID)
	}
}

func TestClientErrors(t *testing.T) {
	if _, err := New("", "http://example", ""); err == nil {
		t.Error("empty api key should fail")
	}
	if _, err := New("k", "", ""); err == nil {
		t.Error("empty base url should fail")
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()
	client, _ := New("k", server.URL, "")
	if _, err := client.SearchMovieWithOptions(context.Background(), "Jaws", SearchOptions{}); err == nil {
		t.Error("non-200 should surface as error")
	}
	if _, err := client.GetMovieDetails(context.Background(), 0); err == nil {
		t.Error("non-positive id should fail")
	}
}
