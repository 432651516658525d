package store_test

import (
	"context"
	"testing"
	"time"

	"marquee/internal/store"
	"marquee/internal/testsupport"
)

func TestOpenInitializesSchema(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	row := &store.Screening{
		Cinema:         "prince-charles",
		FilmTitle:      "Seven Samurai (4K Restoration)",
		ScreeningStart: time.Date(2026, 3, 14, 19, 30, 0, 0, time.UTC),
		Director:       "Akira Kurosawa",
	}
	inserted, err := st.Insert(ctx, row)
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if !inserted || row.ID == 0 {
		t.Fatalf("expected row to be inserted with an ID, got inserted=%v id=%d", inserted, row.ID)
	}

	fetched, err := st.GetByID(ctx, row.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fetched == nil || fetched.FilmTitle != "Seven Samurai (4K Restoration)" {
		t.Fatalf("unexpected fetched row: %#v", fetched)
	}
	if fetched.Resolved() || fetched.Rated() {
		t.Fatalf("new row should be unresolved and unrated: %#v", fetched)
	}
}

func TestReopenExistingDatabase(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	st.Close()

	reopened, err := store.OpenPath(cfg.StorePath())
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	reopened.Close()
}

func TestInsertIgnoresDuplicates(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	start := time.Date(2026, 4, 1, 18, 0, 0, 0, time.UTC)
	first := &store.Screening{Cinema: "bfi", FilmTitle: "Playtime", ScreeningStart: start}
	if inserted, err := st.Insert(ctx, first); err != nil || !inserted {
		t.Fatalf("first insert: inserted=%v err=%v", inserted, err)
	}

	dup := &store.Screening{Cinema: "bfi", FilmTitle: "Playtime", ScreeningStart: start}
	inserted, err := st.Insert(ctx, dup)
	if err != nil {
		t.Fatalf("duplicate insert errored: %v", err)
	}
	if inserted {
		t.Fatal("expected duplicate insert to be ignored")
	}

	rows, err := st.List(ctx, store.ListOptions{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
}

func TestListFilters(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	rated := testsupport.InsertScreening(t, st, &store.Screening{Cinema: "bfi", FilmTitle: "Playtime"})
	testsupport.InsertScreening(t, st, &store.Screening{Cinema: "bfi", FilmTitle: "Stalker"})
	testsupport.InsertScreening(t, st, &store.Screening{Cinema: "prince-charles", FilmTitle: "Ran"})

	rating := 4.3
	err := st.ApplyChunk(ctx,
		[]store.IdentityUpdate{{RecordID: rated.ID, MovieID: 9428, Director: "Jacques Tati"}},
		[]store.RatingUpdate{{MovieID: 9428, Rating: &rating, RatingURL: "https://example.com/film/playtime/"}},
	)
	if err != nil {
		t.Fatalf("ApplyChunk failed: %v", err)
	}

	missing, err := st.List(ctx, store.ListOptions{MissingRatingOnly: true})
	if err != nil {
		t.Fatalf("List missing failed: %v", err)
	}
	if len(missing) != 2 {
		t.Fatalf("expected 2 unrated rows, got %d", len(missing))
	}
	for _, row := range missing {
		if row.FilmTitle == "Playtime" {
			t.Fatal("rated row should be excluded from missing-rating list")
		}
	}

	byCinema, err := st.List(ctx, store.ListOptions{Cinema: "prince-charles"})
	if err != nil {
		t.Fatalf("List by cinema failed: %v", err)
	}
	if len(byCinema) != 1 || byCinema[0].FilmTitle != "Ran" {
		t.Fatalf("unexpected cinema filter result: %#v", byCinema)
	}

	limited, err := st.List(ctx, store.ListOptions{Limit: 1})
	if err != nil {
		t.Fatalf("List limited failed: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("expected limit of 1, got %d rows", len(limited))
	}
}

func TestApplyChunkUpdatesAllRowsForMovie(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	first := testsupport.InsertScreening(t, st, &store.Screening{
		Cinema:         "bfi",
		FilmTitle:      "Tokyo Story",
		ScreeningStart: time.Date(2026, 5, 2, 14, 0, 0, 0, time.UTC),
	})
	second := testsupport.InsertScreening(t, st, &store.Screening{
		Cinema:         "prince-charles",
		FilmTitle:      "Tokyo Story (70th Anniversary)",
		ScreeningStart: time.Date(2026, 5, 9, 20, 15, 0, 0, time.UTC),
	})

	rating := 4.6
	err := st.ApplyChunk(ctx,
		[]store.IdentityUpdate{
			{
				RecordID:    first.ID,
				MovieID:     18148,
				Director:    "Yasujirō Ozu",
				ReleaseDate: "1953-11-03",
				Synopsis:    "An elderly couple visit their grown children in Tokyo.",
				Genres:      []string{"Drama"},
				IMDBID:      "tt0046438",
			},
			{
				RecordID: second.ID,
				MovieID:  18148,
				Director: "Yasujirō Ozu",
			},
		},
		[]store.RatingUpdate{{MovieID: 18148, Rating: &rating, RatingURL: "https://example.com/film/tokyo-story/"}},
	)
	if err != nil {
		t.Fatalf("ApplyChunk failed: %v", err)
	}

	for _, id := range []int64{first.ID, second.ID} {
		row, err := st.GetByID(ctx, id)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if row.MovieID != 18148 {
			t.Fatalf("row %d not bound to canonical movie: %#v", id, row)
		}
		if row.Rating == nil || *row.Rating != 4.6 {
			t.Fatalf("row %d missing propagated rating: %#v", id, row)
		}
		if row.RatingURL != "https://example.com/film/tokyo-story/" {
			t.Fatalf("row %d missing rating URL: %#v", id, row)
		}
	}

	enriched, err := st.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(enriched.Genres) != 1 || enriched.Genres[0] != "Drama" {
		t.Fatalf("genres not persisted: %#v", enriched.Genres)
	}
	if enriched.IMDBID != "tt0046438" {
		t.Fatalf("imdb id not persisted: %#v", enriched)
	}
}

func TestSummaries(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	resolved := testsupport.InsertScreening(t, st, &store.Screening{Cinema: "bfi", FilmTitle: "Playtime"})
	testsupport.InsertScreening(t, st, &store.Screening{Cinema: "bfi", FilmTitle: "Stalker"})

	rating := 4.3
	if err := st.ApplyChunk(ctx,
		[]store.IdentityUpdate{{RecordID: resolved.ID, MovieID: 9428}},
		[]store.RatingUpdate{{MovieID: 9428, Rating: &rating}},
	); err != nil {
		t.Fatalf("ApplyChunk failed: %v", err)
	}

	summaries, err := st.Summaries(ctx)
	if err != nil {
		t.Fatalf("Summaries failed: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected one cinema summary, got %d", len(summaries))
	}
	got := summaries[0]
	if got.Cinema != "bfi" || got.Total != 2 || got.Resolved != 1 || got.Rated != 1 {
		t.Fatalf("unexpected summary: %#v", got)
	}
}
