package testsupport

import (
	"context"
	"testing"
	"time"

	"marquee/internal/config"
	"marquee/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// InsertScreening persists a screening row for tests using the provided store.
func InsertScreening(t testing.TB, st *store.Store, row *store.Screening) *store.Screening {
	t.Helper()

	if row.ScreeningStart.IsZero() {
		row.ScreeningStart = time.Date(2026, 3, 14, 19, 30, 0, 0, time.UTC)
	}
	inserted, err := st.Insert(context.Background(), row)
	if err != nil {
		t.Fatalf("store.Insert: %v", err)
	}
	if !inserted {
		t.Fatalf("store.Insert: duplicate row %q/%q", row.Cinema, row.FilmTitle)
	}
	return row
}
