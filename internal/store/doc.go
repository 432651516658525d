// Package store persists screening rows in SQLite and applies enrichment
// results in per-chunk transactions keyed by canonical movie ID.
package store
