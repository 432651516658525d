// Package catalog provides access to the canonical movie catalogue API
// (TMDB-shaped) used to resolve screening titles to stable movie identities.
package catalog
