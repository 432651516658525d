// Package ratings resolves canonical movies to pages on the community
// rating site and extracts aggregate ratings from those pages.
//
// Resolution prefers exact slug guesses verified by the page's catalog
// back-reference, falls back to the site's search, and records how much
// trust each resolved URL deserves so callers can weigh the result.
package ratings
