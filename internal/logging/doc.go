// Package logging wraps log/slog with the helper surface the rest of the
// codebase uses: typed attribute constructors, standard field names, and
// console/JSON handler construction from configuration.
package logging
