// Package config loads, normalizes, and validates the TOML configuration for
// the enrichment pipeline. Validation failures are configuration-class errors:
// nothing downstream can run without a usable catalogue key and store path.
package config
