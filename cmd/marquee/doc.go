// Command marquee manages the screening metadata store: ingesting scraped
// listings, running the enrichment pipeline, and inspecting results.
package main
