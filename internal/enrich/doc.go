// Package enrich drives the full pipeline over the screening store: title
// normalization, catalog disambiguation, identity propagation, rating page
// resolution, and rating extraction, committed chunk by chunk so an
// interrupted run loses at most one chunk of work.
package enrich
