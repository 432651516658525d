// Package services defines the shared error taxonomy for the enrichment
// pipeline. Errors are tagged with sentinel markers so the batch driver can
// decide whether a failure aborts the run (configuration) or is recovered by
// skipping the current item (everything else).
package services
