package logging

// Standardized attribute keys used across the pipeline so log output stays
// greppable regardless of which component emitted it.
const (
	FieldComponent = "component"
	FieldEventType = "event_type"
	FieldErrorHint = "error_hint"
	FieldImpact    = "impact"
	FieldRunID     = "run_id"
	FieldCinema    = "cinema"
	FieldMovieID   = "movie_id"
)
