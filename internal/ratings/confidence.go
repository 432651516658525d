package ratings

// Confidence grades how a rating page URL was matched to a movie.
type Confidence string

const (
	// ConfidenceVerified means the page's catalog back-reference named the
	// expected movie.
	ConfidenceVerified Confidence = "verified"
	// ConfidenceUnverified means the URL came from a search result whose
	// back-reference could not be confirmed.
	ConfidenceUnverified Confidence = "unverified"
	// ConfidenceNone means no page could be found for the movie.
	ConfidenceNone Confidence = "none"
)

// Binding is the outcome of resolving one movie to a rating page.
type Binding struct {
	URL        string
	Confidence Confidence
}

// Usable reports whether the binding carries a URL worth fetching.
func (b Binding) Usable() bool {
	return b.URL != "" && b.Confidence != ConfidenceNone
}
