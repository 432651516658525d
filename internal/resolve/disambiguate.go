package resolve

import (
	"context"
	"log/slog"
	"strings"

	"marquee/internal/catalog"
	"marquee/internal/logging"
	"marquee/internal/textutil"
)

// Query carries the normalized search inputs for one screening record.
type Query struct {
	// Title is the normalized search title.
	Title string
	// Year is the year hint, zero when unknown.
	Year int
	// Director is the venue-supplied director, empty when the listing had
	// none.
	Director string
}

// Disambiguator selects a canonical movie among search candidates.
type Disambiguator struct {
	search     *catalogSearch
	fetchLimit int
	logger     *slog.Logger
}

// NewDisambiguator constructs a Disambiguator. fetchLimit bounds how many
// candidate detail fetches a director comparison may cost per record.
func NewDisambiguator(client catalog.Searcher, fetchLimit int, logger *slog.Logger) *Disambiguator {
	if logger == nil {
		logger = logging.NewNop()
	}
	if fetchLimit <= 0 {
		fetchLimit = 20
	}
	return &Disambiguator{
		search:     newCatalogSearch(client),
		fetchLimit: fetchLimit,
		logger:     logging.NewComponentLogger(logger, "disambiguator"),
	}
}

// Resolve searches the catalog and selects the best candidate for the query.
// A nil Identity with a nil error means the record could not be resolved
// with confidence; callers must not treat that as a failure.
func (d *Disambiguator) Resolve(ctx context.Context, query Query) (*Identity, error) {
	candidates, err := d.search.candidates(ctx, query.Title, query.Year)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		d.logger.Debug("no candidates",
			logging.String("title", query.Title),
			logging.Int("year", query.Year))
		return nil, nil
	}

	chosen, directorChecked := d.choose(ctx, candidates, query)

	if query.Director != "" && !directorChecked {
		if !d.directorMatches(ctx, chosen.ID, query.Director) {
			// One re-selection restricted to director-matching candidates.
			matching := d.directorMatching(ctx, candidates, query.Director)
			if len(matching) == 0 {
				d.logger.Info("director contradiction, leaving unresolved",
					logging.String("title", query.Title),
					logging.String("director", query.Director))
				return nil, nil
			}
			chosen = pickByScore(matching)
		}
	}

	details, err := d.search.movieDetails(ctx, chosen.ID)
	if err != nil {
		return nil, err
	}
	return identityFromDetails(details), nil
}

// choose applies the selection rules in order. The bool reports whether the
// returned candidate already passed a director comparison.
func (d *Disambiguator) choose(ctx context.Context, candidates []catalog.Result, query Query) (catalog.Result, bool) {
	if query.Director != "" {
		matching := d.directorMatching(ctx, candidates, query.Director)
		if len(matching) > 0 {
			if exact := exactNormalizedMatches(matching, query.Title); len(exact) > 0 {
				return pickByScore(exact), true
			}
			return pickByScore(matching), true
		}
	}

	if query.Year > 0 {
		var sameYear []catalog.Result
		for _, c := range candidates {
			if releaseYear(c.ReleaseDate) == query.Year {
				sameYear = append(sameYear, c)
			}
		}
		if len(sameYear) > 0 {
			return pickByScore(sameYear), false
		}
	}

	var exact []catalog.Result
	for _, c := range candidates {
		if strings.EqualFold(c.Title, query.Title) || strings.EqualFold(c.OriginalTitle, query.Title) {
			exact = append(exact, c)
		}
	}
	if len(exact) > 0 {
		return pickByScore(exact), false
	}

	if normalized := exactNormalizedMatches(candidates, query.Title); len(normalized) > 0 {
		return pickByScore(normalized), false
	}

	var overlapping []catalog.Result
	for _, c := range candidates {
		if textutil.SharesSignificantWord(c.Title, query.Title) ||
			textutil.SharesSignificantWord(c.OriginalTitle, query.Title) {
			overlapping = append(overlapping, c)
		}
	}
	if len(overlapping) > 0 {
		return pickByScore(overlapping), false
	}

	return pickByScore(candidates), false
}

// directorMatching fetches credited directors for the leading candidates and
// keeps those matching the supplied name. Detail fetch failures drop the
// candidate from consideration rather than failing the record.
func (d *Disambiguator) directorMatching(ctx context.Context, candidates []catalog.Result, director string) []catalog.Result {
	limit := len(candidates)
	if limit > d.fetchLimit {
		limit = d.fetchLimit
	}

	var matching []catalog.Result
	for _, c := range candidates[:limit] {
		if d.directorMatches(ctx, c.ID, director) {
			matching = append(matching, c)
		}
	}
	return matching
}

func (d *Disambiguator) directorMatches(ctx context.Context, movieID int64, director string) bool {
	details, err := d.search.movieDetails(ctx, movieID)
	if err != nil {
		d.logger.Debug("detail fetch failed during director check",
			logging.Int64(logging.FieldMovieID, movieID),
			logging.Error(err))
		return false
	}
	return DirectorsMatch(director, details.Directors())
}

func exactNormalizedMatches(candidates []catalog.Result, title string) []catalog.Result {
	want := textutil.NormalizeForComparison(title)
	if want == "" {
		return nil
	}
	var matches []catalog.Result
	for _, c := range candidates {
		if textutil.NormalizeForComparison(c.Title) == want ||
			textutil.NormalizeForComparison(c.OriginalTitle) == want {
			matches = append(matches, c)
		}
	}
	return matches
}

func score(c catalog.Result) float64 {
	return 2*float64(c.VoteCount) + c.Popularity
}

// pickByScore returns the highest-scoring candidate, keeping source order on
// ties.
func pickByScore(candidates []catalog.Result) catalog.Result {
	best := candidates[0]
	bestScore := score(best)
	for _, c := range candidates[1:] {
		if s := score(c); s > bestScore {
			best = c
			bestScore = s
		}
	}
	return best
}

func releaseYear(releaseDate string) int {
	if len(releaseDate) < 4 {
		return 0
	}
	year := 0
	for _, r := range releaseDate[:4] {
		if r < '0' || r > '9' {
			return 0
		}
		year = year*10 + int(r-'0')
	}
	return year
}
