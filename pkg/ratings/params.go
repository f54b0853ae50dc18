package ratings

import "time"

// Params carries the named constants the dataset depends on.
// These are injected at construction time rather than read from package globals
// so a caller (or a test) can run several datasets with different settings.
type Params struct {
	// DefaultRating is the rating assumed for any team before its first match,
	// and returned by lookups that find no qualifying history entry.
	DefaultRating int

	// Epoch is the sentinel date carrying the implicit default rating entry.
	// It must predate every real match in the input.
	Epoch time.Time

	// ActivityWindowYears marks a team inactive for ranking purposes when its
	// last match is at least this many years before the snapshot date.
	ActivityWindowYears int

	// RecentFormGames is the trailing match count for scored/conceded totals.
	RecentFormGames int

	// RecentFormWindowDays bounds the day window for recent-match queries.
	RecentFormWindowDays int
}

// DefaultParams returns the standard parameters used by the pipeline
func DefaultParams() Params {
	return Params{
		DefaultRating:        1500,
		Epoch:                time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC),
		ActivityWindowYears:  4,
		RecentFormGames:      5,
		RecentFormWindowDays: 90,
	}
}
