package ratings

import (
	"fmt"
	"sort"
	"time"
)

// RatingEntry is one point in a team's rating history
type RatingEntry struct {
	Date   time.Time
	Rating int
}

// Team represents a national side, keyed by its unique name.
// Its rating history is an ascending sequence of (date, rating) entries seeded
// with the default rating at the epoch date, so the history is never empty and
// lookups always resolve to something.
type Team struct {
	Name          string
	defaultRating int
	history       []RatingEntry
}

// NewTeam creates a team with the implicit default rating entry at the epoch
func NewTeam(name string, epoch time.Time, defaultRating int) *Team {
	return &Team{
		Name:          name,
		defaultRating: defaultRating,
		history: []RatingEntry{
			{Date: epoch, Rating: defaultRating},
		},
	}
}

/////////////////////////////////////////////////////////////////////////
////// Point-In-Time Rating Lookups
/////////////////////////////////////////////////////////////////////////

// RatingOn is the reporting lookup: the most recent rating entry at or before
// the given date. A query predating the whole history (including the epoch
// seed) degrades to the default rating rather than failing.
func (t *Team) RatingOn(date time.Time) int {
	// history is kept sorted ascending, find the first entry after date
	idx := sort.Search(len(t.history), func(i int) bool {
		return t.history[i].Date.After(date)
	})
	if idx == 0 {
		return t.defaultRating
	}
	return t.history[idx-1].Rating
}

// PreMatchRating is the rating used when computing a match's points change:
// the rating as of the day before the match date. Cutting off a day early
// means a match never reads a value that another same-day update is writing.
// This is deliberately a separate operation from RatingOn.
func (t *Team) PreMatchRating(matchDate time.Time) int {
	return t.RatingOn(matchDate.AddDate(0, 0, -1))
}

/////////////////////////////////////////////////////////////////////////
////// History Mutation (rating engine only)
/////////////////////////////////////////////////////////////////////////

// SetRating appends a rating entry for the given date. Entries must arrive in
// non-decreasing date order; a second entry on the same date replaces the
// first, which is what happens when a team plays twice in one day.
func (t *Team) SetRating(date time.Time, rating int) error {
	last := t.history[len(t.history)-1]
	if date.Before(last.Date) {
		return fmt.Errorf("rating entry for %s at %s predates existing entry at %s",
			t.Name, date.Format("2006-01-02"), last.Date.Format("2006-01-02"))
	}
	if date.Equal(last.Date) {
		t.history[len(t.history)-1].Rating = rating
		return nil
	}
	t.history = append(t.history, RatingEntry{Date: date, Rating: rating})
	return nil
}

// History returns a copy of the team's rating history, oldest first
func (t *Team) History() []RatingEntry {
	out := make([]RatingEntry, len(t.history))
	copy(out, t.history)
	return out
}

// CurrentRating returns the most recent rating on record
func (t *Team) CurrentRating() int {
	return t.history[len(t.history)-1].Rating
}

/////////////////////////////////////////////////////////////////////////
////// Events and Tournaments
/////////////////////////////////////////////////////////////////////////

// Event is a competition series, e.g. "FIFA World Cup"
type Event struct {
	Name string
}

// Tournament is one staging of an event in a particular year
type Tournament struct {
	Event
	Year int
}
