package ratings

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/RexBanner6000/womens-international-2023/internal/logger"
)

// ResultsDataset owns every Team, Event, Tournament and Match created during a
// run, keeps a per-team match index for form queries, and drives the rating
// engine over matches in chronological order. There is one writer phase
// (Ingest then CalculateRatings); after that the dataset is read-only.
type ResultsDataset struct {
	params Params
	rater  Rater

	teams       []*Team
	events      []*Event
	tournaments []*Tournament
	matches     []*Match

	teamIndex     map[string]*Team
	eventIndex    map[string]*Event
	matchesByTeam map[string][]*Match

	rated bool
}

// NewResultsDataset creates an empty dataset with the given parameters
func NewResultsDataset(params Params) *ResultsDataset {
	return &ResultsDataset{
		params:        params,
		teamIndex:     make(map[string]*Team),
		eventIndex:    make(map[string]*Event),
		matchesByTeam: make(map[string][]*Match),
	}
}

/////////////////////////////////////////////////////////////////////////
////// Entity Creation and Deduplication
/////////////////////////////////////////////////////////////////////////

// GetOrCreateTeam returns the team with the given name, creating it on first
// sight. Creation order is preserved; it is the tie-break for rankings.
func (d *ResultsDataset) GetOrCreateTeam(name string) *Team {
	if team, ok := d.teamIndex[name]; ok {
		return team
	}
	team := NewTeam(name, d.params.Epoch, d.params.DefaultRating)
	d.teams = append(d.teams, team)
	d.teamIndex[name] = team
	return team
}

// GetTeam looks up an existing team by exact name
func (d *ResultsDataset) GetTeam(name string) (*Team, bool) {
	team, ok := d.teamIndex[name]
	return team, ok
}

// GetOrCreateEvent returns the event with the given name, creating it on miss
func (d *ResultsDataset) GetOrCreateEvent(name string) *Event {
	if event, ok := d.eventIndex[name]; ok {
		return event
	}
	event := &Event{Name: name}
	d.events = append(d.events, event)
	d.eventIndex[name] = event
	return event
}

// GetOrCreateTournament returns the tournament for (event name, year), where
// the pair is the identity. The event is created too if it is new.
func (d *ResultsDataset) GetOrCreateTournament(eventName string, year int) *Tournament {
	event := d.GetOrCreateEvent(eventName)
	for _, tournament := range d.tournaments {
		if tournament.Name == event.Name && tournament.Year == year {
			return tournament
		}
	}
	tournament := &Tournament{Event: *event, Year: year}
	d.tournaments = append(d.tournaments, tournament)
	return tournament
}

/////////////////////////////////////////////////////////////////////////
////// Ingestion
/////////////////////////////////////////////////////////////////////////

// Ingest builds matches from the given rows. Rows are re-sorted ascending by
// date before any match is constructed; the rating engine relies on that
// order. Teams, events and tournaments are deduplicated, matches are not, so
// ingesting identical rows twice doubles the match count only.
func (d *ResultsDataset) Ingest(rows []Row) error {
	if d.rated {
		return fmt.Errorf("cannot ingest rows after ratings have been calculated")
	}

	sorted := make([]Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	for _, row := range sorted {
		match := &Match{
			ID:         uuid.NewString(),
			HomeTeam:   d.GetOrCreateTeam(row.HomeTeam),
			AwayTeam:   d.GetOrCreateTeam(row.AwayTeam),
			Date:       row.Date,
			HomeScore:  row.HomeScore,
			AwayScore:  row.AwayScore,
			Tournament: d.GetOrCreateTournament(row.Tournament, row.Date.Year()),
			City:       row.City,
			Country:    row.Country,
			Neutral:    row.Neutral,
			Type:       ClassifyTournament(row.Tournament),
		}
		d.matches = append(d.matches, match)
		d.matchesByTeam[match.HomeTeam.Name] = append(d.matchesByTeam[match.HomeTeam.Name], match)
		d.matchesByTeam[match.AwayTeam.Name] = append(d.matchesByTeam[match.AwayTeam.Name], match)
	}

	logger.Info("Ingested rows into dataset", len(sorted))
	logger.Debug("Dataset now holds", len(d.teams), "teams,", len(d.events), "events,", len(d.tournaments), "tournaments,", len(d.matches), "matches")
	return nil
}

// CalculateRatings runs the rating engine over every match in dataset order.
// It must be called exactly once, after all ingestion; the date order of the
// match list is verified first because processing out of order silently
// corrupts every subsequent rating read.
func (d *ResultsDataset) CalculateRatings() error {
	if d.rated {
		return fmt.Errorf("ratings have already been calculated")
	}
	for i := 1; i < len(d.matches); i++ {
		if d.matches[i].Date.Before(d.matches[i-1].Date) {
			return fmt.Errorf("match list out of date order at index %d (%s before %s)",
				i, d.matches[i].Date.Format("2006-01-02"), d.matches[i-1].Date.Format("2006-01-02"))
		}
	}

	for _, match := range d.matches {
		if err := d.rater.UpdateRatings(match); err != nil {
			return fmt.Errorf("rating update failed for %s vs %s on %s: %w",
				match.HomeTeam.Name, match.AwayTeam.Name, match.Date.Format("2006-01-02"), err)
		}
	}
	d.rated = true

	logger.Info("Calculated ratings for matches", len(d.matches))
	return nil
}

/////////////////////////////////////////////////////////////////////////
////// Ranking Snapshots
/////////////////////////////////////////////////////////////////////////

// UnrankedSentinel is the rank reported for inactive or unknown teams.
// Inactive teams never enter the rating comparison at all: they are filtered
// out before sorting, so the ordering over ranked teams is total without ever
// comparing against a sentinel value.
const UnrankedSentinel = 0

// Rankings produces a dense 1-based rank per team at the given date. A team is
// active when it has played strictly before the date and within the activity
// window; active teams are ordered by rating descending with ties broken by
// team creation order (stable sort, no secondary key). Inactive teams still
// appear in the returned map, carrying UnrankedSentinel.
func (d *ResultsDataset) Rankings(date time.Time) map[string]int {
	window := time.Duration(d.params.ActivityWindowYears) * 365 * 24 * time.Hour

	rankings := make(map[string]int, len(d.teams))
	active := make([]*Team, 0, len(d.teams))
	for _, team := range d.teams {
		lastPlayed, ok := d.LastPlayed(team.Name, date)
		if !ok || date.Sub(lastPlayed) >= window {
			rankings[team.Name] = UnrankedSentinel
			continue
		}
		active = append(active, team)
	}

	sort.SliceStable(active, func(i, j int) bool {
		return active[i].RatingOn(date) > active[j].RatingOn(date)
	})
	for rank, team := range active {
		rankings[team.Name] = rank + 1
	}
	return rankings
}

// LastPlayed returns the date of the team's most recent match strictly before
// the given date, or false when no such match exists
func (d *ResultsDataset) LastPlayed(teamName string, date time.Time) (time.Time, bool) {
	matches := d.matchesByTeam[teamName]
	for i := len(matches) - 1; i >= 0; i-- {
		if matches[i].Date.Before(date) {
			return matches[i].Date, true
		}
	}
	return time.Time{}, false
}

/////////////////////////////////////////////////////////////////////////
////// Recent Form Queries
/////////////////////////////////////////////////////////////////////////

// LastNGames returns the team's trailing n matches strictly before the date,
// oldest first. Teams with fewer prior matches get everything they have.
func (d *ResultsDataset) LastNGames(teamName string, date time.Time, n int) []*Match {
	var prior []*Match
	for _, match := range d.matchesByTeam[teamName] {
		if match.Date.Before(date) {
			prior = append(prior, match)
		}
	}
	if len(prior) <= n {
		return prior
	}
	return prior[len(prior)-n:]
}

// MatchesInWindow returns the team's matches with dates inside the open
// interval (date - windowDays, date)
func (d *ResultsDataset) MatchesInWindow(teamName string, date time.Time, windowDays int) []*Match {
	cutoff := date.AddDate(0, 0, -windowDays)
	var recent []*Match
	for _, match := range d.matchesByTeam[teamName] {
		if match.Date.After(cutoff) && match.Date.Before(date) {
			recent = append(recent, match)
		}
	}
	return recent
}

// GoalsForAndAgainst sums goals scored and conceded across the given matches
// from the named team's perspective, attributing home and away roles per match
func GoalsForAndAgainst(teamName string, matches []*Match) (scored int, conceded int) {
	for _, match := range matches {
		if match.HomeTeam.Name == teamName {
			scored += match.HomeScore
			conceded += match.AwayScore
		} else if match.AwayTeam.Name == teamName {
			scored += match.AwayScore
			conceded += match.HomeScore
		}
	}
	return scored, conceded
}

/////////////////////////////////////////////////////////////////////////
////// Accessors
/////////////////////////////////////////////////////////////////////////

// Teams returns the owned teams in creation order
func (d *ResultsDataset) Teams() []*Team { return d.teams }

// Events returns the owned events in creation order
func (d *ResultsDataset) Events() []*Event { return d.events }

// Tournaments returns the owned tournaments in creation order
func (d *ResultsDataset) Tournaments() []*Tournament { return d.tournaments }

// Matches returns the owned matches in date order
func (d *ResultsDataset) Matches() []*Match { return d.matches }

// Params returns the parameters the dataset was built with
func (d *ResultsDataset) Params() Params { return d.params }

// Rated reports whether CalculateRatings has completed
func (d *ResultsDataset) Rated() bool { return d.rated }
