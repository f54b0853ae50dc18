package ratings

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/RexBanner6000/womens-international-2023/internal/logger"
)

// AliasResolver maps a source team name onto the name used by the dataset.
// It is injected so new source-naming mismatches can be handled without
// touching lookup logic.
type AliasResolver func(name string) string

// DefaultAliasResolver returns the static table of known source-name
// discrepancies, passing unknown names through unchanged
func DefaultAliasResolver() AliasResolver {
	aliases := map[string]string{
		"USA":            "United States",
		"Korea Republic": "South Korea",
	}
	return func(name string) string {
		if mapped, ok := aliases[name]; ok {
			return mapped
		}
		return name
	}
}

// MatchFeatures is one flat training record for a historical match
type MatchFeatures struct {
	Date               time.Time
	HomeTeam           string
	AwayTeam           string
	HomeRating         int
	AwayRating         int
	MatchType          MatchType
	HomeRanking        int
	AwayRanking        int
	HomeRecentScored   int
	AwayRecentScored   int
	HomeRecentConceded int
	AwayRecentConceded int
	Result             Result
}

// FixtureFeatures is one flat record for a hypothetical fixture: the same
// shape as MatchFeatures minus date and outcome, plus the passthrough group
type FixtureFeatures struct {
	HomeTeam           string
	AwayTeam           string
	HomeRating         int
	AwayRating         int
	MatchType          MatchType
	HomeRanking        int
	AwayRanking        int
	HomeRecentScored   int
	AwayRecentScored   int
	HomeRecentConceded int
	AwayRecentConceded int
	Group              string
}

/////////////////////////////////////////////////////////////////////////
////// Record Construction
/////////////////////////////////////////////////////////////////////////

// MatchFeatures converts a historical match into a training record using
// point-in-time queries: pre-match ratings, the ranking snapshot at the match
// date, and scored/conceded totals over the trailing form window
func (d *ResultsDataset) MatchFeatures(m *Match) *MatchFeatures {
	rankings := d.Rankings(m.Date)
	lastHome := d.LastNGames(m.HomeTeam.Name, m.Date, d.params.RecentFormGames)
	lastAway := d.LastNGames(m.AwayTeam.Name, m.Date, d.params.RecentFormGames)
	homeScored, homeConceded := GoalsForAndAgainst(m.HomeTeam.Name, lastHome)
	awayScored, awayConceded := GoalsForAndAgainst(m.AwayTeam.Name, lastAway)

	return &MatchFeatures{
		Date:               m.Date,
		HomeTeam:           m.HomeTeam.Name,
		AwayTeam:           m.AwayTeam.Name,
		HomeRating:         m.HomeTeam.PreMatchRating(m.Date),
		AwayRating:         m.AwayTeam.PreMatchRating(m.Date),
		MatchType:          m.Type,
		HomeRanking:        rankings[m.HomeTeam.Name],
		AwayRanking:        rankings[m.AwayTeam.Name],
		HomeRecentScored:   homeScored,
		AwayRecentScored:   awayScored,
		HomeRecentConceded: homeConceded,
		AwayRecentConceded: awayConceded,
		Result:             m.Result(),
	}
}

// FixtureFeatures builds a record for a matchup with no date in the historical
// record. The caller supplies the assumed date and importance tier; team names
// go through the alias resolver before lookup. Unlike rating lookups, a team
// completely absent from the dataset is an error here: a feature row for a
// team with no history would be meaningless to the classifier.
func (d *ResultsDataset) FixtureFeatures(fixture Fixture, date time.Time, matchType MatchType, resolve AliasResolver) (*FixtureFeatures, error) {
	if resolve == nil {
		resolve = DefaultAliasResolver()
	}
	homeTeam, ok := d.GetTeam(resolve(fixture.HomeTeam))
	if !ok {
		return nil, fmt.Errorf("unknown home team %q (resolved to %q)", fixture.HomeTeam, resolve(fixture.HomeTeam))
	}
	awayTeam, ok := d.GetTeam(resolve(fixture.AwayTeam))
	if !ok {
		return nil, fmt.Errorf("unknown away team %q (resolved to %q)", fixture.AwayTeam, resolve(fixture.AwayTeam))
	}

	rankings := d.Rankings(date)
	lastHome := d.LastNGames(homeTeam.Name, date, d.params.RecentFormGames)
	lastAway := d.LastNGames(awayTeam.Name, date, d.params.RecentFormGames)
	homeScored, homeConceded := GoalsForAndAgainst(homeTeam.Name, lastHome)
	awayScored, awayConceded := GoalsForAndAgainst(awayTeam.Name, lastAway)

	return &FixtureFeatures{
		HomeTeam:           homeTeam.Name,
		AwayTeam:           awayTeam.Name,
		HomeRating:         homeTeam.RatingOn(date),
		AwayRating:         awayTeam.RatingOn(date),
		MatchType:          matchType,
		HomeRanking:        rankings[homeTeam.Name],
		AwayRanking:        rankings[awayTeam.Name],
		HomeRecentScored:   homeScored,
		AwayRecentScored:   awayScored,
		HomeRecentConceded: homeConceded,
		AwayRecentConceded: awayConceded,
		Group:              fixture.Group,
	}, nil
}

/////////////////////////////////////////////////////////////////////////
////// CSV Export
/////////////////////////////////////////////////////////////////////////

var trainingHeader = []string{
	"date", "home_team", "away_team", "home_rating", "away_rating", "match_type",
	"home_ranking", "away_ranking", "home_recent_scored", "away_recent_scored",
	"home_recent_conceded", "away_recent_conceded", "result",
}

var fixtureHeader = []string{
	"home_team", "away_team", "home_rating", "away_rating", "match_type",
	"home_ranking", "away_ranking", "home_recent_scored", "away_recent_scored",
	"home_recent_conceded", "away_recent_conceded", "group",
}

// WriteTrainingCSV exports one feature record per historical match.
// CalculateRatings must have completed first.
func (d *ResultsDataset) WriteTrainingCSV(path string) error {
	if !d.rated {
		return fmt.Errorf("cannot export features before ratings are calculated")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create training output: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(trainingHeader); err != nil {
		return fmt.Errorf("failed to write training header: %w", err)
	}
	for _, match := range d.matches {
		features := d.MatchFeatures(match)
		record := []string{
			features.Date.Format("02/01/2006"),
			features.HomeTeam,
			features.AwayTeam,
			strconv.Itoa(features.HomeRating),
			strconv.Itoa(features.AwayRating),
			features.MatchType.String(),
			strconv.Itoa(features.HomeRanking),
			strconv.Itoa(features.AwayRanking),
			strconv.Itoa(features.HomeRecentScored),
			strconv.Itoa(features.AwayRecentScored),
			strconv.Itoa(features.HomeRecentConceded),
			strconv.Itoa(features.AwayRecentConceded),
			strconv.Itoa(int(features.Result)),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write training record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush training output: %w", err)
	}

	logger.Info("Wrote training records", len(d.matches), "to", path)
	return nil
}

// WriteFixturesCSV exports one feature record per hypothetical fixture, all
// evaluated at the given date and importance tier
func (d *ResultsDataset) WriteFixturesCSV(path string, fixtures []Fixture, date time.Time, matchType MatchType, resolve AliasResolver) error {
	if !d.rated {
		return fmt.Errorf("cannot export features before ratings are calculated")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create fixtures output: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(fixtureHeader); err != nil {
		return fmt.Errorf("failed to write fixtures header: %w", err)
	}
	for _, fixture := range fixtures {
		features, err := d.FixtureFeatures(fixture, date, matchType, resolve)
		if err != nil {
			return fmt.Errorf("fixture %s vs %s: %w", fixture.HomeTeam, fixture.AwayTeam, err)
		}
		record := []string{
			features.HomeTeam,
			features.AwayTeam,
			strconv.Itoa(features.HomeRating),
			strconv.Itoa(features.AwayRating),
			features.MatchType.String(),
			strconv.Itoa(features.HomeRanking),
			strconv.Itoa(features.AwayRanking),
			strconv.Itoa(features.HomeRecentScored),
			strconv.Itoa(features.AwayRecentScored),
			strconv.Itoa(features.HomeRecentConceded),
			strconv.Itoa(features.AwayRecentConceded),
			features.Group,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write fixture record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush fixtures output: %w", err)
	}

	logger.Info("Wrote fixture records", len(fixtures), "to", path)
	return nil
}
