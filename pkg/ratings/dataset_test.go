package ratings_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RexBanner6000/womens-international-2023/pkg/ratings"
)

func dummyRows() []ratings.Row {
	return []ratings.Row{
		{
			Date: date(1969, 11, 1), HomeTeam: "Italy", AwayTeam: "France",
			HomeScore: 1, AwayScore: 0, Tournament: "Euro", City: "Novara", Country: "Italy",
		},
		{
			Date: date(1969, 11, 1), HomeTeam: "Denmark", AwayTeam: "England",
			HomeScore: 4, AwayScore: 3, Tournament: "Euro", City: "Aosta", Country: "Italy", Neutral: true,
		},
	}
}

func newDataset(t *testing.T, rows []ratings.Row) *ratings.ResultsDataset {
	t.Helper()
	dataset := ratings.NewResultsDataset(ratings.DefaultParams())
	require.NoError(t, dataset.Ingest(rows))
	return dataset
}

func TestIngestCreatesEntities(t *testing.T) {
	dataset := newDataset(t, dummyRows())

	assert.Len(t, dataset.Teams(), 4)
	assert.Len(t, dataset.Events(), 1)
	assert.Len(t, dataset.Tournaments(), 1)
	assert.Len(t, dataset.Matches(), 2)

	tournament := dataset.Tournaments()[0]
	assert.Equal(t, "Euro", tournament.Name)
	assert.Equal(t, 1969, tournament.Year)
	assert.Equal(t, ratings.Continental, dataset.Matches()[0].Type)
}

// Entity creation is idempotent, match creation is not: ingesting the same
// rows twice doubles the matches but never the teams/events/tournaments
func TestReingestDuplicatesMatchesOnly(t *testing.T) {
	dataset := newDataset(t, dummyRows())
	require.NoError(t, dataset.Ingest(dummyRows()))

	assert.Len(t, dataset.Teams(), 4)
	assert.Len(t, dataset.Events(), 1)
	assert.Len(t, dataset.Tournaments(), 1)
	assert.Len(t, dataset.Matches(), 4)
}

func TestGetOrCreateTournamentIdentity(t *testing.T) {
	dataset := ratings.NewResultsDataset(ratings.DefaultParams())

	a := dataset.GetOrCreateTournament("Euro", 1969)
	b := dataset.GetOrCreateTournament("Euro", 1969)
	c := dataset.GetOrCreateTournament("Euro", 1973)

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Len(t, dataset.Events(), 1)
	assert.Len(t, dataset.Tournaments(), 2)
}

func TestCalculateRatingsMutatesHistories(t *testing.T) {
	dataset := newDataset(t, dummyRows())
	require.NoError(t, dataset.CalculateRatings())

	italy, ok := dataset.GetTeam("Italy")
	require.True(t, ok)
	france, ok := dataset.GetTeam("France")
	require.True(t, ok)

	// Continental one-goal win between equals: 50 * 1 * (1 - 0.5) = 25
	assert.Equal(t, 1525, italy.RatingOn(date(1969, 11, 1)))
	assert.Equal(t, 1475, france.RatingOn(date(1969, 11, 1)))
}

func TestCalculateRatingsExactlyOnce(t *testing.T) {
	dataset := newDataset(t, dummyRows())
	require.NoError(t, dataset.CalculateRatings())

	assert.Error(t, dataset.CalculateRatings())
	assert.Error(t, dataset.Ingest(dummyRows()))
}

// Shuffling input row order must not change final ratings, because ingestion
// re-sorts by date before the engine runs
func TestShuffledIngestionOrderIsIrrelevant(t *testing.T) {
	var rows []ratings.Row
	teams := []string{"Italy", "France", "Denmark", "England", "Sweden", "Norway"}
	day := date(1990, 1, 10)
	for i := 0; i < 60; i++ {
		rows = append(rows, ratings.Row{
			Date:       day.AddDate(0, 0, i*17),
			HomeTeam:   teams[i%len(teams)],
			AwayTeam:   teams[(i+1)%len(teams)],
			HomeScore:  i % 4,
			AwayScore:  (i + 1) % 3,
			Tournament: "Euro qualification",
		})
	}

	ordered := newDataset(t, rows)
	require.NoError(t, ordered.CalculateRatings())

	shuffled := make([]ratings.Row, len(rows))
	copy(shuffled, rows)
	rand.New(rand.NewSource(42)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	scrambled := newDataset(t, shuffled)
	require.NoError(t, scrambled.CalculateRatings())

	for _, name := range teams {
		a, ok := ordered.GetTeam(name)
		require.True(t, ok)
		b, ok := scrambled.GetTeam(name)
		require.True(t, ok)
		assert.Equal(t, a.CurrentRating(), b.CurrentRating(), "team %s", name)
	}
}

/////////////////////////////////////////////////////////////////////////
////// Rankings
/////////////////////////////////////////////////////////////////////////

func TestRankingsOrderAndSentinel(t *testing.T) {
	rows := []ratings.Row{
		{Date: date(2019, 6, 1), HomeTeam: "Italy", AwayTeam: "France", HomeScore: 3, AwayScore: 0, Tournament: "Euro"},
		{Date: date(2019, 6, 8), HomeTeam: "Denmark", AwayTeam: "France", HomeScore: 1, AwayScore: 0, Tournament: "Euro"},
		// Sweden last played over four years before the snapshot date
		{Date: date(2010, 6, 1), HomeTeam: "Sweden", AwayTeam: "Italy", HomeScore: 0, AwayScore: 0, Tournament: "Friendly"},
	}
	dataset := newDataset(t, rows)
	require.NoError(t, dataset.CalculateRatings())

	rankings := dataset.Rankings(date(2020, 1, 1))

	// every known team appears, inactive ones carry the sentinel
	assert.Len(t, rankings, 4)
	assert.Equal(t, ratings.UnrankedSentinel, rankings["Sweden"])

	// Italy won big, Denmark won small, France lost twice
	assert.Equal(t, 1, rankings["Italy"])
	assert.Equal(t, 2, rankings["Denmark"])
	assert.Equal(t, 3, rankings["France"])
}

// Equal ratings keep team creation order: ranks are dense and stable
func TestRankingsStableTieBreak(t *testing.T) {
	rows := []ratings.Row{
		{Date: date(2019, 6, 1), HomeTeam: "Italy", AwayTeam: "France", HomeScore: 1, AwayScore: 1, Tournament: "Friendly"},
		{Date: date(2019, 6, 1), HomeTeam: "Denmark", AwayTeam: "England", HomeScore: 2, AwayScore: 2, Tournament: "Friendly"},
	}
	dataset := newDataset(t, rows)
	require.NoError(t, dataset.CalculateRatings())

	rankings := dataset.Rankings(date(2019, 7, 1))
	assert.Equal(t, 1, rankings["Italy"])
	assert.Equal(t, 2, rankings["France"])
	assert.Equal(t, 3, rankings["Denmark"])
	assert.Equal(t, 4, rankings["England"])
}

func TestRankingsIgnoreFutureMatches(t *testing.T) {
	dataset := newDataset(t, dummyRows())
	require.NoError(t, dataset.CalculateRatings())

	// snapshot taken before anyone has played
	rankings := dataset.Rankings(date(1969, 10, 1))
	for name, rank := range rankings {
		assert.Equal(t, ratings.UnrankedSentinel, rank, "team %s", name)
	}
}

/////////////////////////////////////////////////////////////////////////
////// Recent Form
/////////////////////////////////////////////////////////////////////////

func formRows() []ratings.Row {
	rows := make([]ratings.Row, 0, 8)
	for i := 0; i < 8; i++ {
		rows = append(rows, ratings.Row{
			Date:       date(2022, 1, 1).AddDate(0, 0, i*10),
			HomeTeam:   "Italy",
			AwayTeam:   "France",
			HomeScore:  2,
			AwayScore:  1,
			Tournament: "Friendly",
		})
	}
	return rows
}

func TestLastNGames(t *testing.T) {
	dataset := newDataset(t, formRows())

	last := dataset.LastNGames("Italy", date(2022, 12, 1), 5)
	require.Len(t, last, 5)
	// oldest-first within the trailing slice
	assert.True(t, last[0].Date.Before(last[4].Date))
	assert.Equal(t, date(2022, 1, 1).AddDate(0, 0, 70), last[4].Date)

	// fewer prior matches than requested returns what exists
	short := dataset.LastNGames("Italy", date(2022, 1, 25), 5)
	assert.Len(t, short, 3)

	assert.Empty(t, dataset.LastNGames("Brazil", date(2022, 12, 1), 5))
}

func TestMatchesInWindowIsOpenInterval(t *testing.T) {
	dataset := newDataset(t, formRows())

	query := date(2022, 1, 1).AddDate(0, 0, 40)
	window := dataset.MatchesInWindow("Italy", query, 20)

	// matches on day 20 (the boundary) and day 40 (the query date) are
	// excluded, only day 30 falls inside the open interval
	require.Len(t, window, 1)
	assert.Equal(t, date(2022, 1, 1).AddDate(0, 0, 30), window[0].Date)
}

func TestGoalsForAndAgainst(t *testing.T) {
	rows := []ratings.Row{
		{Date: date(2022, 3, 1), HomeTeam: "Italy", AwayTeam: "France", HomeScore: 2, AwayScore: 1, Tournament: "Friendly"},
		{Date: date(2022, 3, 8), HomeTeam: "France", AwayTeam: "Italy", HomeScore: 3, AwayScore: 0, Tournament: "Friendly"},
	}
	dataset := newDataset(t, rows)

	matches := dataset.LastNGames("Italy", date(2022, 4, 1), 5)
	scored, conceded := ratings.GoalsForAndAgainst("Italy", matches)
	assert.Equal(t, 2, scored)
	assert.Equal(t, 4, conceded)

	scored, conceded = ratings.GoalsForAndAgainst("France", matches)
	assert.Equal(t, 4, scored)
	assert.Equal(t, 2, conceded)
}

func TestLastPlayed(t *testing.T) {
	dataset := newDataset(t, formRows())

	last, ok := dataset.LastPlayed("Italy", date(2022, 12, 1))
	require.True(t, ok)
	assert.Equal(t, date(2022, 1, 1).AddDate(0, 0, 70), last)

	// strictly before: a match on the query date does not count
	last, ok = dataset.LastPlayed("Italy", date(2022, 1, 1).AddDate(0, 0, 70))
	require.True(t, ok)
	assert.Equal(t, date(2022, 1, 1).AddDate(0, 0, 60), last)

	_, ok = dataset.LastPlayed("Brazil", date(2022, 12, 1))
	assert.False(t, ok)
}
