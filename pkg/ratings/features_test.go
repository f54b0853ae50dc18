package ratings_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RexBanner6000/womens-international-2023/pkg/ratings"
)

func featureRows() []ratings.Row {
	return []ratings.Row{
		{Date: date(2022, 6, 1), HomeTeam: "United States", AwayTeam: "South Korea", HomeScore: 3, AwayScore: 0, Tournament: "Friendly"},
		{Date: date(2022, 6, 20), HomeTeam: "South Korea", AwayTeam: "United States", HomeScore: 1, AwayScore: 2, Tournament: "Friendly"},
		{Date: date(2022, 7, 10), HomeTeam: "United States", AwayTeam: "South Korea", HomeScore: 0, AwayScore: 0, Tournament: "FIFA World Cup"},
	}
}

func ratedDataset(t *testing.T, rows []ratings.Row) *ratings.ResultsDataset {
	t.Helper()
	dataset := newDataset(t, rows)
	require.NoError(t, dataset.CalculateRatings())
	return dataset
}

func TestMatchFeatures(t *testing.T) {
	dataset := ratedDataset(t, featureRows())
	last := dataset.Matches()[2]

	features := dataset.MatchFeatures(last)

	// pre-match ratings reflect only the two earlier friendlies:
	// 3-0 win moves 20*1.75*0.5 = 17, the 1-2 away win moves ~10 more
	assert.Equal(t, "United States", features.HomeTeam)
	assert.Equal(t, "South Korea", features.AwayTeam)
	assert.Greater(t, features.HomeRating, 1500)
	assert.Less(t, features.AwayRating, 1500)
	assert.Equal(t, features.HomeRating, last.HomeTeam.PreMatchRating(last.Date))

	assert.Equal(t, ratings.WorldCup, features.MatchType)
	assert.Equal(t, ratings.Draw, features.Result)
	assert.Equal(t, 1, features.HomeRanking)
	assert.Equal(t, 2, features.AwayRanking)

	// recent form over the two prior matches
	assert.Equal(t, 5, features.HomeRecentScored)
	assert.Equal(t, 1, features.HomeRecentConceded)
	assert.Equal(t, 1, features.AwayRecentScored)
	assert.Equal(t, 5, features.AwayRecentConceded)
}

func TestFixtureFeaturesResolvesAliases(t *testing.T) {
	dataset := ratedDataset(t, featureRows())

	fixture := ratings.Fixture{HomeTeam: "USA", AwayTeam: "Korea Republic", Group: "A"}
	features, err := dataset.FixtureFeatures(fixture, date(2023, 7, 20), ratings.WorldCup, ratings.DefaultAliasResolver())
	require.NoError(t, err)

	assert.Equal(t, "United States", features.HomeTeam)
	assert.Equal(t, "South Korea", features.AwayTeam)
	assert.Equal(t, "A", features.Group)
	assert.Equal(t, ratings.WorldCup, features.MatchType)

	// the fixture lookup is the reporting one, at the fixture date
	usa, ok := dataset.GetTeam("United States")
	require.True(t, ok)
	assert.Equal(t, usa.RatingOn(date(2023, 7, 20)), features.HomeRating)
}

func TestFixtureFeaturesUnknownTeam(t *testing.T) {
	dataset := ratedDataset(t, featureRows())

	fixture := ratings.Fixture{HomeTeam: "Atlantis", AwayTeam: "USA", Group: "B"}
	_, err := dataset.FixtureFeatures(fixture, date(2023, 7, 20), ratings.WorldCup, nil)
	assert.ErrorContains(t, err, "Atlantis")
}

func TestWriteTrainingCSV(t *testing.T) {
	dataset := ratedDataset(t, featureRows())

	path := filepath.Join(t.TempDir(), "training.csv")
	require.NoError(t, dataset.WriteTrainingCSV(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, []string{
		"date", "home_team", "away_team", "home_rating", "away_rating", "match_type",
		"home_ranking", "away_ranking", "home_recent_scored", "away_recent_scored",
		"home_recent_conceded", "away_recent_conceded", "result",
	}, records[0])

	first := records[1]
	assert.Equal(t, "01/06/2022", first[0])
	assert.Equal(t, "United States", first[1])
	assert.Equal(t, "1500", first[3])
	assert.Equal(t, "FRIENDLY", first[5])
	// 3-0 home win
	assert.Equal(t, "1", first[12])
}

func TestWriteTrainingCSVRequiresRatings(t *testing.T) {
	dataset := newDataset(t, featureRows())
	err := dataset.WriteTrainingCSV(filepath.Join(t.TempDir(), "training.csv"))
	assert.Error(t, err)
}

func TestWriteFixturesCSV(t *testing.T) {
	dataset := ratedDataset(t, featureRows())

	path := filepath.Join(t.TempDir(), "submission.csv")
	fixtures := []ratings.Fixture{
		{HomeTeam: "USA", AwayTeam: "Korea Republic", Group: "Group A"},
		{HomeTeam: "South Korea", AwayTeam: "United States", Group: "Knockout"},
	}
	require.NoError(t, dataset.WriteFixturesCSV(path, fixtures, date(2023, 7, 20), ratings.WorldCup, ratings.DefaultAliasResolver()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "group", records[0][11])
	assert.Equal(t, "United States", records[1][0])
	assert.Equal(t, "Group A", records[1][11])
	assert.Equal(t, "WORLD_CUP", records[2][4])
}
