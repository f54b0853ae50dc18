package ratings_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RexBanner6000/womens-international-2023/pkg/ratings"
)

func openTestStore(t *testing.T) *ratings.Store {
	t.Helper()
	store, err := ratings.OpenStore(filepath.Join(t.TempDir(), "snapshot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndFindByPrimaryKey(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.CreateTable(&ratings.TeamRecord{}))

	record := &ratings.TeamRecord{Name: "Italy", Rating: 1543}
	require.NoError(t, store.Save(record))

	loaded := &ratings.TeamRecord{}
	require.NoError(t, store.FindByPrimaryKey(loaded, map[string]any{"name": "Italy"}))
	assert.Equal(t, "Italy", loaded.Name)
	assert.Equal(t, 1543, loaded.Rating)
}

func TestSaveUpdatesExistingRecord(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.CreateTable(&ratings.TeamRecord{}))

	require.NoError(t, store.Save(&ratings.TeamRecord{Name: "Italy", Rating: 1500}))
	require.NoError(t, store.Save(&ratings.TeamRecord{Name: "Italy", Rating: 1521}))

	count, err := store.Count(&ratings.TeamRecord{})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	loaded := &ratings.TeamRecord{}
	require.NoError(t, store.FindByPrimaryKey(loaded, map[string]any{"name": "Italy"}))
	assert.Equal(t, 1521, loaded.Rating)
}

func TestFindByPrimaryKeyMissingRecord(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.CreateTable(&ratings.TeamRecord{}))

	err := store.FindByPrimaryKey(&ratings.TeamRecord{}, map[string]any{"name": "Atlantis"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSnapshotRequiresRatings(t *testing.T) {
	dataset := newDataset(t, featureRows())
	err := dataset.Snapshot(openTestStore(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before ratings")
}

func TestSnapshotPersistsDataset(t *testing.T) {
	store := openTestStore(t)
	dataset := ratedDataset(t, featureRows())
	require.NoError(t, dataset.Snapshot(store))

	teams, err := store.Count(&ratings.TeamRecord{})
	require.NoError(t, err)
	assert.Equal(t, len(dataset.Teams()), teams)

	matches, err := store.Count(&ratings.MatchRecord{})
	require.NoError(t, err)
	assert.Equal(t, len(dataset.Matches()), matches)

	var historyEntries int
	for _, team := range dataset.Teams() {
		historyEntries += len(team.History())
	}
	history, err := store.Count(&ratings.RatingRecord{})
	require.NoError(t, err)
	assert.Equal(t, historyEntries, history)

	loaded := &ratings.TeamRecord{}
	require.NoError(t, store.FindByPrimaryKey(loaded, map[string]any{"name": "United States"}))
	assert.Greater(t, loaded.Rating, 1500)

	results, err := store.FindWhere(&ratings.MatchRecord{}, "home_team = ?", "United States")
	require.NoError(t, err)
	assert.Len(t, results, 2)
}
