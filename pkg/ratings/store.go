package ratings

import (
	"fmt"
	"time"

	"github.com/RexBanner6000/womens-international-2023/internal/logger"
)

// Compile-time checks that the record types implement Persistable
var _ Persistable = (*TeamRecord)(nil)
var _ Persistable = (*MatchRecord)(nil)
var _ Persistable = (*RatingRecord)(nil)

// TeamRecord is the persisted form of a team and its current rating
type TeamRecord struct {
	Name      string    `column:"name" dbtype:"TEXT NOT NULL" primary:"true"`
	Rating    int       `column:"rating" dbtype:"INTEGER DEFAULT 1500" index:"true"`
	UpdatedAt time.Time `column:"updated_at" dbtype:"DATETIME"`
}

func (t *TeamRecord) TableName() string { return "teams" }

func (t *TeamRecord) PrimaryKey() map[string]any {
	return map[string]any{"name": t.Name}
}

func (t *TeamRecord) BeforeSave() error {
	t.UpdatedAt = time.Now()
	return nil
}

// MatchRecord is the persisted form of one ingested match
type MatchRecord struct {
	ID         string `column:"id" dbtype:"TEXT" primary:"true"`
	Date       string `column:"date" dbtype:"TEXT NOT NULL" index:"true"`
	HomeTeam   string `column:"home_team" dbtype:"TEXT NOT NULL" index:"true"`
	AwayTeam   string `column:"away_team" dbtype:"TEXT NOT NULL" index:"true"`
	HomeScore  int    `column:"home_score" dbtype:"INTEGER NOT NULL"`
	AwayScore  int    `column:"away_score" dbtype:"INTEGER NOT NULL"`
	Tournament string `column:"tournament" dbtype:"TEXT"`
	Year       int    `column:"year" dbtype:"INTEGER"`
	City       string `column:"city" dbtype:"TEXT"`
	Country    string `column:"country" dbtype:"TEXT"`
	Neutral    bool   `column:"neutral" dbtype:"INTEGER DEFAULT 0"`
	MatchType  string `column:"match_type" dbtype:"TEXT"`
}

func (m *MatchRecord) TableName() string { return "matches" }

func (m *MatchRecord) PrimaryKey() map[string]any {
	return map[string]any{"id": m.ID}
}

func (m *MatchRecord) BeforeSave() error {
	if m.ID == "" {
		return fmt.Errorf("match record has no id")
	}
	return nil
}

// RatingRecord is one point of a team's rating history
type RatingRecord struct {
	TeamName string `column:"team_name" dbtype:"TEXT NOT NULL" primary:"true" index:"true"`
	Date     string `column:"date" dbtype:"TEXT NOT NULL" primary:"true"`
	Rating   int    `column:"rating" dbtype:"INTEGER NOT NULL"`
}

func (r *RatingRecord) TableName() string { return "rating_history" }

func (r *RatingRecord) PrimaryKey() map[string]any {
	return map[string]any{"team_name": r.TeamName, "date": r.Date}
}

func (r *RatingRecord) BeforeSave() error { return nil }

/////////////////////////////////////////////////////////////////////////
////// Dataset Snapshots
/////////////////////////////////////////////////////////////////////////

// Snapshot writes the dataset's teams, matches and rating histories into the
// store so other tools can inspect them. Ratings must have been calculated;
// the dataset is read-only by then, so snapshotting never races a writer.
func (d *ResultsDataset) Snapshot(s *Store) error {
	if !d.rated {
		return fmt.Errorf("cannot snapshot before ratings are calculated")
	}

	if err := s.CreateTable(&TeamRecord{}); err != nil {
		return fmt.Errorf("failed to create teams table: %w", err)
	}
	if err := s.CreateTable(&MatchRecord{}); err != nil {
		return fmt.Errorf("failed to create matches table: %w", err)
	}
	if err := s.CreateTable(&RatingRecord{}); err != nil {
		return fmt.Errorf("failed to create rating history table: %w", err)
	}

	var records []Persistable
	for _, team := range d.teams {
		records = append(records, &TeamRecord{
			Name:   team.Name,
			Rating: team.CurrentRating(),
		})
		for _, entry := range team.History() {
			records = append(records, &RatingRecord{
				TeamName: team.Name,
				Date:     entry.Date.Format("2006-01-02"),
				Rating:   entry.Rating,
			})
		}
	}
	for _, match := range d.matches {
		records = append(records, &MatchRecord{
			ID:         match.ID,
			Date:       match.Date.Format("2006-01-02"),
			HomeTeam:   match.HomeTeam.Name,
			AwayTeam:   match.AwayTeam.Name,
			HomeScore:  match.HomeScore,
			AwayScore:  match.AwayScore,
			Tournament: match.Tournament.Name,
			Year:       match.Tournament.Year,
			City:       match.City,
			Country:    match.Country,
			Neutral:    match.Neutral,
			MatchType:  match.Type.String(),
		})
	}

	if err := s.BulkSave(records); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	logger.Info("Snapshotted dataset:", len(d.teams), "teams,", len(d.matches), "matches")
	return nil
}
