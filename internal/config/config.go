package config

import (
	"fmt"
	"time"
)

// Config contains all configurable parameters for the ratings pipeline
// This centralizes all magic numbers and constants for easy adjustment
type Config struct {
	// === LOGGING ===

	LogLevel string `koanf:"log_level"` // debug, info, warn, error
	LogFile  string `koanf:"log_file"`  // when set, logs go to this file instead of the console

	// === RATING PARAMETERS ===

	DefaultRating int    `koanf:"default_rating"` // rating assumed for a team with no history (default: 1500)
	RatingEpoch   string `koanf:"rating_epoch"`   // sentinel date carrying the implicit default entry (default: 1900-01-01)

	// === RANKING AND FORM PARAMETERS ===

	ActivityWindowYears  int `koanf:"activity_window_years"`   // teams idle longer than this are unranked (default: 4)
	RecentFormGames      int `koanf:"recent_form_games"`       // trailing matches used for scored/conceded totals (default: 5)
	RecentFormWindowDays int `koanf:"recent_form_window_days"` // day window for recent-match queries (default: 90)

	// === FIXTURE EXPORT ===

	FixtureDate      string `koanf:"fixture_date"`       // fixed date assumed for hypothetical fixtures (default: 2023-07-20)
	FixtureMatchType string `koanf:"fixture_match_type"` // importance tier assumed for fixtures (default: WORLD_CUP)

	// === OUTPUT ===

	TrainingOutput   string `koanf:"training_output"`   // training feature table path
	SubmissionOutput string `koanf:"submission_output"` // fixture feature table path
	DatabasePath     string `koanf:"database_path"`     // optional sqlite snapshot, empty disables
}

// DefaultConfig returns the default configuration with all standard values
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",

		DefaultRating: 1500,
		RatingEpoch:   "1900-01-01",

		ActivityWindowYears:  4,
		RecentFormGames:      5,
		RecentFormWindowDays: 90,

		FixtureDate:      "2023-07-20",
		FixtureMatchType: "WORLD_CUP",

		TrainingOutput:   "training_data.csv",
		SubmissionOutput: "submission_data.csv",
	}
}

// Epoch parses the configured rating epoch date
func (c *Config) Epoch() (time.Time, error) {
	t, err := time.Parse("2006-01-02", c.RatingEpoch)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid rating_epoch %q: %w", c.RatingEpoch, err)
	}
	return t, nil
}

// FixtureTime parses the configured fixture date
func (c *Config) FixtureTime() (time.Time, error) {
	t, err := time.Parse("2006-01-02", c.FixtureDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid fixture_date %q: %w", c.FixtureDate, err)
	}
	return t, nil
}

// Validate ensures all configuration values are within reasonable ranges
func Validate(c *Config) error {
	if c.DefaultRating <= 0 {
		return fmt.Errorf("default_rating must be positive, got: %d", c.DefaultRating)
	}
	if c.ActivityWindowYears < 1 {
		return fmt.Errorf("activity_window_years must be at least 1, got: %d", c.ActivityWindowYears)
	}
	if c.RecentFormGames < 1 {
		return fmt.Errorf("recent_form_games must be at least 1, got: %d", c.RecentFormGames)
	}
	if c.RecentFormWindowDays < 1 {
		return fmt.Errorf("recent_form_window_days must be at least 1, got: %d", c.RecentFormWindowDays)
	}
	if _, err := c.Epoch(); err != nil {
		return err
	}
	if _, err := c.FixtureTime(); err != nil {
		return err
	}
	return nil
}
