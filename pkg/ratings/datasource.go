package ratings

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/RexBanner6000/womens-international-2023/internal/logger"
)

// Row is one parsed result row, ready for ingestion
type Row struct {
	Date       time.Time
	HomeTeam   string
	AwayTeam   string
	HomeScore  int
	AwayScore  int
	Tournament string
	City       string
	Country    string
	Neutral    bool
}

// Fixture is one hypothetical matchup from a submission-style file
type Fixture struct {
	HomeTeam string
	AwayTeam string
	Group    string
}

var resultColumns = []string{"date", "home_team", "away_team", "home_score", "away_score", "tournament"}
var fixtureColumns = []string{"team1", "team2", "group"}

/////////////////////////////////////////////////////////////////////////
////// Results CSV
/////////////////////////////////////////////////////////////////////////

// ReadResultsCSV reads a results file with columns
// date,home_team,away_team,home_score,away_score,tournament,city,country,neutral.
// Malformed dates or scores and missing required columns fail fast with a
// descriptive error; nothing is retried or silently skipped.
func ReadResultsCSV(path string) ([]Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read results file: %w", err)
	}
	return ParseResultsCSV(string(data))
}

// ParseResultsCSV parses results CSV content
func ParseResultsCSV(csvData string) ([]Row, error) {
	records, headers, err := readRecords(csvData)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(headers, resultColumns); err != nil {
		return nil, err
	}

	var rows []Row
	for i, record := range records {
		rowMap := recordToMap(headers, record)
		row, err := parseResultRow(rowMap)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}

	logger.Debug("Parsed result rows", len(rows))
	return rows, nil
}

func parseResultRow(row map[string]string) (Row, error) {
	date, err := time.Parse("2006-01-02", row["date"])
	if err != nil {
		return Row{}, fmt.Errorf("invalid date %q: %w", row["date"], err)
	}
	if row["home_team"] == "" || row["away_team"] == "" {
		return Row{}, fmt.Errorf("missing team names")
	}
	homeScore, err := parseScore(row["home_score"])
	if err != nil {
		return Row{}, fmt.Errorf("invalid home_score: %w", err)
	}
	awayScore, err := parseScore(row["away_score"])
	if err != nil {
		return Row{}, fmt.Errorf("invalid away_score: %w", err)
	}
	if row["tournament"] == "" {
		return Row{}, fmt.Errorf("missing tournament name")
	}

	return Row{
		Date:       date,
		HomeTeam:   row["home_team"],
		AwayTeam:   row["away_team"],
		HomeScore:  homeScore,
		AwayScore:  awayScore,
		Tournament: row["tournament"],
		City:       row["city"],
		Country:    row["country"],
		Neutral:    parseNeutral(row["neutral"]),
	}, nil
}

func parseScore(value string) (int, error) {
	score, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", value)
	}
	if score < 0 {
		return 0, fmt.Errorf("%d is negative", score)
	}
	return score, nil
}

// parseNeutral accepts the boolean-like spellings seen in the source data.
// Anything unrecognised is treated as a home fixture.
func parseNeutral(value string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(strings.ToLower(value)))
	if err != nil {
		return false
	}
	return b
}

/////////////////////////////////////////////////////////////////////////
////// Fixtures CSV
/////////////////////////////////////////////////////////////////////////

// ReadFixturesCSV reads a submission-style fixtures file with columns
// team1,team2,group describing hypothetical matchups
func ReadFixturesCSV(path string) ([]Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures file: %w", err)
	}
	return ParseFixturesCSV(string(data))
}

// ParseFixturesCSV parses fixtures CSV content
func ParseFixturesCSV(csvData string) ([]Fixture, error) {
	records, headers, err := readRecords(csvData)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(headers, fixtureColumns); err != nil {
		return nil, err
	}

	var fixtures []Fixture
	for i, record := range records {
		rowMap := recordToMap(headers, record)
		if rowMap["team1"] == "" || rowMap["team2"] == "" {
			return nil, fmt.Errorf("row %d: missing team names", i+2)
		}
		fixtures = append(fixtures, Fixture{
			HomeTeam: rowMap["team1"],
			AwayTeam: rowMap["team2"],
			Group:    rowMap["group"],
		})
	}
	return fixtures, nil
}

/////////////////////////////////////////////////////////////////////////
////// CSV Plumbing
/////////////////////////////////////////////////////////////////////////

// readRecords parses the CSV and splits off the header row, tolerating a BOM
// on the first header
func readRecords(csvData string) ([][]string, []string, error) {
	reader := csv.NewReader(strings.NewReader(strings.TrimSpace(csvData)))
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("CSV contains no header row")
	}

	headers := records[0]
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\ufeff")
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(strings.ToLower(headers[i]))
	}
	return records[1:], headers, nil
}

func requireColumns(headers []string, required []string) error {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}
	for _, col := range required {
		if !present[col] {
			return fmt.Errorf("required column %q not found in CSV header", col)
		}
	}
	return nil
}

func recordToMap(headers []string, record []string) map[string]string {
	row := make(map[string]string, len(headers))
	for i, header := range headers {
		if i < len(record) {
			row[header] = strings.TrimSpace(record[i])
		} else {
			row[header] = ""
		}
	}
	return row
}
