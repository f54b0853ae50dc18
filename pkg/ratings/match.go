package ratings

import (
	"fmt"
	"time"
)

// Result encodes a match outcome for the training table.
// The numeric values are part of the exported CSV contract.
type Result int

const (
	AwayWin Result = 0
	HomeWin Result = 1
	Draw    Result = 2
)

func (r Result) String() string {
	switch r {
	case HomeWin:
		return "HOME_WIN"
	case AwayWin:
		return "AWAY_WIN"
	default:
		return "DRAW"
	}
}

// Match represents one played (or hypothetical) fixture. Team and tournament
// pointers are shared with the owning dataset, not owned by the match.
type Match struct {
	ID         string
	HomeTeam   *Team
	AwayTeam   *Team
	Date       time.Time
	HomeScore  int
	AwayScore  int
	Tournament *Tournament
	City       string
	Country    string
	Neutral    bool
	Type       MatchType
}

// GoalDifference from the home team's perspective
func (m *Match) GoalDifference() int {
	return m.HomeScore - m.AwayScore
}

// Result labels the outcome of the match
func (m *Match) Result() Result {
	switch {
	case m.HomeScore > m.AwayScore:
		return HomeWin
	case m.HomeScore < m.AwayScore:
		return AwayWin
	default:
		return Draw
	}
}

// Involves reports whether the named team played in this match
func (m *Match) Involves(teamName string) bool {
	return m.HomeTeam.Name == teamName || m.AwayTeam.Name == teamName
}

// ScoreLine renders the result as "2 - 1"
func (m *Match) ScoreLine() string {
	return fmt.Sprintf("%d - %d", m.HomeScore, m.AwayScore)
}
