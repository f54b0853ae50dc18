package ratings

import (
	"fmt"
	"math"
)

// Rater applies the Elo-style update rule to matches. It is stateless: all
// inputs come from the match and the two teams' pre-match rating lookups.
type Rater struct{}

/////////////////////////////////////////////////////////////////////////
////// Pure Rating Arithmetic
/////////////////////////////////////////////////////////////////////////

// GoalIndex models the diminishing marginal importance of blowout margins.
// A one-goal margin counts as 1, two goals as 1.5, anything bigger as (11+d)/8.
func GoalIndex(goalDifference int) float64 {
	d := goalDifference
	if d < 0 {
		d = -d
	}
	switch {
	case d <= 1:
		return 1
	case d == 2:
		return 1.5
	default:
		return (11 + float64(d)) / 8
	}
}

// ExpectedResult is the standard logistic expectation for the home side given
// the ratings difference (home minus away)
func ExpectedResult(ratingsDifference int) float64 {
	return 1 / (math.Pow(10, -float64(ratingsDifference)/400) + 1)
}

// ActualResult scores the outcome from the home side's perspective:
// 1 for a win, 0 for a loss, 0.5 for a draw
func ActualResult(goalDifference int) float64 {
	switch {
	case goalDifference > 0:
		return 1
	case goalDifference < 0:
		return 0
	default:
		return 0.5
	}
}

/////////////////////////////////////////////////////////////////////////
////// Match Updates
/////////////////////////////////////////////////////////////////////////

// PointsChange computes the raw (untruncated) rating delta for the home team.
// The away team moves by the negation. Both teams are read with the pre-match
// lookup so a same-day earlier result never leaks into the calculation.
func (r *Rater) PointsChange(m *Match) float64 {
	gd := m.GoalDifference()
	homeRating := m.HomeTeam.PreMatchRating(m.Date)
	awayRating := m.AwayTeam.PreMatchRating(m.Date)

	g := GoalIndex(gd)
	k := float64(m.Type.KFactor())
	we := ExpectedResult(homeRating - awayRating)
	w := ActualResult(gd)

	return k * g * (w - we)
}

// UpdateRatings applies the match outcome to both teams' histories. The delta
// is truncated toward zero, not floored; the distinction matters for negative
// changes and is required for parity with historic outputs.
func (r *Rater) UpdateRatings(m *Match) error {
	homeRating := m.HomeTeam.PreMatchRating(m.Date)
	awayRating := m.AwayTeam.PreMatchRating(m.Date)
	change := int(r.PointsChange(m))

	if err := m.HomeTeam.SetRating(m.Date, homeRating+change); err != nil {
		return fmt.Errorf("failed to update home rating: %w", err)
	}
	if err := m.AwayTeam.SetRating(m.Date, awayRating-change); err != nil {
		return fmt.Errorf("failed to update away rating: %w", err)
	}
	return nil
}
