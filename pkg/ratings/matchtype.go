package ratings

import "strings"

// MatchType is the closed set of importance tiers a tournament name can map to.
// The tier decides the K-factor used when a match moves team ratings.
type MatchType int

const (
	WorldCup MatchType = iota
	Continental
	Qualifiers
	Olympic
	Friendly
	OtherTournament
)

// KFactor returns the rating-update weight for this tier
func (t MatchType) KFactor() int {
	switch t {
	case WorldCup, Olympic:
		return 60
	case Continental:
		return 50
	case Qualifiers:
		return 40
	case Friendly:
		return 20
	default:
		return 30
	}
}

func (t MatchType) String() string {
	switch t {
	case WorldCup:
		return "WORLD_CUP"
	case Continental:
		return "CONTINENTAL"
	case Qualifiers:
		return "QUALIFIERS"
	case Olympic:
		return "OLYMPIC"
	case Friendly:
		return "FRIENDLY"
	default:
		return "OTHER"
	}
}

// ParseMatchType maps a tier label such as "WORLD_CUP" back to its MatchType.
// Unknown labels fall through to OtherTournament, mirroring ClassifyTournament.
func ParseMatchType(label string) MatchType {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "WORLD_CUP":
		return WorldCup
	case "CONTINENTAL":
		return Continental
	case "QUALIFIERS":
		return Qualifiers
	case "OLYMPIC":
		return Olympic
	case "FRIENDLY":
		return Friendly
	default:
		return OtherTournament
	}
}

// continentalNames are the confederation championships recognised as CONTINENTAL.
// Matching is substring based so "UEFA Euro" and "Euro" both hit "euro".
var continentalNames = []string{
	"euro",
	"copa américa",
	"copa america",
	"african cup of nations",
	"africa cup of nations",
	"asian cup",
	"gold cup",
	"oceania nations cup",
	"confederations cup",
	"nations league",
}

// ClassifyTournament maps a free-text tournament name to an importance tier.
// Rules run case-insensitively in fixed priority order and the first hit wins;
// qualifiers are checked first so "World Cup qualification" lands on QUALIFIERS
// rather than WORLD_CUP. This is a best-effort heuristic: anything ambiguous or
// unlisted falls through to OTHER, never an error.
func ClassifyTournament(name string) MatchType {
	n := strings.ToLower(name)

	if strings.Contains(n, "qualification") || strings.Contains(n, "qualifier") || strings.Contains(n, "qualifying") {
		return Qualifiers
	}
	if strings.Contains(n, "world cup") {
		return WorldCup
	}
	if strings.Contains(n, "olympic") {
		return Olympic
	}
	if strings.Contains(n, "friendly") {
		return Friendly
	}
	for _, c := range continentalNames {
		if strings.Contains(n, c) {
			return Continental
		}
	}
	return OtherTournament
}
