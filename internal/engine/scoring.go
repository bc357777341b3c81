package engine

import "imageguess-engine/internal/domain"

// difficultyPoints is the fixed difficulty-to-points mapping. Extreme-only
// sessions score through the same table, so every question is worth 5.
var difficultyPoints = map[domain.Difficulty]int{
	domain.DifficultyEasy:    1,
	domain.DifficultyNormal:  2,
	domain.DifficultyHard:    3,
	domain.DifficultyExtreme: 5,
}

// PointsFor returns the point value of a difficulty level.
func PointsFor(d domain.Difficulty) int {
	return difficultyPoints[d]
}

// ScoringPolicy decides who may claim points and whether wrong answers cost one.
type ScoringPolicy struct {
	Variant      domain.ScoringVariant
	WrongPenalty bool
}

func NewScoringPolicy(cfg domain.SessionConfig) ScoringPolicy {
	return ScoringPolicy{
		Variant:      cfg.EffectiveScoring(),
		WrongPenalty: cfg.WrongPenalty,
	}
}

// Eligible reports whether team may score while turnTeam holds the turn.
// Under simultaneous scoring every team is eligible on every question.
func (p ScoringPolicy) Eligible(team, turnTeam int) bool {
	if p.Variant == domain.ScoringTurnBased {
		return team == turnTeam
	}
	return true
}
