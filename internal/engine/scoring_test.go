package engine

import (
	"testing"

	"imageguess-engine/internal/domain"
)

func TestPointsForDifficulty(t *testing.T) {
	want := map[domain.Difficulty]int{
		domain.DifficultyEasy:    1,
		domain.DifficultyNormal:  2,
		domain.DifficultyHard:    3,
		domain.DifficultyExtreme: 5,
	}
	for level, points := range want {
		if got := PointsFor(level); got != points {
			t.Fatalf("PointsFor(%s) = %d, want %d", level, got, points)
		}
	}
}

func TestScoringEligibility(t *testing.T) {
	simultaneous := ScoringPolicy{Variant: domain.ScoringSimultaneous}
	if !simultaneous.Eligible(1, 0) {
		t.Fatal("simultaneous scoring should allow any team")
	}

	turnBased := ScoringPolicy{Variant: domain.ScoringTurnBased}
	if turnBased.Eligible(1, 0) {
		t.Fatal("turn-based scoring should reject inactive teams")
	}
	if !turnBased.Eligible(0, 0) {
		t.Fatal("turn-based scoring should allow the active team")
	}
}

func TestScoringDefaultsByMode(t *testing.T) {
	standard := domain.SessionConfig{Mode: domain.ModeStandard}
	if standard.EffectiveScoring() != domain.ScoringSimultaneous {
		t.Fatal("standard mode should default to simultaneous scoring")
	}

	rush := domain.SessionConfig{Mode: domain.ModeTimeAttack}
	if rush.EffectiveScoring() != domain.ScoringTurnBased {
		t.Fatal("time attack should default to turn-based scoring")
	}

	override := domain.SessionConfig{Mode: domain.ModeTimeAttack, Scoring: domain.ScoringSimultaneous}
	if override.EffectiveScoring() != domain.ScoringSimultaneous {
		t.Fatal("explicit variant should override the mode default")
	}
}
