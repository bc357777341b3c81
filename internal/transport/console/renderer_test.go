package console

import (
	"bytes"
	"strings"
	"testing"

	"imageguess-engine/internal/domain"
)

func renderToString(snap domain.Snapshot) string {
	var buf bytes.Buffer
	NewRenderer(&buf).Render(snap)
	return buf.String()
}

func TestRenderPlayingStandard(t *testing.T) {
	remaining := 25
	out := renderToString(domain.Snapshot{
		State:          domain.StatePlaying,
		Mode:           domain.ModeStandard,
		Round:          2,
		QuestionIndex:  3,
		QueueLength:    10,
		Scores:         []int{4, 0},
		ScoredTeams:    []int{0},
		TimerRemaining: &remaining,
		Question: &domain.QuestionView{
			ID:         "q-7",
			Difficulty: domain.DifficultyHard,
			Points:     3,
			Images:     []string{"a.png", "b.png"},
		},
	})

	for _, want := range []string{
		"Round 2 — question 4/10",
		"⏱ 25",
		"[hard, 3 pts] a.png b.png",
		"scores: T1=4* T2=0",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "answer:") {
		t.Fatalf("answer leaked before reveal:\n%s", out)
	}
}

func TestRenderRevealedAnswer(t *testing.T) {
	out := renderToString(domain.Snapshot{
		State:       domain.StatePlaying,
		Mode:        domain.ModeStandard,
		Round:       1,
		QueueLength: 5,
		Scores:      []int{0},
		Revealed:    true,
		Question: &domain.QuestionView{
			Difficulty: domain.DifficultyEasy,
			Points:     1,
			Answer:     "jerusalem",
		},
	})

	if !strings.Contains(out, "answer: jerusalem") {
		t.Fatalf("revealed answer not printed:\n%s", out)
	}
}

func TestRenderPlayingTimeAttack(t *testing.T) {
	remaining := 65
	out := renderToString(domain.Snapshot{
		State:          domain.StatePlaying,
		Mode:           domain.ModeTimeAttack,
		TurnTeam:       1,
		QuestionIndex:  0,
		QueueLength:    12,
		Scores:         []int{3, 5},
		TimerRemaining: &remaining,
		Question: &domain.QuestionView{
			Difficulty: domain.DifficultyNormal,
			Points:     2,
		},
	})

	if !strings.Contains(out, "Team 2 — question 1") {
		t.Fatalf("turn header missing:\n%s", out)
	}
	if !strings.Contains(out, "⏱ 1:05") {
		t.Fatalf("per-team timer not in m:ss form:\n%s", out)
	}
}

func TestRenderTimerWarning(t *testing.T) {
	remaining := 4
	out := renderToString(domain.Snapshot{
		State:          domain.StatePlaying,
		Mode:           domain.ModeStandard,
		Round:          1,
		QueueLength:    5,
		Scores:         []int{0},
		TimerRemaining: &remaining,
		TimerWarning:   true,
	})

	if !strings.Contains(out, "⏱ 4 !") {
		t.Fatalf("warning marker missing:\n%s", out)
	}
}

func TestRenderFinishedStandings(t *testing.T) {
	out := renderToString(domain.Snapshot{
		State: domain.StateFinished,
		Standings: []domain.Standing{
			{Team: 2, Score: 9},
			{Team: 0, Score: 4},
			{Team: 1, Score: 4},
			{Team: 3, Score: 0},
		},
	})

	for _, want := range []string{
		"final standings",
		"🥇 Team 3 — 9 pts",
		"🥈 Team 1 — 4 pts",
		"🥉 Team 2 — 4 pts",
		"🎮 Team 4 — 0 pts",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}
