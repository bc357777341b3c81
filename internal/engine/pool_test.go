package engine

import (
	"fmt"
	"testing"

	"imageguess-engine/internal/domain"
)

func TestFilteredAppliesEveryPredicate(t *testing.T) {
	pool := NewPool(testQuestions(3, 3, 2, 1))

	filter := domain.Filter{Language: "zh", Group: "bible", Categories: []string{"person"}}
	for _, q := range pool.Filtered(filter) {
		if q.Language != "zh" || q.Group != "bible" || q.Category != "person" {
			t.Fatalf("filtered question violates predicates: %+v", q)
		}
	}

	extreme := pool.Filtered(domain.Filter{ExtremeOnly: true})
	if len(extreme) != 1 {
		t.Fatalf("expected 1 extreme question, got %d", len(extreme))
	}
	if extreme[0].Difficulty != domain.DifficultyExtreme {
		t.Fatalf("expected extreme difficulty, got %s", extreme[0].Difficulty)
	}
}

func TestFilteredFallsBackToWholePool(t *testing.T) {
	pool := NewPool(testQuestions(2, 2, 0, 0))

	got := pool.Filtered(domain.Filter{Language: "nope"})
	if len(got) != pool.Size() {
		t.Fatalf("expected fallback to all %d questions, got %d", pool.Size(), len(got))
	}
}

func TestCandidatesPrefersUnseen(t *testing.T) {
	questions := testQuestions(4, 0, 0, 0)
	pool := NewPool(questions)

	pool.MarkUsed(questions[:2])
	got := pool.Candidates(domain.Filter{}, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 unseen candidates, got %d", len(got))
	}
	for _, q := range got {
		if q.ID == questions[0].ID || q.ID == questions[1].ID {
			t.Fatalf("candidate %s was already served", q.ID)
		}
	}
}

func TestCandidatesRecyclesWhenExhausted(t *testing.T) {
	questions := testQuestions(3, 0, 0, 0)
	pool := NewPool(questions)

	pool.MarkUsed(questions)
	got := pool.Candidates(domain.Filter{}, 2)
	if len(got) != 3 {
		t.Fatalf("expected recycled filtered pool of 3, got %d", len(got))
	}
	if pool.UsedCount() != 0 {
		t.Fatalf("expected registry cleared on recycle, got %d used", pool.UsedCount())
	}
}

// testQuestions builds a deterministic pool with the given per-difficulty
// counts, alternating languages/groups/categories for filter tests.
func testQuestions(easy, normal, hard, extreme int) []domain.Question {
	languages := []string{"zh", "th"}
	groups := []string{"bible", "other"}
	categories := []string{"person", "place", "food"}

	var out []domain.Question
	add := func(d domain.Difficulty, n int) {
		for i := 0; i < n; i++ {
			id := fmt.Sprintf("%s-%d", d, i+1)
			out = append(out, domain.Question{
				ID:         id,
				Language:   languages[len(out)%len(languages)],
				Group:      groups[len(out)%len(groups)],
				Category:   categories[len(out)%len(categories)],
				Difficulty: d,
				Answer:     "answer " + id,
				Images:     []string{id + ".png"},
			})
		}
	}
	add(domain.DifficultyEasy, easy)
	add(domain.DifficultyNormal, normal)
	add(domain.DifficultyHard, hard)
	add(domain.DifficultyExtreme, extreme)
	return out
}
