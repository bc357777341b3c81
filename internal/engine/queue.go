package engine

import (
	"math/rand"

	"imageguess-engine/internal/domain"
)

// quotaTable maps supported round sizes to their per-difficulty breakdown.
// The mix keeps score totals comparable across teams and rounds.
var quotaTable = map[int]map[domain.Difficulty]int{
	5:  {domain.DifficultyEasy: 1, domain.DifficultyNormal: 3, domain.DifficultyHard: 1},
	10: {domain.DifficultyEasy: 2, domain.DifficultyNormal: 5, domain.DifficultyHard: 2, domain.DifficultyExtreme: 1},
	15: {domain.DifficultyEasy: 3, domain.DifficultyNormal: 7, domain.DifficultyHard: 3, domain.DifficultyExtreme: 2},
}

// QueueBuilder turns a candidate pool into the ordered queue for one round or turn.
type QueueBuilder struct {
	rnd *rand.Rand
}

func NewQueueBuilder(rnd *rand.Rand) *QueueBuilder {
	return &QueueBuilder{rnd: rnd}
}

// BuildStandard selects perRound questions using the quota table. Levels with
// fewer available questions than their quota contribute what exists; the round
// may end up shorter and that is accepted. Unsupported round sizes and
// extreme-only sessions skip quota balancing and take the first perRound of
// the shuffled candidates.
func (b *QueueBuilder) BuildStandard(candidates []domain.Question, perRound int, extremeOnly bool) []domain.Question {
	pool := b.shuffled(candidates)

	quota, ok := quotaTable[perRound]
	if !ok || extremeOnly {
		return truncate(pool, perRound)
	}

	queue := make([]domain.Question, 0, perRound)
	for _, level := range domain.Difficulties {
		want := quota[level]
		for _, q := range pool {
			if want == 0 {
				break
			}
			if q.Difficulty == level {
				queue = append(queue, q)
				want--
			}
		}
	}
	if len(queue) == 0 {
		queue = truncate(pool, perRound)
	}

	// Reshuffle so difficulty order is not predictable.
	b.rnd.Shuffle(len(queue), func(i, j int) {
		queue[i], queue[j] = queue[j], queue[i]
	})
	return queue
}

// BuildStream returns the whole candidate pool in shuffled order for a
// time-bounded turn. Exhausting it never ends the turn; the session rebuilds
// the stream and keeps going until the clock runs out.
func (b *QueueBuilder) BuildStream(candidates []domain.Question) []domain.Question {
	return b.shuffled(candidates)
}

func (b *QueueBuilder) shuffled(qs []domain.Question) []domain.Question {
	out := make([]domain.Question, len(qs))
	copy(out, qs)
	b.rnd.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

func truncate(qs []domain.Question, n int) []domain.Question {
	if len(qs) > n {
		return qs[:n]
	}
	return qs
}
