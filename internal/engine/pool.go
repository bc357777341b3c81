package engine

import "imageguess-engine/internal/domain"

// Pool is an immutable view over the full question collection plus the
// session-wide used-question registry. It is owned exclusively by a Session,
// which serializes all access, so it carries no lock of its own.
type Pool struct {
	questions []domain.Question
	used      map[string]struct{}
}

func NewPool(questions []domain.Question) *Pool {
	return &Pool{
		questions: questions,
		used:      make(map[string]struct{}),
	}
}

// Size returns the number of questions in the full collection.
func (p *Pool) Size() int {
	return len(p.questions)
}

// Questions returns a copy of the full collection.
func (p *Pool) Questions() []domain.Question {
	out := make([]domain.Question, len(p.questions))
	copy(out, p.questions)
	return out
}

// Filtered applies the filter predicates. An over-restrictive filter that
// matches nothing falls back to the entire collection so a session is never
// blocked; callers shuffle, order here is not meaningful.
func (p *Pool) Filtered(f domain.Filter) []domain.Question {
	out := make([]domain.Question, 0, len(p.questions))
	for _, q := range p.questions {
		if f.Matches(q) {
			out = append(out, q)
		}
	}
	if len(out) == 0 {
		return p.Questions()
	}
	return out
}

// Candidates returns the questions eligible for the next round or turn. It
// prefers questions not yet served this session; when fewer than need remain
// unseen, the registry is recycled and the whole filtered pool is offered again.
func (p *Pool) Candidates(f domain.Filter, need int) []domain.Question {
	filtered := p.Filtered(f)
	unseen := filtered[:0:0]
	for _, q := range filtered {
		if _, ok := p.used[q.ID]; !ok {
			unseen = append(unseen, q)
		}
	}
	if len(unseen) < need {
		p.ResetUsed()
		return filtered
	}
	return unseen
}

// MarkUsed records the round's finalized queue in the registry.
func (p *Pool) MarkUsed(qs []domain.Question) {
	for _, q := range qs {
		p.used[q.ID] = struct{}{}
	}
}

// ResetUsed recycles the registry, permitting repeats.
func (p *Pool) ResetUsed() {
	p.used = make(map[string]struct{})
}

// UsedCount reports how many distinct question IDs have been served.
func (p *Pool) UsedCount() int {
	return len(p.used)
}
