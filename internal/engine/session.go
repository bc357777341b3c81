package engine

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"imageguess-engine/internal/domain"
)

// Session drives one quiz session through setup -> playing -> finished. It owns
// the round queue, team scores, the used-question registry and the single
// active timer; all public operations are synchronous and serialized by one
// mutex, so snapshots are always consistent.
type Session struct {
	id  string
	log zerolog.Logger

	mu       sync.Mutex
	state    domain.SessionState
	cfg      domain.SessionConfig
	pool     *Pool
	builder  *QueueBuilder
	policy   ScoringPolicy
	timer    *TimerController
	timerGen uint64

	queue     []domain.Question
	index     int
	round     int
	turnTeam  int
	scores    []int
	scored    map[int]struct{}
	revealed  bool
	standings []domain.Standing

	subscribers map[chan domain.Snapshot]struct{}
}

type sessionOptions struct {
	clock  clockwork.Clock
	rnd    *rand.Rand
	logger zerolog.Logger
}

// Option customizes a Session, mainly for deterministic tests.
type Option func(*sessionOptions)

// WithClock substitutes the wall clock driving the countdowns.
func WithClock(clock clockwork.Clock) Option {
	return func(o *sessionOptions) { o.clock = clock }
}

// WithRand substitutes the shuffle source.
func WithRand(rnd *rand.Rand) Option {
	return func(o *sessionOptions) { o.rnd = rnd }
}

// WithLogger attaches a logger; the session id is added as a field.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *sessionOptions) { o.logger = logger }
}

// NewSession creates a session in Setup over the given question collection.
func NewSession(questions []domain.Question, opts ...Option) *Session {
	o := sessionOptions{
		clock:  clockwork.NewRealClock(),
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Session{
		id:          uuid.NewString(),
		state:       domain.StateSetup,
		pool:        NewPool(questions),
		builder:     NewQueueBuilder(o.rnd),
		scored:      make(map[int]struct{}),
		subscribers: make(map[chan domain.Snapshot]struct{}),
	}
	s.log = o.logger.With().Str("session_id", s.id).Logger()
	s.timer = NewTimerController(o.clock, s.onTimerTick, s.onTimerExpired)
	return s
}

// ID returns the session identifier used in snapshots and log fields.
func (s *Session) ID() string {
	return s.id
}

// Start validates the config and begins round 1 (standard) or team 0's turn
// (time-attack). Legal from Setup and Finished; a failed validation leaves the
// session untouched.
func (s *Session) Start(cfg domain.SessionConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == domain.StatePlaying {
		return fmt.Errorf("%w: session already playing", domain.ErrIllegalTransition)
	}
	if s.pool.Size() == 0 {
		return domain.ErrNoQuestions
	}

	s.cfg = cfg
	s.policy = NewScoringPolicy(cfg)
	s.scores = make([]int, cfg.TeamCount)
	s.standings = nil
	s.round = 1
	s.turnTeam = 0
	s.pool.ResetUsed()
	s.state = domain.StatePlaying

	if cfg.Mode == domain.ModeTimeAttack {
		s.beginTurnLocked()
	} else {
		s.beginRoundLocked()
	}

	s.log.Info().
		Str("mode", string(cfg.Mode)).
		Int("teams", cfg.TeamCount).
		Int("rounds", cfg.RoundCount).
		Int("queue_len", len(s.queue)).
		Msg("session started")
	s.broadcastLocked()
	return nil
}

// Advance moves the operator to the next question. It is the single mutating
// entry point for "next": any per-question countdown is cancelled first so a
// stale expiry cannot fire after the state has moved on.
func (s *Session) Advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.StatePlaying {
		return fmt.Errorf("%w: advance requires an active session", domain.ErrIllegalTransition)
	}

	if s.cfg.Mode == domain.ModeStandard {
		s.timerGen = 0
		s.timer.Cancel()
	}

	s.index++
	if s.index >= len(s.queue) {
		switch {
		case s.cfg.Mode == domain.ModeTimeAttack:
			// A turn ends strictly by time, never by running out of questions:
			// reshuffle the same filtered pool and keep serving.
			s.queue = s.builder.BuildStream(s.pool.Candidates(s.cfg.Filter, 1))
			s.pool.MarkUsed(s.queue)
			s.index = 0
			s.log.Debug().Int("team", s.turnTeam).Msg("stream queue recycled")
		case s.round >= s.cfg.RoundCount:
			s.finishLocked()
			s.broadcastLocked()
			return nil
		default:
			s.round++
			s.beginRoundLocked()
			s.log.Debug().Int("round", s.round).Int("queue_len", len(s.queue)).Msg("round started")
			s.broadcastLocked()
			return nil
		}
	}

	s.clearQuestionLocked()
	if s.cfg.Mode == domain.ModeStandard {
		s.startQuestionTimerLocked()
	}
	s.broadcastLocked()
	return nil
}

// RevealAnswer flips the per-question revealed flag. Idempotent; no scoring
// side effect.
func (s *Session) RevealAnswer() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.StatePlaying {
		return fmt.Errorf("%w: reveal requires an active session", domain.ErrIllegalTransition)
	}
	if !s.revealed {
		s.revealed = true
		s.broadcastLocked()
	}
	return nil
}

// ScoreTeam awards the current question's points to a team. A team scores at
// most once per question; a repeated call is rejected silently because the
// observable state does not change.
func (s *Session) ScoreTeam(team int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.StatePlaying {
		return fmt.Errorf("%w: scoring requires an active session", domain.ErrIllegalTransition)
	}
	if team < 0 || team >= s.cfg.TeamCount {
		return fmt.Errorf("%w: team %d", domain.ErrTeamOutOfRange, team)
	}
	if !s.policy.Eligible(team, s.turnTeam) {
		return fmt.Errorf("%w: team %d, turn belongs to team %d", domain.ErrTeamNotEligible, team, s.turnTeam)
	}
	if _, done := s.scored[team]; done {
		return nil
	}
	q, ok := s.currentQuestionLocked()
	if !ok {
		return fmt.Errorf("%w: no current question", domain.ErrIllegalTransition)
	}

	points := PointsFor(q.Difficulty)
	s.scores[team] += points
	s.scored[team] = struct{}{}
	s.log.Debug().Int("team", team).Int("points", points).Str("question_id", q.ID).Msg("team scored")
	s.broadcastLocked()
	return nil
}

// MarkWrong applies the wrong-answer penalty to a team when the session was
// configured with one; otherwise it is a no-op. Scores never go below zero.
func (s *Session) MarkWrong(team int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.StatePlaying {
		return fmt.Errorf("%w: penalty requires an active session", domain.ErrIllegalTransition)
	}
	if team < 0 || team >= s.cfg.TeamCount {
		return fmt.Errorf("%w: team %d", domain.ErrTeamOutOfRange, team)
	}
	if !s.policy.Eligible(team, s.turnTeam) {
		return fmt.Errorf("%w: team %d, turn belongs to team %d", domain.ErrTeamNotEligible, team, s.turnTeam)
	}
	if !s.policy.WrongPenalty {
		return nil
	}
	if s.scores[team] > 0 {
		s.scores[team]--
	}
	s.log.Debug().Int("team", team).Msg("wrong-answer penalty applied")
	s.broadcastLocked()
	return nil
}

// Reset discards all session state and returns to Setup. Legal from any state.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.timerGen = 0
	s.timer.Cancel()
	s.state = domain.StateSetup
	s.cfg = domain.SessionConfig{}
	s.queue = nil
	s.index = 0
	s.round = 0
	s.turnTeam = 0
	s.scores = nil
	s.scored = make(map[int]struct{})
	s.revealed = false
	s.standings = nil
	s.pool.ResetUsed()
	s.log.Info().Msg("session reset to setup")
	s.broadcastLocked()
}

// Standings returns the final ranking, or nil while the session is not finished.
func (s *Session) Standings() []domain.Standing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Standing(nil), s.standings...)
}

// Snapshot returns the current presentation-layer view.
func (s *Session) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe returns a channel that receives a snapshot after every state
// change, starting with the current one. The caller must invoke the returned
// cancel function to avoid leaks.
func (s *Session) Subscribe() (<-chan domain.Snapshot, func()) {
	ch := make(chan domain.Snapshot, 8)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	initial := s.snapshotLocked()
	s.mu.Unlock()

	ch <- initial

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// beginRoundLocked builds and installs the queue for the current standard round.
func (s *Session) beginRoundLocked() {
	need := s.cfg.QuestionsPerRound
	candidates := s.pool.Candidates(s.cfg.Filter, need)
	s.queue = s.builder.BuildStandard(candidates, need, s.cfg.Filter.ExtremeOnly)
	s.pool.MarkUsed(s.queue)
	s.index = 0
	s.clearQuestionLocked()
	s.startQuestionTimerLocked()
}

// beginTurnLocked builds the stream queue and arms the per-team countdown for
// the current team's time-attack turn.
func (s *Session) beginTurnLocked() {
	candidates := s.pool.Candidates(s.cfg.Filter, 1)
	s.queue = s.builder.BuildStream(candidates)
	s.pool.MarkUsed(s.queue)
	s.index = 0
	s.clearQuestionLocked()
	s.timerGen = s.timer.Start(TimerPerTeam, s.cfg.Timer.PerTeamTotalSeconds)
}

func (s *Session) startQuestionTimerLocked() {
	if s.cfg.Mode == domain.ModeStandard && s.cfg.Timer.Enabled {
		s.timerGen = s.timer.Start(TimerPerQuestion, s.cfg.Timer.PerQuestionSeconds)
	}
}

func (s *Session) clearQuestionLocked() {
	s.scored = make(map[int]struct{})
	s.revealed = false
}

// nextTeamLocked rotates to the next time-attack turn, or finishes after the
// last team. The remainder of the expired team's queue is discarded.
func (s *Session) nextTeamLocked() {
	s.turnTeam++
	if s.turnTeam >= s.cfg.TeamCount {
		s.finishLocked()
		return
	}
	s.log.Debug().Int("team", s.turnTeam).Msg("turn started")
	s.beginTurnLocked()
}

// finishLocked computes the ranking: score descending, ties keep ascending
// team-index order via a stable sort.
func (s *Session) finishLocked() {
	s.timerGen = 0
	s.timer.Cancel()

	standings := make([]domain.Standing, len(s.scores))
	for i, score := range s.scores {
		standings[i] = domain.Standing{Team: i, Score: score}
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Score > standings[j].Score
	})
	s.standings = standings
	s.queue = nil
	s.index = 0
	s.revealed = false
	s.state = domain.StateFinished
	s.log.Info().Ints("scores", append([]int(nil), s.scores...)).Msg("session finished")
}

// onTimerTick re-publishes the snapshot once per countdown second.
func (s *Session) onTimerTick(_ TimerKind, gen uint64, remaining int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != domain.StatePlaying || gen != s.timerGen || remaining <= 0 {
		return
	}
	s.broadcastLocked()
}

// onTimerExpired handles countdown expiry. A generation mismatch means the
// session already advanced past the question or turn this timer belonged to,
// so the expiry is dropped.
func (s *Session) onTimerExpired(kind TimerKind, gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.StatePlaying || gen != s.timerGen {
		return
	}
	s.timerGen = 0

	switch kind {
	case TimerPerQuestion:
		// Auto-reveal, but do not auto-advance; the operator moves on explicitly.
		s.revealed = true
		s.log.Debug().Int("index", s.index).Msg("question timer expired")
	case TimerPerTeam:
		s.log.Debug().Int("team", s.turnTeam).Msg("turn timer expired")
		s.nextTeamLocked()
	}
	s.broadcastLocked()
}

func (s *Session) currentQuestionLocked() (domain.Question, bool) {
	if s.state != domain.StatePlaying || s.index < 0 || s.index >= len(s.queue) {
		return domain.Question{}, false
	}
	return s.queue[s.index], true
}

func (s *Session) snapshotLocked() domain.Snapshot {
	snap := domain.Snapshot{
		SessionID:     s.id,
		State:         s.state,
		Mode:          s.cfg.Mode,
		Round:         s.round,
		TurnTeam:      s.turnTeam,
		QuestionIndex: s.index,
		QueueLength:   len(s.queue),
		Revealed:      s.revealed,
		Scores:        append([]int(nil), s.scores...),
		Standings:     append([]domain.Standing(nil), s.standings...),
	}

	scored := make([]int, 0, len(s.scored))
	for team := range s.scored {
		scored = append(scored, team)
	}
	sort.Ints(scored)
	snap.ScoredTeams = scored

	if q, ok := s.currentQuestionLocked(); ok {
		view := &domain.QuestionView{
			ID:         q.ID,
			Images:     append([]string(nil), q.Images...),
			Difficulty: q.Difficulty,
			Points:     PointsFor(q.Difficulty),
		}
		if s.revealed {
			view.Answer = q.Answer
		}
		snap.Question = view
	}

	if state, kind, remaining := s.timer.Status(); state == TimerRunning {
		r := remaining
		snap.TimerRemaining = &r
		switch kind {
		case TimerPerQuestion:
			snap.TimerWarning = remaining <= 5
		case TimerPerTeam:
			snap.TimerWarning = remaining <= 10
		}
	}
	return snap
}

// broadcastLocked fans the snapshot out to subscribers, dropping the stalest
// pending update when a subscriber's buffer is full so a slow consumer never
// blocks the engine.
func (s *Session) broadcastLocked() {
	snap := s.snapshotLocked()
	for ch := range s.subscribers {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}
