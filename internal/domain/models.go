package domain

import "fmt"

// Difficulty buckets questions for quota selection and scoring.
type Difficulty string

const (
	DifficultyEasy    Difficulty = "easy"
	DifficultyNormal  Difficulty = "normal"
	DifficultyHard    Difficulty = "hard"
	DifficultyExtreme Difficulty = "extreme"
)

// Difficulties lists every level in quota-selection order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyExtreme}

// Valid reports whether d is one of the four known levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyExtreme:
		return true
	}
	return false
}

// Question is an immutable record supplied by the question source.
// The engine never mutates it.
type Question struct {
	ID         string     `json:"id"`
	Language   string     `json:"language"`
	Group      string     `json:"group"`
	Category   string     `json:"category"`
	Difficulty Difficulty `json:"difficulty"`
	Answer     string     `json:"answer"`
	Images     []string   `json:"images"` // 0-4 ordered image references
}

// Filter narrows the question pool. Zero values match everything.
type Filter struct {
	Language    string   `json:"language,omitempty"`
	Group       string   `json:"group,omitempty"`
	Categories  []string `json:"categories,omitempty"`
	ExtremeOnly bool     `json:"extremeOnly,omitempty"`
}

// Matches reports whether q satisfies every non-empty predicate of the filter.
func (f Filter) Matches(q Question) bool {
	if f.Language != "" && q.Language != f.Language {
		return false
	}
	if f.Group != "" && q.Group != f.Group {
		return false
	}
	if len(f.Categories) > 0 {
		found := false
		for _, c := range f.Categories {
			if q.Category == c {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.ExtremeOnly && q.Difficulty != DifficultyExtreme {
		return false
	}
	return true
}

// Mode selects how rounds are bounded.
type Mode string

const (
	// ModeStandard plays a fixed number of questions per round, all teams scoring together.
	ModeStandard Mode = "standard"
	// ModeTimeAttack gives each team its own time-bounded turn over an unbounded queue.
	ModeTimeAttack Mode = "timeAttack"
)

// ScoringVariant decides which teams may claim points on a question.
type ScoringVariant string

const (
	// ScoringSimultaneous lets every team score independently, each at most once per question.
	ScoringSimultaneous ScoringVariant = "simultaneous"
	// ScoringTurnBased restricts scoring to the team whose turn it is.
	ScoringTurnBased ScoringVariant = "turnBased"
)

// TimerConfig controls the countdowns. PerTeamTotalSeconds always applies in
// time-attack mode; Enabled gates only the standard-mode per-question countdown.
type TimerConfig struct {
	Enabled             bool `json:"enabled"`
	PerQuestionSeconds  int  `json:"perQuestionSeconds"`
	PerTeamTotalSeconds int  `json:"perTeamTotalSeconds"`
}

// SessionConfig is constructed once at session start and immutable thereafter.
type SessionConfig struct {
	Mode              Mode           `json:"mode"`
	QuestionsPerRound int            `json:"questionsPerRound"`
	RoundCount        int            `json:"roundCount"`
	TeamCount         int            `json:"teamCount"`
	Scoring           ScoringVariant `json:"scoring,omitempty"` // empty = mode default
	WrongPenalty      bool           `json:"wrongPenalty,omitempty"`
	Timer             TimerConfig    `json:"timer"`
	Filter            Filter         `json:"filter"`
}

// Validate rejects configs the engine cannot start with. No state is mutated on failure.
func (c SessionConfig) Validate() error {
	switch c.Mode {
	case ModeStandard, ModeTimeAttack:
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, c.Mode)
	}
	if c.TeamCount < 1 {
		return fmt.Errorf("%w: team count must be at least 1", ErrInvalidConfig)
	}
	if c.RoundCount < 1 {
		return fmt.Errorf("%w: round count must be at least 1", ErrInvalidConfig)
	}
	if c.Mode == ModeStandard && c.QuestionsPerRound <= 0 {
		return fmt.Errorf("%w: questions per round must be positive", ErrInvalidConfig)
	}
	if c.Mode == ModeStandard && c.Timer.Enabled && c.Timer.PerQuestionSeconds <= 0 {
		return fmt.Errorf("%w: per-question timer must be positive", ErrInvalidConfig)
	}
	if c.Mode == ModeTimeAttack && c.Timer.PerTeamTotalSeconds <= 0 {
		return fmt.Errorf("%w: per-team timer must be positive", ErrInvalidConfig)
	}
	switch c.Scoring {
	case "", ScoringSimultaneous, ScoringTurnBased:
	default:
		return fmt.Errorf("%w: unknown scoring variant %q", ErrInvalidConfig, c.Scoring)
	}
	return nil
}

// EffectiveScoring resolves the configured variant, defaulting by mode:
// standard rounds score simultaneously, time-attack turns score turn-based.
func (c SessionConfig) EffectiveScoring() ScoringVariant {
	if c.Scoring != "" {
		return c.Scoring
	}
	if c.Mode == ModeTimeAttack {
		return ScoringTurnBased
	}
	return ScoringSimultaneous
}

// SessionState is the coarse lifecycle phase of a session.
type SessionState string

const (
	StateSetup    SessionState = "setup"
	StatePlaying  SessionState = "playing"
	StateFinished SessionState = "finished"
)

// QuestionView is the presentation-safe projection of the current question.
// Answer is populated only once the question has been revealed.
type QuestionView struct {
	ID         string     `json:"id"`
	Images     []string   `json:"images"`
	Difficulty Difficulty `json:"difficulty"`
	Points     int        `json:"points"`
	Answer     string     `json:"answer,omitempty"`
}

// Standing is one row of the final ranking.
type Standing struct {
	Team  int `json:"team"`
	Score int `json:"score"`
}

// Snapshot is emitted to the presentation layer after every state-changing call.
type Snapshot struct {
	SessionID      string        `json:"sessionId"`
	State          SessionState  `json:"state"`
	Mode           Mode          `json:"mode,omitempty"`
	Round          int           `json:"round"`
	TurnTeam       int           `json:"turnTeam"`
	QuestionIndex  int           `json:"questionIndex"`
	QueueLength    int           `json:"queueLength"`
	Question       *QuestionView `json:"question,omitempty"`
	Revealed       bool          `json:"revealed"`
	Scores         []int         `json:"scores"`
	ScoredTeams    []int         `json:"scoredTeams"`
	TimerRemaining *int          `json:"timerRemaining,omitempty"`
	TimerWarning   bool          `json:"timerWarning,omitempty"`
	Standings      []Standing    `json:"standings,omitempty"`
}
