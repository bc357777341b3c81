package domain

import "errors"

var (
	// ErrInvalidConfig is returned when a session config fails validation at start.
	ErrInvalidConfig = errors.New("invalid session config")
	// ErrIllegalTransition is returned when an operation is not allowed in the current session state.
	ErrIllegalTransition = errors.New("operation not allowed in current session state")
	// ErrTeamOutOfRange indicates a team index outside the configured team count.
	ErrTeamOutOfRange = errors.New("team index out of range")
	// ErrTeamNotEligible indicates a team that may not score under the active scoring variant.
	ErrTeamNotEligible = errors.New("team is not eligible to score on this turn")
	// ErrNoQuestions indicates the question source produced an empty collection.
	ErrNoQuestions = errors.New("question pool is empty")
)
