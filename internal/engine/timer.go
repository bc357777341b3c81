package engine

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// TimerKind distinguishes the two countdown flavors.
type TimerKind int

const (
	// TimerPerQuestion counts down a single question; expiry reveals the answer.
	TimerPerQuestion TimerKind = iota
	// TimerPerTeam counts down a whole time-attack turn; expiry rotates teams.
	TimerPerTeam
)

// TimerState tracks the countdown lifecycle: Idle -> Running -> Expired|Cancelled.
type TimerState int

const (
	TimerIdle TimerState = iota
	TimerRunning
	TimerExpired
	TimerCancelled
)

// TimerController manages at most one active countdown. Starting a new timer
// implicitly cancels the previous one; every start bumps a generation counter
// that callbacks carry, so a stale expiry can never act after the session has
// moved on.
type TimerController struct {
	clock    clockwork.Clock
	onTick   func(kind TimerKind, gen uint64, remaining int)
	onExpire func(kind TimerKind, gen uint64)

	mu        sync.Mutex
	state     TimerState
	kind      TimerKind
	remaining int
	gen       uint64
	stop      chan struct{}
}

func NewTimerController(clock clockwork.Clock, onTick func(TimerKind, uint64, int), onExpire func(TimerKind, uint64)) *TimerController {
	return &TimerController{
		clock:    clock,
		onTick:   onTick,
		onExpire: onExpire,
	}
}

// Start begins a countdown of the given length and returns its generation.
// Any previously running countdown is cancelled first.
func (t *TimerController) Start(kind TimerKind, seconds int) uint64 {
	t.mu.Lock()
	t.cancelLocked()
	t.gen++
	gen := t.gen
	t.state = TimerRunning
	t.kind = kind
	t.remaining = seconds
	stop := make(chan struct{})
	t.stop = stop
	t.mu.Unlock()

	go t.run(gen, kind, stop)
	return gen
}

// Cancel stops a running countdown. Safe to call in any state.
func (t *TimerController) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelLocked()
}

func (t *TimerController) cancelLocked() {
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
	if t.state == TimerRunning {
		t.state = TimerCancelled
	}
}

// Status returns the current state, the kind of the last started countdown,
// and the remaining whole seconds.
func (t *TimerController) Status() (TimerState, TimerKind, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state, t.kind, t.remaining
}

// State returns the countdown lifecycle state.
func (t *TimerController) State() TimerState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *TimerController) run(gen uint64, kind TimerKind, stop chan struct{}) {
	ticker := t.clock.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.Chan():
			t.mu.Lock()
			if t.gen != gen || t.state != TimerRunning {
				t.mu.Unlock()
				return
			}
			t.remaining--
			remaining := t.remaining
			expired := remaining <= 0
			if expired {
				t.state = TimerExpired
				t.stop = nil
			}
			t.mu.Unlock()

			// Callbacks run outside the timer lock; the session re-checks the
			// generation under its own lock before acting.
			if t.onTick != nil {
				t.onTick(kind, gen, remaining)
			}
			if expired {
				if t.onExpire != nil {
					t.onExpire(kind, gen)
				}
				return
			}
		}
	}
}
