// Package stopwatch contains the domain logic for StudyLight: the study
// session state machine, the break-duration policy and the display
// formatting helpers.
//
// Maintenance notes:
//   - Session is deliberately lock-free. All mutations (including the
//     periodic tick) must go through the application command loop so the
//     session is only ever touched from a single goroutine. Do not call
//     Session methods from UI callbacks directly; enqueue a command.
//   - Transition methods are side-effect free: they return values and
//     errors, and the application boundary decides what to play, log or
//     record. Keep it that way so the state machine stays testable without
//     a display or audio environment.
package stopwatch

import (
	"errors"
	"fmt"
	"time"
)

// State enumerates the session states.
type State int

const (
	StatePaused State = iota
	StateRunning
	StateBreaking
	StateStopped
)

// String returns the lower-case state name used in logs.
func (s State) String() string {
	switch s {
	case StatePaused:
		return "paused"
	case StateRunning:
		return "running"
	case StateBreaking:
		return "breaking"
	case StateStopped:
		return "stopped"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Invalid operations are rejected without mutating the session. They all
// unwrap to ErrInvalidOperation so the boundary can treat them uniformly.
var (
	ErrInvalidOperation  = errors.New("invalid operation")
	ErrPauseDuringBreak  = fmt.Errorf("%w: cannot pause during a break", ErrInvalidOperation)
	ErrBreakTooEarly     = fmt.Errorf("%w: not enough study time for a break", ErrInvalidOperation)
	ErrBreakWhileStopped = fmt.Errorf("%w: cannot start a break while stopped", ErrInvalidOperation)
)

// ErrUnknownState reports a state value outside the defined set. It marks an
// internal consistency failure: the triggering operation is aborted and the
// boundary must report it loudly, but the process keeps running.
var ErrUnknownState = errors.New("unknown session state")

// Session is the stopwatch state machine. startTime is the reference point
// for the current state: the (virtual) study start while Running, the break
// start while Breaking. runningTime holds the frozen accumulated study time
// while Paused/Stopped and is refreshed on every tick while Running.
// remainingBreak is set once at break start and cleared only when a break
// naturally expires.
type Session struct {
	clock  Clock
	policy Policy

	state          State
	startTime      time.Time
	runningTime    time.Duration
	remainingBreak time.Duration
}

// Snapshot is a copy of the session fields for display and logging.
type Snapshot struct {
	State          State
	RunningTime    time.Duration
	RemainingBreak time.Duration
}

// TickResult is the outcome of the periodic time query. Display carries the
// elapsed study time (Running/Paused/Stopped) or the remaining break time
// (Breaking). BreakExpired is true on the single tick that ends a break.
type TickResult struct {
	State        State
	Display      time.Duration
	BreakExpired bool
}

// NewSession creates a session in the Paused state.
func NewSession(clock Clock, policy Policy) *Session {
	if clock == nil {
		clock = SystemClock
	}
	return &Session{
		clock:     clock,
		policy:    policy.withDefaults(),
		state:     StatePaused,
		startTime: clock.Now(),
	}
}

// Snapshot returns a copy of the current session fields.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		State:          s.state,
		RunningTime:    s.runningTime,
		RemainingBreak: s.remainingBreak,
	}
}

// ToggleRun switches between Running and Paused, or restarts a fresh study
// session after a break has stopped the watch. Pausing during a break is an
// invalid operation.
func (s *Session) ToggleRun() error {
	now := s.clock.Now()
	switch s.state {
	case StatePaused:
		// Rebase so that now - startTime equals the accumulated time.
		s.startTime = now.Add(-s.runningTime)
		s.state = StateRunning
	case StateStopped:
		s.startTime = now
		s.runningTime = 0
		s.state = StateRunning
	case StateRunning:
		s.runningTime = now.Sub(s.startTime)
		s.state = StatePaused
	case StateBreaking:
		return ErrPauseDuringBreak
	default:
		return fmt.Errorf("%w: %v", ErrUnknownState, s.state)
	}
	return nil
}

// ToggleBreak starts a break from Paused/Running when enough study time has
// accumulated, or ends a break early by returning to Running. The returned
// duration is the allotted break length; it is non-zero exactly when a break
// was started, so the caller can record it.
func (s *Session) ToggleBreak() (time.Duration, error) {
	now := s.clock.Now()
	switch s.state {
	case StateRunning:
		frozen := now.Sub(s.startTime)
		if frozen < s.policy.StudyCutoff {
			return 0, ErrBreakTooEarly
		}
		s.runningTime = frozen
		return s.startBreak(now), nil
	case StatePaused:
		if s.runningTime < s.policy.StudyCutoff {
			return 0, ErrBreakTooEarly
		}
		return s.startBreak(now), nil
	case StateBreaking:
		// Back to studying. startTime and the stale remainingBreak are
		// left alone; remainingBreak is only cleared on natural expiry.
		s.state = StateRunning
		return 0, nil
	case StateStopped:
		return 0, ErrBreakWhileStopped
	default:
		return 0, fmt.Errorf("%w: %v", ErrUnknownState, s.state)
	}
}

func (s *Session) startBreak(now time.Time) time.Duration {
	s.remainingBreak = s.policy.BreakFor(s.runningTime)
	s.startTime = now
	s.state = StateBreaking
	return s.remainingBreak
}

// Tick answers the periodic elapsed-or-remaining query. While Running it
// refreshes runningTime; while Breaking it detects expiry and stops the
// session exactly once.
func (s *Session) Tick() (TickResult, error) {
	now := s.clock.Now()
	switch s.state {
	case StateRunning:
		s.runningTime = now.Sub(s.startTime)
		return TickResult{State: StateRunning, Display: s.runningTime}, nil
	case StateBreaking:
		elapsed := now.Sub(s.startTime)
		if elapsed >= s.remainingBreak {
			s.state = StateStopped
			s.remainingBreak = 0
			return TickResult{State: StateStopped, BreakExpired: true}, nil
		}
		return TickResult{State: StateBreaking, Display: s.remainingBreak - elapsed}, nil
	case StatePaused, StateStopped:
		return TickResult{State: s.state, Display: s.runningTime}, nil
	default:
		return TickResult{State: s.state}, fmt.Errorf("%w: %v", ErrUnknownState, s.state)
	}
}

// FastForward moves perceived time forward by step: more elapsed study time
// while Running/Paused, less remaining break while Breaking. No-op while
// Stopped.
func (s *Session) FastForward(step time.Duration) error {
	switch s.state {
	case StateRunning:
		s.startTime = s.startTime.Add(-step)
	case StatePaused:
		s.startTime = s.startTime.Add(-step)
		s.runningTime += step
	case StateBreaking:
		// Aging the break origin makes more of it count as spent.
		s.startTime = s.startTime.Add(-step)
	case StateStopped:
	default:
		return fmt.Errorf("%w: %v", ErrUnknownState, s.state)
	}
	return nil
}

// Rewind moves perceived time backward by step. While Running/Paused the
// elapsed study time is clamped at zero rather than going negative; while
// Breaking the remaining break time is extended without a clamp. No-op
// while Stopped.
func (s *Session) Rewind(step time.Duration) error {
	switch s.state {
	case StateRunning:
		elapsed := s.clock.Now().Sub(s.startTime)
		if elapsed < step {
			step = elapsed
		}
		if step < 0 {
			step = 0
		}
		s.startTime = s.startTime.Add(step)
	case StatePaused:
		if s.runningTime < step {
			step = s.runningTime
		}
		s.startTime = s.startTime.Add(step)
		s.runningTime -= step
	case StateBreaking:
		s.startTime = s.startTime.Add(step)
	case StateStopped:
	default:
		return fmt.Errorf("%w: %v", ErrUnknownState, s.state)
	}
	return nil
}

// Reset rebases startTime to now in any state, discarding the elapsed time
// of the current state. It deliberately leaves runningTime and
// remainingBreak alone.
func (s *Session) Reset() {
	s.startTime = s.clock.Now()
}
