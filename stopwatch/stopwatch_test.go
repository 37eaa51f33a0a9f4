package stopwatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestSession(t *testing.T) (*Session, *fakeClock) {
	t.Helper()
	clk := &fakeClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	return NewSession(clk, DefaultPolicy()), clk
}

// startBreakSession runs the session long enough to earn a break and starts
// one, returning the allotted break length.
func startBreakSession(t *testing.T, s *Session, clk *fakeClock, study time.Duration) time.Duration {
	t.Helper()
	require.NoError(t, s.ToggleRun())
	clk.advance(study)
	breakLen, err := s.ToggleBreak()
	require.NoError(t, err)
	require.Equal(t, StateBreaking, s.Snapshot().State)
	return breakLen
}

func TestNewSessionStartsPaused(t *testing.T) {
	s, _ := newTestSession(t)

	snap := s.Snapshot()
	require.Equal(t, StatePaused, snap.State)
	require.Zero(t, snap.RunningTime)
	require.Zero(t, snap.RemainingBreak)
}

func TestToggleRunPauseRoundTripAccumulates(t *testing.T) {
	s, clk := newTestSession(t)

	require.NoError(t, s.ToggleRun())
	clk.advance(120 * time.Second)
	require.NoError(t, s.ToggleRun()) // pause
	require.Equal(t, StatePaused, s.Snapshot().State)
	require.Equal(t, 120*time.Second, s.Snapshot().RunningTime)

	// Time spent paused does not count.
	clk.advance(45 * time.Second)
	res, err := s.Tick()
	require.NoError(t, err)
	require.Equal(t, 120*time.Second, res.Display)

	require.NoError(t, s.ToggleRun()) // resume
	clk.advance(30 * time.Second)
	res, err = s.Tick()
	require.NoError(t, err)
	require.Equal(t, StateRunning, res.State)
	require.Equal(t, 150*time.Second, res.Display)
}

func TestRunningTickUpdatesRunningTime(t *testing.T) {
	s, clk := newTestSession(t)

	require.NoError(t, s.ToggleRun())
	clk.advance(42 * time.Second)
	res, err := s.Tick()
	require.NoError(t, err)
	require.Equal(t, 42*time.Second, res.Display)
	require.Equal(t, 42*time.Second, s.Snapshot().RunningTime)
}

func TestToggleRunRejectedDuringBreak(t *testing.T) {
	s, clk := newTestSession(t)
	startBreakSession(t, s, clk, 600*time.Second)

	err := s.ToggleRun()
	require.ErrorIs(t, err, ErrPauseDuringBreak)
	require.ErrorIs(t, err, ErrInvalidOperation)
	require.Equal(t, StateBreaking, s.Snapshot().State)
}

func TestToggleBreakTooEarlyWhilePaused(t *testing.T) {
	s, clk := newTestSession(t)

	require.NoError(t, s.ToggleRun())
	clk.advance(299 * time.Second)
	require.NoError(t, s.ToggleRun()) // pause

	before := s.Snapshot()
	_, err := s.ToggleBreak()
	require.ErrorIs(t, err, ErrBreakTooEarly)
	require.ErrorIs(t, err, ErrInvalidOperation)
	require.Equal(t, before, s.Snapshot())
}

func TestToggleBreakTooEarlyWhileRunning(t *testing.T) {
	s, clk := newTestSession(t)

	require.NoError(t, s.ToggleRun())
	clk.advance(299 * time.Second)

	before := s.Snapshot()
	_, err := s.ToggleBreak()
	require.ErrorIs(t, err, ErrBreakTooEarly)
	require.Equal(t, before, s.Snapshot())
}

func TestToggleBreakWhileStopped(t *testing.T) {
	s, clk := newTestSession(t)
	breakLen := startBreakSession(t, s, clk, 600*time.Second)

	clk.advance(breakLen)
	res, err := s.Tick()
	require.NoError(t, err)
	require.Equal(t, StateStopped, res.State)

	_, err = s.ToggleBreak()
	require.ErrorIs(t, err, ErrBreakWhileStopped)
	require.Equal(t, StateStopped, s.Snapshot().State)
}

func TestBreakDurationPolicyBoundaries(t *testing.T) {
	nearStudy := 2999 * time.Second
	longStudy := 3000 * time.Second

	tests := []struct {
		name  string
		study time.Duration
		want  time.Duration
	}{
		{
			name:  "cutoff exactly",
			study: 300 * time.Second,
			want:  60 * time.Second,
		},
		{
			name:  "mid range",
			study: 600 * time.Second,
			want:  120 * time.Second,
		},
		{
			name:  "just below long threshold",
			study: nearStudy,
			want:  time.Duration(float64(nearStudy) / 5),
		},
		{
			name:  "long threshold exactly",
			study: longStudy,
			want:  time.Duration(float64(longStudy) / 3.5),
		},
		{
			name:  "above long threshold",
			study: 7000 * time.Second,
			want:  2000 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, clk := newTestSession(t)
			breakLen := startBreakSession(t, s, clk, tt.study)
			require.Equal(t, tt.want, breakLen)
			require.Equal(t, tt.want, s.Snapshot().RemainingBreak)
		})
	}
}

func TestBreakExpiryScenario(t *testing.T) {
	s, clk := newTestSession(t)

	// Study for 600s; the allotted break is 600/5 = 120s.
	breakLen := startBreakSession(t, s, clk, 600*time.Second)
	require.Equal(t, 120*time.Second, breakLen)

	clk.advance(119 * time.Second)
	res, err := s.Tick()
	require.NoError(t, err)
	require.Equal(t, StateBreaking, res.State)
	require.Equal(t, 1*time.Second, res.Display)
	require.False(t, res.BreakExpired)

	clk.advance(2 * time.Second)
	res, err = s.Tick()
	require.NoError(t, err)
	require.Equal(t, StateStopped, res.State)
	require.Zero(t, res.Display)
	require.True(t, res.BreakExpired)
	require.Zero(t, s.Snapshot().RemainingBreak)

	// Expiry fires exactly once; later ticks report the frozen study time.
	clk.advance(5 * time.Second)
	res, err = s.Tick()
	require.NoError(t, err)
	require.Equal(t, StateStopped, res.State)
	require.False(t, res.BreakExpired)
	require.Equal(t, 600*time.Second, res.Display)
}

func TestToggleRunAfterStopStartsFresh(t *testing.T) {
	s, clk := newTestSession(t)
	breakLen := startBreakSession(t, s, clk, 600*time.Second)

	clk.advance(breakLen)
	_, err := s.Tick()
	require.NoError(t, err)
	require.Equal(t, StateStopped, s.Snapshot().State)

	require.NoError(t, s.ToggleRun())
	require.Equal(t, StateRunning, s.Snapshot().State)

	clk.advance(10 * time.Second)
	res, err := s.Tick()
	require.NoError(t, err)
	require.Equal(t, 10*time.Second, res.Display)
}

func TestToggleBreakDuringBreakReturnsToRunning(t *testing.T) {
	s, clk := newTestSession(t)
	startBreakSession(t, s, clk, 600*time.Second)

	clk.advance(30 * time.Second)
	breakLen, err := s.ToggleBreak()
	require.NoError(t, err)
	require.Zero(t, breakLen)
	require.Equal(t, StateRunning, s.Snapshot().State)

	// The study origin stays at the break start and the stale break budget
	// is retained until a break naturally expires.
	require.Equal(t, 120*time.Second, s.Snapshot().RemainingBreak)
	clk.advance(10 * time.Second)
	res, err := s.Tick()
	require.NoError(t, err)
	require.Equal(t, 40*time.Second, res.Display)
}

func TestFastForward(t *testing.T) {
	t.Run("running", func(t *testing.T) {
		s, clk := newTestSession(t)
		require.NoError(t, s.ToggleRun())
		clk.advance(20 * time.Second)
		require.NoError(t, s.FastForward(10*time.Second))
		res, err := s.Tick()
		require.NoError(t, err)
		require.Equal(t, 30*time.Second, res.Display)
	})

	t.Run("paused", func(t *testing.T) {
		s, clk := newTestSession(t)
		require.NoError(t, s.ToggleRun())
		clk.advance(20 * time.Second)
		require.NoError(t, s.ToggleRun())
		require.NoError(t, s.FastForward(10*time.Second))
		res, err := s.Tick()
		require.NoError(t, err)
		require.Equal(t, 30*time.Second, res.Display)

		// Resuming keeps the adjusted value.
		require.NoError(t, s.ToggleRun())
		clk.advance(5 * time.Second)
		res, err = s.Tick()
		require.NoError(t, err)
		require.Equal(t, 35*time.Second, res.Display)
	})

	t.Run("breaking shortens the break", func(t *testing.T) {
		s, clk := newTestSession(t)
		startBreakSession(t, s, clk, 600*time.Second)
		require.NoError(t, s.FastForward(10*time.Second))
		res, err := s.Tick()
		require.NoError(t, err)
		require.Equal(t, 110*time.Second, res.Display)
	})

	t.Run("breaking can hasten expiry", func(t *testing.T) {
		s, clk := newTestSession(t)
		startBreakSession(t, s, clk, 600*time.Second)

		// 115s into a 120s break, skipping 10s ahead ends it.
		clk.advance(115 * time.Second)
		require.NoError(t, s.FastForward(10*time.Second))
		res, err := s.Tick()
		require.NoError(t, err)
		require.Equal(t, StateStopped, res.State)
		require.True(t, res.BreakExpired)
	})

	t.Run("stopped is a no-op", func(t *testing.T) {
		s, clk := newTestSession(t)
		breakLen := startBreakSession(t, s, clk, 600*time.Second)
		clk.advance(breakLen)
		_, err := s.Tick()
		require.NoError(t, err)

		before := s.Snapshot()
		require.NoError(t, s.FastForward(10*time.Second))
		require.Equal(t, before, s.Snapshot())
	})
}

func TestRewind(t *testing.T) {
	t.Run("running", func(t *testing.T) {
		s, clk := newTestSession(t)
		require.NoError(t, s.ToggleRun())
		clk.advance(30 * time.Second)
		require.NoError(t, s.Rewind(10*time.Second))
		res, err := s.Tick()
		require.NoError(t, err)
		require.Equal(t, 20*time.Second, res.Display)
	})

	t.Run("clamps at zero while paused", func(t *testing.T) {
		s, clk := newTestSession(t)
		require.NoError(t, s.ToggleRun())
		clk.advance(4 * time.Second)
		require.NoError(t, s.ToggleRun())

		require.NoError(t, s.Rewind(10*time.Second))
		res, err := s.Tick()
		require.NoError(t, err)
		require.Zero(t, res.Display)
		require.GreaterOrEqual(t, res.Display, time.Duration(0))
	})

	t.Run("clamps at zero while running", func(t *testing.T) {
		s, clk := newTestSession(t)
		require.NoError(t, s.ToggleRun())
		clk.advance(4 * time.Second)
		require.NoError(t, s.Rewind(10*time.Second))
		res, err := s.Tick()
		require.NoError(t, err)
		require.Zero(t, res.Display)
	})

	t.Run("extends the break without a clamp", func(t *testing.T) {
		s, clk := newTestSession(t)
		startBreakSession(t, s, clk, 600*time.Second)
		require.NoError(t, s.Rewind(10*time.Second))
		res, err := s.Tick()
		require.NoError(t, err)
		require.Equal(t, 130*time.Second, res.Display)
	})

	t.Run("stopped is a no-op", func(t *testing.T) {
		s, clk := newTestSession(t)
		breakLen := startBreakSession(t, s, clk, 600*time.Second)
		clk.advance(breakLen)
		_, err := s.Tick()
		require.NoError(t, err)

		before := s.Snapshot()
		require.NoError(t, s.Rewind(10*time.Second))
		require.Equal(t, before, s.Snapshot())
	})
}

func TestResetRebasesStartTime(t *testing.T) {
	t.Run("running", func(t *testing.T) {
		s, clk := newTestSession(t)
		require.NoError(t, s.ToggleRun())
		clk.advance(50 * time.Second)
		s.Reset()
		res, err := s.Tick()
		require.NoError(t, err)
		require.Zero(t, res.Display)
	})

	t.Run("breaking keeps the full budget relative to a new origin", func(t *testing.T) {
		s, clk := newTestSession(t)
		startBreakSession(t, s, clk, 600*time.Second)
		clk.advance(30 * time.Second)
		s.Reset()
		res, err := s.Tick()
		require.NoError(t, err)
		require.Equal(t, StateBreaking, res.State)
		require.Equal(t, 120*time.Second, res.Display)
	})
}

func TestUnknownStateIsReported(t *testing.T) {
	s, _ := newTestSession(t)
	s.state = State(42)

	require.ErrorIs(t, s.ToggleRun(), ErrUnknownState)
	_, err := s.ToggleBreak()
	require.ErrorIs(t, err, ErrUnknownState)
	_, err = s.Tick()
	require.ErrorIs(t, err, ErrUnknownState)
	require.ErrorIs(t, s.FastForward(10*time.Second), ErrUnknownState)
	require.ErrorIs(t, s.Rewind(10*time.Second), ErrUnknownState)

	// The offending operations aborted without defaulting the state.
	require.Equal(t, State(42), s.state)
}
