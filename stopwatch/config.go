package stopwatch

import (
	"image/color"
	"time"
)

// Policy defaults. The break divisors map accumulated study time to the
// allotted break length; the cutoff rejects breaks after very short study
// stretches.
const (
	DefaultStudyCutoff        = 300 * time.Second
	DefaultLongBreakThreshold = 3000 * time.Second
	DefaultLongBreakDivisor   = 3.5
	DefaultShortBreakDivisor  = 5.0

	TickInterval = 100 * time.Millisecond
	AdjustStep   = 10 * time.Second
)

// UI constants
const (
	FontSize      float32 = 25.0 // State label
	FontSizeTime  float32 = 64.0 // Minute display
	WidgetWidth           = 220
	WidgetHeight          = 150
	GapButton             = 5
	CornerRadius  float32 = 10.0
	FooterSpacing         = 5
)

// State backdrop colors, one per display color class.
var (
	PausedColor   = color.NRGBA{R: 0xb0, G: 0x8a, B: 0x2e, A: 0xff}
	RunningColor  = color.NRGBA{R: 0x2e, G: 0x7d, B: 0x32, A: 0xff}
	BreakingColor = color.NRGBA{R: 0x1f, G: 0x5f, B: 0x8b, A: 0xff}
	StoppedColor  = color.NRGBA{R: 0x8b, G: 0x2f, B: 0x2f, A: 0xff}
)

// StateColor returns the backdrop color for a state.
func StateColor(s State) color.NRGBA {
	switch s {
	case StateRunning:
		return RunningColor
	case StateBreaking:
		return BreakingColor
	case StateStopped:
		return StoppedColor
	}
	return PausedColor
}

// Policy holds the break scheduling parameters.
type Policy struct {
	// StudyCutoff is the minimum accumulated study time before a break
	// may start.
	StudyCutoff time.Duration
	// LongBreakThreshold selects the long-break divisor at or above this
	// much study time.
	LongBreakThreshold time.Duration
	LongBreakDivisor   float64
	ShortBreakDivisor  float64
}

// DefaultPolicy returns the stock break policy.
func DefaultPolicy() Policy {
	return Policy{
		StudyCutoff:        DefaultStudyCutoff,
		LongBreakThreshold: DefaultLongBreakThreshold,
		LongBreakDivisor:   DefaultLongBreakDivisor,
		ShortBreakDivisor:  DefaultShortBreakDivisor,
	}
}

func (p Policy) withDefaults() Policy {
	def := DefaultPolicy()
	if p.StudyCutoff <= 0 {
		p.StudyCutoff = def.StudyCutoff
	}
	if p.LongBreakThreshold <= 0 {
		p.LongBreakThreshold = def.LongBreakThreshold
	}
	if p.LongBreakDivisor <= 0 {
		p.LongBreakDivisor = def.LongBreakDivisor
	}
	if p.ShortBreakDivisor <= 0 {
		p.ShortBreakDivisor = def.ShortBreakDivisor
	}
	return p
}

// BreakFor maps accumulated study time to the allotted break length. It is
// evaluated once at break start and never recomputed mid-break.
func (p Policy) BreakFor(study time.Duration) time.Duration {
	if study >= p.LongBreakThreshold {
		return time.Duration(float64(study) / p.LongBreakDivisor)
	}
	return time.Duration(float64(study) / p.ShortBreakDivisor)
}
