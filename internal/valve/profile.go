// Package valve maps elapsed time to a valve opening fraction for the
// supported actuation curves.
package valve

import "math"

// Mode is the opening-curve family.
type Mode string

const (
	ModeLinear      Mode = "linear"
	ModeExponential Mode = "exponential"
	ModeQuickActing Mode = "quick_acting"
	ModeFixed       Mode = "fixed"
)

// Valid reports whether m is a known opening mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeLinear, ModeExponential, ModeQuickActing, ModeFixed:
		return true
	}
	return false
}

// Action is the valve travel direction.
type Action string

const (
	ActionOpen  Action = "open"
	ActionClose Action = "close"
)

// Valid reports whether a is a known valve action.
func (a Action) Valid() bool {
	return a == ActionOpen || a == ActionClose
}

// OpeningFraction returns the opening fraction in [0,1] at elapsed time t for
// the given travel duration, action, curve mode, and steepness. Fixed mode is
// instantaneous; any mode degenerates to fixed when the duration is not
// positive. Closing curves are the opening curve inverted.
func OpeningFraction(t, duration float64, action Action, mode Mode, steepness float64) float64 {
	if mode == ModeFixed || duration <= 0 {
		if action == ActionClose {
			return 0
		}
		return 1
	}

	ratio := math.Min(t/duration, 1)
	var raw float64
	switch mode {
	case ModeExponential:
		// Convex ramp: slow start, steep end.
		raw = (math.Exp(steepness*ratio) - 1) / (math.Exp(steepness) - 1)
	case ModeQuickActing:
		// Concave ramp: fast initial rise.
		raw = (1 - math.Exp(-steepness*ratio)) / (1 - math.Exp(-steepness))
	default:
		raw = ratio
	}

	if action == ActionClose {
		return 1 - raw
	}
	return raw
}

// InitialOpeningPct returns the opening percentage reported on the t=0 row:
// 100 for a closing run or an instantaneous open, otherwise 0.
func InitialOpeningPct(action Action, mode Mode) float64 {
	if action == ActionClose || mode == ModeFixed {
		return 100
	}
	return 0
}
