package valve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpeningFractionBoundaries(t *testing.T) {
	const duration = 5.0
	cases := []struct {
		mode            Mode
		action          Action
		atZero, atClose float64
	}{
		{ModeLinear, ActionOpen, 0, 1},
		{ModeLinear, ActionClose, 1, 0},
		{ModeExponential, ActionOpen, 0, 1},
		{ModeExponential, ActionClose, 1, 0},
		{ModeQuickActing, ActionOpen, 0, 1},
		{ModeQuickActing, ActionClose, 1, 0},
	}
	for _, tc := range cases {
		got0 := OpeningFraction(0, duration, tc.action, tc.mode, 4)
		gotT := OpeningFraction(duration, duration, tc.action, tc.mode, 4)
		assert.InDelta(t, tc.atZero, got0, 1e-12, "%s/%s at t=0", tc.mode, tc.action)
		assert.InDelta(t, tc.atClose, gotT, 1e-12, "%s/%s at t=T", tc.mode, tc.action)
		// Past the travel duration the fraction holds its end value.
		assert.InDelta(t, tc.atClose, OpeningFraction(2*duration, duration, tc.action, tc.mode, 4), 1e-12)
	}
}

func TestOpeningFractionMonotonic(t *testing.T) {
	const duration = 8.0
	for _, mode := range []Mode{ModeLinear, ModeExponential, ModeQuickActing} {
		for _, action := range []Action{ActionOpen, ActionClose} {
			prev := OpeningFraction(0, duration, action, mode, 5)
			for ts := 0.1; ts <= duration; ts += 0.1 {
				cur := OpeningFraction(ts, duration, action, mode, 5)
				assert.GreaterOrEqual(t, cur, 0.0)
				assert.LessOrEqual(t, cur, 1.0)
				if action == ActionOpen {
					assert.GreaterOrEqual(t, cur, prev-1e-12, "%s opening must not regress", mode)
				} else {
					assert.LessOrEqual(t, cur, prev+1e-12, "%s closing must not regress", mode)
				}
				prev = cur
			}
		}
	}
}

func TestFixedModeInstantaneous(t *testing.T) {
	for _, ts := range []float64{0, 0.5, 100} {
		assert.Equal(t, 1.0, OpeningFraction(ts, 5, ActionOpen, ModeFixed, 4))
		assert.Equal(t, 0.0, OpeningFraction(ts, 5, ActionClose, ModeFixed, 4))
	}
}

func TestZeroDurationDegeneratesToFixed(t *testing.T) {
	for _, mode := range []Mode{ModeLinear, ModeExponential, ModeQuickActing} {
		assert.Equal(t, 1.0, OpeningFraction(3, 0, ActionOpen, mode, 4), "%s", mode)
		assert.Equal(t, 0.0, OpeningFraction(3, 0, ActionClose, mode, 4), "%s", mode)
		assert.Equal(t, 1.0, OpeningFraction(3, -1, ActionOpen, mode, 4), "%s", mode)
	}
}

func TestCurveShapes(t *testing.T) {
	const duration = 10.0
	mid := duration / 2
	linear := OpeningFraction(mid, duration, ActionOpen, ModeLinear, 4)
	expo := OpeningFraction(mid, duration, ActionOpen, ModeExponential, 4)
	quick := OpeningFraction(mid, duration, ActionOpen, ModeQuickActing, 4)
	assert.Less(t, expo, linear, "exponential is convex")
	assert.Greater(t, quick, linear, "quick_acting is concave")
}

func TestInitialOpeningPct(t *testing.T) {
	assert.Equal(t, 0.0, InitialOpeningPct(ActionOpen, ModeLinear))
	assert.Equal(t, 100.0, InitialOpeningPct(ActionClose, ModeLinear))
	assert.Equal(t, 100.0, InitialOpeningPct(ActionOpen, ModeFixed))
}

func TestValidators(t *testing.T) {
	assert.True(t, ModeLinear.Valid())
	assert.False(t, Mode("ramp").Valid())
	assert.True(t, ActionOpen.Valid())
	assert.False(t, Action("toggle").Valid())
}
