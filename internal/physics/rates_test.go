package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPressureRateSign(t *testing.T) {
	rate := PressureRate(si, 1.0, 300, 10, 28.97, 1.5)
	assert.Greater(t, rate, 0.0, "inflow raises pressure")
	assert.InDelta(t, -rate, PressureRate(si, 1.0, 300, 10, 28.97, -1.5), 1e-12)
}

func TestDualPressureRateModes(t *testing.T) {
	const (
		flow = 2.0
		z    = 0.95
		temp = 350.0
		vUp  = 56.0
		vDn  = 632.0
		mw   = 17.9
	)

	up, down := DualPressureRate(si, ModePressurize, flow, z, temp, temp, vUp, vDn, mw)
	assert.Equal(t, 0.0, up, "pressurize holds upstream fixed")
	assert.Greater(t, down, 0.0)

	up, down = DualPressureRate(si, ModeDepressurize, flow, z, temp, temp, vUp, vDn, mw)
	assert.Less(t, up, 0.0)
	assert.Equal(t, 0.0, down, "depressurize holds downstream fixed")

	up, down = DualPressureRate(si, ModeEqualize, flow, z, temp, temp, vUp, vDn, mw)
	assert.Less(t, up, 0.0)
	assert.Greater(t, down, 0.0)
	// Mass conservation: rates scale with 1/V, so up·Vup = -down·Vdn at
	// equal temperatures.
	assert.InEpsilon(t, -up*vUp, down*vDn, 1e-12)
}

func TestDualPressureRateZeroFlow(t *testing.T) {
	up, down := DualPressureRate(si, ModeEqualize, 0, 1.0, 300, 300, 10, 10, 28.97)
	assert.Equal(t, 0.0, up)
	assert.Equal(t, 0.0, down)
}

func TestModeValid(t *testing.T) {
	assert.True(t, ModePressurize.Valid())
	assert.True(t, ModeDepressurize.Valid())
	assert.True(t, ModeEqualize.Valid())
	assert.False(t, Mode("drain").Valid())
	assert.False(t, Mode("").Valid())
}
