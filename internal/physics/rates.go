package physics

import "github.com/Unmask06/pressurize/internal/units"

// Mode selects which vessel pressures the integrator updates.
type Mode string

const (
	// ModePressurize holds the upstream side fixed (infinite source) and
	// integrates the downstream vessel only.
	ModePressurize Mode = "pressurize"
	// ModeDepressurize holds the downstream side fixed (infinite sink) and
	// integrates the upstream vessel only.
	ModeDepressurize Mode = "depressurize"
	// ModeEqualize integrates both coupled vessels.
	ModeEqualize Mode = "equalize"
)

// Valid reports whether m is a known simulation mode.
func (m Mode) Valid() bool {
	switch m {
	case ModePressurize, ModeDepressurize, ModeEqualize:
		return true
	}
	return false
}

// PressureRate returns dP/dt = (Z·R·T)/(V·M)·ṁ in Pa/s for a single vessel.
// The sign of the mass flow encodes direction: positive means inflow.
func PressureRate(c units.Constants, z, tempK, volumeM3, molarMassGMol, massFlow float64) float64 {
	m := molarMassGMol / 1000.0
	return z * c.R * tempK / (volumeM3 * m) * massFlow
}

// DualPressureRate returns (dP/dt upstream, dP/dt downstream) in Pa/s for
// the coupled vessels. massFlow is the rate through the valve from upstream
// to downstream; mass conservation makes the upstream inflow its negative.
// Sides held fixed by the mode report a zero rate.
func DualPressureRate(c units.Constants, mode Mode, massFlow, z, tempUpK, tempDownK, volUpM3, volDownM3, molarMassGMol float64) (float64, float64) {
	var up, down float64
	switch mode {
	case ModePressurize:
		down = PressureRate(c, z, tempDownK, volDownM3, molarMassGMol, massFlow)
	case ModeDepressurize:
		up = PressureRate(c, z, tempUpK, volUpM3, molarMassGMol, -massFlow)
	case ModeEqualize:
		up = PressureRate(c, z, tempUpK, volUpM3, molarMassGMol, -massFlow)
		down = PressureRate(c, z, tempDownK, volDownM3, molarMassGMol, massFlow)
	}
	return up, down
}
