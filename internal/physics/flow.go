// Package physics provides the pure thermodynamic and fluid-dynamic
// calculations for compressible gas flow through a valve or orifice.
// Functions here are stateless; all inputs are SI (Pa, K, m², kg/mol is
// passed as g/mol to match gas-property conventions).
package physics

import (
	"math"

	"github.com/Unmask06/pressurize/internal/units"
)

// Regime labels the flow condition across the valve at one instant.
type Regime string

const (
	RegimeNone        Regime = "None"
	RegimeEquilibrium Regime = "Equilibrium"
	RegimeChoked      Regime = "Choked"
	RegimeSubsonic    Regime = "Subsonic"
)

// Density returns real-gas density ρ = P·M/(Z·R·T) in kg/m³.
// Caller guarantees positive inputs; molar mass is in g/mol.
func Density(c units.Constants, pressurePa, tempK, z, molarMassGMol float64) float64 {
	m := molarMassGMol / 1000.0
	return pressurePa * m / (z * c.R * tempK)
}

// CriticalPressureRatio returns r_c = (2/(k+1))^(k/(k-1)) for k > 1.
// Downstream/upstream ratios at or below r_c give choked flow.
func CriticalPressureRatio(k float64) float64 {
	return math.Pow(2/(k+1), k/(k-1))
}

// CriticalPressure returns the downstream pressure at which flow chokes.
func CriticalPressure(pUp, k float64) float64 {
	return pUp * CriticalPressureRatio(k)
}

// ChokedFlow returns the sonic mass flow rate in kg/s. Flow in this regime is
// independent of downstream pressure.
func ChokedFlow(c units.Constants, cd, area, pUp, k, molarMassGMol, z, tempK float64) float64 {
	m := molarMassGMol / 1000.0
	term := k * m / (z * c.R * tempK) * math.Pow(2/(k+1), (k+1)/(k-1))
	return cd * area * pUp * math.Sqrt(term)
}

// SubsonicFlow returns the isentropic subsonic mass flow rate in kg/s.
// The radicand goes slightly negative from roundoff near the choked boundary
// and is clamped to zero.
func SubsonicFlow(c units.Constants, cd, area, pUp, pDown, k, molarMassGMol, z, tempK float64) float64 {
	m := molarMassGMol / 1000.0
	r := pDown / pUp
	radicand := 2 * k * m / ((k - 1) * z * c.R * tempK) *
		(math.Pow(r, 2/k) - math.Pow(r, (k+1)/k))
	if radicand < 0 {
		radicand = 0
	}
	return cd * area * pUp * math.Sqrt(radicand)
}

// MassFlowRate returns the mass flow rate through the valve in kg/s along
// with the flow regime. Reverse flow is not modeled: P_down ≥ P_up gives
// zero flow at equilibrium. The choked and subsonic branches agree at the
// critical pressure ratio.
func MassFlowRate(c units.Constants, cd, area, pUp, pDown, k, molarMassGMol, z, tempK float64) (float64, Regime) {
	if pDown >= pUp {
		return 0, RegimeEquilibrium
	}
	r := pDown / pUp
	if r <= CriticalPressureRatio(k) {
		return ChokedFlow(c, cd, area, pUp, k, molarMassGMol, z, tempK), RegimeChoked
	}
	return SubsonicFlow(c, cd, area, pUp, pDown, k, molarMassGMol, z, tempK), RegimeSubsonic
}

// OrificeMassFlow returns the ISO 5167-2 orifice mass flow q_m =
// C/sqrt(1-β⁴)·ε·(π/4)d²·sqrt(2·ΔP·ρ₁) in kg/s. It is the alternative
// formulation to the closed-form choked/subsonic equations: callers supply
// ΔP against the effective downstream pressure (the critical pressure when
// choked, the true downstream pressure otherwise).
func OrificeMassFlow(cd, diameter, deltaP, rhoUpstream, epsilon, beta float64) float64 {
	if deltaP <= 0 {
		return 0
	}
	approach := 1.0
	if beta < 1 {
		approach = 1 / math.Sqrt(1-math.Pow(beta, 4))
	}
	area := math.Pi / 4 * diameter * diameter
	return approach * cd * epsilon * area * math.Sqrt(2*deltaP*rhoUpstream)
}
