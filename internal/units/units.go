// Package units holds the physical constants and unit conversions shared by
// the physics and simulation packages. The constants travel as an explicit
// struct so the engine stays reentrant and testable with alternate values.
package units

import "math"

// Constants bundles the universal gas constant and the conversion factors
// between field units (psig, °F, inch, ft³, lb/hr) and SI.
type Constants struct {
	R        float64 // universal gas constant (J/mol·K)
	AtmPsi   float64 // atmospheric pressure (psi)
	PsiToPa  float64
	InchToM  float64
	Ft3ToM3  float64
	KgSToLbH float64 // kg/s to lb/hr
}

// Default returns the constants used throughout the simulator.
func Default() Constants {
	return Constants{
		R:        8.31446,
		AtmPsi:   14.696,
		PsiToPa:  6894.76,
		InchToM:  0.0254,
		Ft3ToM3:  0.0283168,
		KgSToLbH: 7936.64,
	}
}

// PsigToPa converts gauge pressure (psig) to absolute pressure (Pa).
func (c Constants) PsigToPa(psig float64) float64 {
	return (psig + c.AtmPsi) * c.PsiToPa
}

// PaToPsig converts absolute pressure (Pa) to gauge pressure (psig).
// Gauge pressure can be negative under vacuum conditions.
func (c Constants) PaToPsig(pa float64) float64 {
	return pa/c.PsiToPa - c.AtmPsi
}

// PaPerSToPsiPerS converts a pressure rate (Pa/s) to psi/s.
func (c Constants) PaPerSToPsiPerS(rate float64) float64 {
	return rate / c.PsiToPa
}

// FahrenheitToKelvin converts °F to K.
func (c Constants) FahrenheitToKelvin(f float64) float64 {
	return (f-32)*5/9 + 273.15
}

// InchToMeters converts inches to meters.
func (c Constants) InchToMeters(in float64) float64 {
	return in * c.InchToM
}

// Ft3ToCubicMeters converts cubic feet to cubic meters.
func (c Constants) Ft3ToCubicMeters(ft3 float64) float64 {
	return ft3 * c.Ft3ToM3
}

// KgSToLbHr converts a mass flow rate from kg/s to lb/hr.
func (c Constants) KgSToLbHr(kgs float64) float64 {
	return kgs * c.KgSToLbH
}

// BoreArea returns the circular flow area (m²) for a bore diameter in inches.
func (c Constants) BoreArea(diameterIn float64) float64 {
	r := c.InchToMeters(diameterIn) / 2
	return math.Pi * r * r
}
