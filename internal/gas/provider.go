// Package gas supplies real-gas properties (Z, k, M) to the simulation
// engine, either as fixed manual values or derived from a mixture
// composition with the Peng-Robinson equation of state.
package gas

// Properties holds the gas properties the flow equations consume.
type Properties struct {
	Z         float64 // compressibility factor
	K         float64 // heat capacity ratio Cp/Cv
	MolarMass float64 // g/mol
	Rho       float64 // density at the queried conditions (kg/m³)
	Cp        float64 // J/mol·K
	Cv        float64 // J/mol·K
}

// Provider resolves gas properties at a pressure and temperature.
// Implementations must be deterministic for identical inputs and safe to use
// from concurrent simulation runs (each run constructs its own provider).
type Provider interface {
	Properties(pressurePa, tempK float64) (Properties, error)
}

// Manual is a Provider with fixed user-supplied properties, independent of
// pressure and temperature.
type Manual struct {
	MolarMass float64
	ZFactor   float64
	KRatio    float64
}

// Properties returns the fixed manual values.
func (m Manual) Properties(_, _ float64) (Properties, error) {
	return Properties{
		Z:         m.ZFactor,
		K:         m.KRatio,
		MolarMass: m.MolarMass,
	}, nil
}
