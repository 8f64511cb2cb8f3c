package gas

import (
	"fmt"
	"math"
)

const rGas = 8.31446 // J/mol·K

// Mixture is a Provider backed by the Peng-Robinson equation of state with
// classical mixing rules (zero binary interaction parameters). A Mixture is
// immutable after construction and safe for concurrent use.
type Mixture struct {
	names     []string
	fractions []float64
	comps     []component
	molarMass float64 // g/mol
}

// NewMixture builds a Peng-Robinson mixture from a composition string.
// It fails if the composition names a component outside the supported table;
// no substitute properties are guessed.
func NewMixture(composition string) (*Mixture, error) {
	names, fractions := ParseComposition(composition)
	m := &Mixture{names: names, fractions: fractions}
	for i, name := range names {
		comp, ok := components[name]
		if !ok {
			return nil, fmt.Errorf("gas: unknown component %q in composition %q", name, composition)
		}
		m.comps = append(m.comps, comp)
		m.molarMass += fractions[i] * comp.MW
	}
	return m, nil
}

// MolarMass returns the mixture molar mass in g/mol.
func (m *Mixture) MolarMass() float64 { return m.molarMass }

// Components returns the normalized component names and mole fractions.
func (m *Mixture) Components() ([]string, []float64) {
	names := make([]string, len(m.names))
	fractions := make([]float64, len(m.fractions))
	copy(names, m.names)
	copy(fractions, m.fractions)
	return names, fractions
}

// Properties evaluates Z, k = Cp/Cv, molar mass, and density at the given
// absolute pressure (Pa) and temperature (K). Heat capacities combine the
// ideal-gas polynomials with Peng-Robinson departure functions.
func (m *Mixture) Properties(pressurePa, tempK float64) (Properties, error) {
	if pressurePa <= 0 || tempK <= 0 {
		return Properties{}, fmt.Errorf("gas: non-physical state P=%g Pa T=%g K", pressurePa, tempK)
	}

	a, b := m.mixtureParams(tempK)
	A := a * pressurePa / (rGas * rGas * tempK * tempK)
	B := b * pressurePa / (rGas * tempK)
	z := gasRoot(A, B)

	// Temperature derivatives of a(T) by central difference; a(T) is smooth
	// so a 0.1 K step is well inside the stable range.
	const h = 0.1
	aPlus, _ := m.mixtureParams(tempK + h)
	aMinus, _ := m.mixtureParams(tempK - h)
	dadT := (aPlus - aMinus) / (2 * h)
	d2adT2 := (aPlus - 2*a + aMinus) / (h * h)

	sqrt2 := math.Sqrt2
	logTerm := math.Log((z + (1+sqrt2)*B) / (z + (1-sqrt2)*B))

	cvDep := tempK * d2adT2 / (2 * sqrt2 * b) * logTerm

	v := z * rGas * tempK / pressurePa
	denom := v*v + 2*b*v - b*b
	dPdT := rGas/(v-b) - dadT/denom
	dPdV := -rGas*tempK/((v-b)*(v-b)) + 2*a*(v+b)/(denom*denom)

	cpDep := cvDep - rGas - tempK*dPdT*dPdT/dPdV

	var cpIdeal float64
	for i, comp := range m.comps {
		cpIdeal += m.fractions[i] * comp.cpIdeal(tempK)
	}
	cp := cpIdeal + cpDep
	cv := cpIdeal - rGas + cvDep

	k := 1.4
	if cv > 0 && cp > cv {
		k = cp / cv
	}

	rho := pressurePa * m.molarMass / 1000 / (z * rGas * tempK)

	return Properties{
		Z:         z,
		K:         k,
		MolarMass: m.molarMass,
		Rho:       rho,
		Cp:        cp,
		Cv:        cv,
	}, nil
}

// mixtureParams returns the mixture attraction a (Pa·m⁶/mol²) and covolume
// b (m³/mol) at temperature T.
func (m *Mixture) mixtureParams(tempK float64) (float64, float64) {
	n := len(m.comps)
	ai := make([]float64, n)
	var b float64
	for i, comp := range m.comps {
		kappa := 0.37464 + 1.54226*comp.Omega - 0.26992*comp.Omega*comp.Omega
		alpha := 1 + kappa*(1-math.Sqrt(tempK/comp.Tc))
		alpha *= alpha
		ai[i] = 0.45724 * rGas * rGas * comp.Tc * comp.Tc / comp.Pc * alpha
		b += m.fractions[i] * 0.07780 * rGas * comp.Tc / comp.Pc
	}
	var a float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a += m.fractions[i] * m.fractions[j] * math.Sqrt(ai[i]*ai[j])
		}
	}
	return a, b
}

// gasRoot solves the Peng-Robinson cubic
// Z³ − (1−B)Z² + (A−3B²−2B)Z − (AB−B²−B³) = 0 and returns the vapor root
// (the largest real root greater than B).
func gasRoot(A, B float64) float64 {
	c2 := -(1 - B)
	c1 := A - 3*B*B - 2*B
	c0 := -(A*B - B*B - B*B*B)

	roots := solveCubic(c2, c1, c0)
	best := math.NaN()
	for _, r := range roots {
		if r > B && (math.IsNaN(best) || r > best) {
			best = r
		}
	}
	if math.IsNaN(best) {
		// Degenerate inputs; fall back to the ideal-gas root.
		return 1
	}
	return best
}

// solveCubic returns the real roots of z³ + c2·z² + c1·z + c0 = 0.
func solveCubic(c2, c1, c0 float64) []float64 {
	q := (3*c1 - c2*c2) / 9
	r := (9*c2*c1 - 27*c0 - 2*c2*c2*c2) / 54
	disc := q*q*q + r*r

	if disc > 0 {
		// One real root.
		s := math.Cbrt(r + math.Sqrt(disc))
		t := math.Cbrt(r - math.Sqrt(disc))
		return []float64{s + t - c2/3}
	}

	if q >= 0 {
		// disc <= 0 with q >= 0 only happens at the triple-root degeneracy.
		return []float64{-c2 / 3}
	}

	// Three real roots (trigonometric form).
	theta := math.Acos(r / math.Sqrt(-q*q*q))
	m := 2 * math.Sqrt(-q)
	return []float64{
		m*math.Cos(theta/3) - c2/3,
		m*math.Cos((theta+2*math.Pi)/3) - c2/3,
		m*math.Cos((theta+4*math.Pi)/3) - c2/3,
	}
}
