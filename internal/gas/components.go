package gas

import "sort"

// component holds the critical constants and ideal-gas heat capacity
// polynomial for one pure species. Cp_ig = cpA + cpB·T + cpC·T² + cpD·T³
// in J/mol·K with T in Kelvin.
type component struct {
	Tc    float64 // critical temperature (K)
	Pc    float64 // critical pressure (Pa)
	Omega float64 // acentric factor
	MW    float64 // molar mass (g/mol)
	CpA   float64
	CpB   float64
	CpC   float64
	CpD   float64
}

// components covers the twenty species supported for natural-gas and
// industrial mixtures. Critical constants and Cp polynomials are standard
// handbook values.
var components = map[string]component{
	"Methane":          {190.56, 4.599e6, 0.0115, 16.043, 19.25, 5.213e-2, 1.197e-5, -1.132e-8},
	"Ethane":           {305.32, 4.872e6, 0.0995, 30.070, 5.409, 1.781e-1, -6.938e-5, 8.713e-9},
	"Propane":          {369.83, 4.248e6, 0.1523, 44.096, -4.224, 3.063e-1, -1.586e-4, 3.215e-8},
	"n-Butane":         {425.12, 3.796e6, 0.2002, 58.122, 9.487, 3.313e-1, -1.108e-4, -2.822e-9},
	"i-Butane":         {407.80, 3.640e6, 0.1835, 58.122, -1.390, 3.847e-1, -1.846e-4, 2.895e-8},
	"n-Pentane":        {469.70, 3.370e6, 0.2515, 72.149, -3.626, 4.873e-1, -2.580e-4, 5.305e-8},
	"i-Pentane":        {460.40, 3.380e6, 0.2275, 72.149, -9.525, 5.066e-1, -2.729e-4, 5.723e-8},
	"n-Hexane":         {507.60, 3.025e6, 0.3013, 86.175, -4.413, 5.820e-1, -3.119e-4, 6.494e-8},
	"n-Heptane":        {540.20, 2.740e6, 0.3495, 100.202, -5.146, 6.762e-1, -3.651e-4, 7.658e-8},
	"n-Octane":         {568.70, 2.490e6, 0.3996, 114.229, -6.096, 7.712e-1, -4.195e-4, 8.855e-8},
	"Nitrogen":         {126.20, 3.398e6, 0.0377, 28.014, 28.90, -1.571e-3, 8.081e-6, -2.873e-9},
	"Carbon dioxide":   {304.13, 7.377e6, 0.2239, 44.010, 22.26, 5.981e-2, -3.501e-5, 7.469e-9},
	"Hydrogen sulfide": {373.40, 8.963e6, 0.0942, 34.081, 31.94, 1.436e-3, 2.432e-5, -1.176e-8},
	"Water":            {647.10, 2.2064e7, 0.3449, 18.015, 32.24, 1.924e-3, 1.055e-5, -3.596e-9},
	"Oxygen":           {154.58, 5.043e6, 0.0222, 31.999, 25.48, 1.520e-2, -7.155e-6, 1.312e-9},
	"Hydrogen":         {33.19, 1.313e6, -0.2160, 2.016, 29.11, -1.916e-3, 4.003e-6, -8.704e-10},
	"Carbon monoxide":  {132.92, 3.494e6, 0.0497, 28.010, 28.16, 1.675e-3, 5.372e-6, -2.222e-9},
	"Argon":            {150.86, 4.898e6, 0.0000, 39.948, 20.786, 0, 0, 0},
	"Helium":           {5.19, 2.27e5, -0.3900, 4.003, 20.786, 0, 0, 0},
	"Ammonia":          {405.40, 1.1333e7, 0.2560, 17.031, 27.568, 2.563e-2, 9.900e-6, -6.686e-9},
}

// cpIdeal evaluates the ideal-gas heat capacity polynomial at T.
func (c component) cpIdeal(tempK float64) float64 {
	return c.CpA + c.CpB*tempK + c.CpC*tempK*tempK + c.CpD*tempK*tempK*tempK
}

// SupportedComponents lists the known component names in stable order.
func SupportedComponents() []string {
	names := make([]string, 0, len(components))
	for name := range components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
