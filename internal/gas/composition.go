package gas

import (
	"strconv"
	"strings"
)

// DefaultComponent is the reference gas assumed when a composition string is
// empty or carries no usable entries.
const DefaultComponent = "Methane"

// ParseComposition parses a comma-separated "Name=fraction" composition
// string. Entries with non-positive or unparsable fractions are dropped and
// the remaining fractions are normalized to sum to 1. An empty or fully
// unusable composition falls back to pure methane.
func ParseComposition(composition string) ([]string, []float64) {
	var names []string
	var fractions []float64

	for _, pair := range strings.Split(composition, ",") {
		name, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			continue
		}
		frac, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || frac <= 0 {
			continue
		}
		names = append(names, strings.TrimSpace(name))
		fractions = append(fractions, frac)
	}

	if len(names) == 0 {
		return []string{DefaultComponent}, []float64{1.0}
	}

	var total float64
	for _, f := range fractions {
		total += f
	}
	for i := range fractions {
		fractions[i] /= total
	}
	return names, fractions
}

// DefaultComposition returns a typical pipeline natural-gas blend.
func DefaultComposition() string {
	return "Methane=0.9387, Ethane=0.0121, Propane=0.0004, " +
		"Carbon dioxide=0.0054, Nitrogen=0.0433"
}

// Presets maps preset names to component mole fractions.
var Presets = map[string]map[string]float64{
	"natural_gas": {
		"Methane":        0.9387,
		"Ethane":         0.0121,
		"Propane":        0.0004,
		"Carbon dioxide": 0.0054,
		"Nitrogen":       0.0433,
	},
	"pure_methane": {
		"Methane": 1.0,
	},
	"rich_gas": {
		"Methane":        0.75,
		"Ethane":         0.12,
		"Propane":        0.08,
		"n-Butane":       0.03,
		"n-Pentane":      0.01,
		"Carbon dioxide": 0.005,
		"Nitrogen":       0.005,
	},
	"sour_gas": {
		"Methane":          0.85,
		"Ethane":           0.05,
		"Propane":          0.02,
		"n-Butane":         0.01,
		"Carbon dioxide":   0.08,
		"Hydrogen sulfide": 0.04,
	},
	"lean_gas": {
		"Methane":        0.96,
		"Ethane":         0.02,
		"Propane":        0.005,
		"Carbon dioxide": 0.005,
		"Nitrogen":       0.01,
	},
}

// PresetComposition renders a named preset as a composition string, falling
// back to natural_gas for unknown names.
func PresetComposition(name string) string {
	preset, ok := Presets[name]
	if !ok {
		preset = Presets["natural_gas"]
	}
	parts := make([]string, 0, len(preset))
	for _, comp := range SupportedComponents() {
		if frac, ok := preset[comp]; ok {
			parts = append(parts, comp+"="+strconv.FormatFloat(frac, 'g', -1, 64))
		}
	}
	return strings.Join(parts, ", ")
}
