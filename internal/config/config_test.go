package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Unmask06/pressurize/internal/physics"
	"github.com/Unmask06/pressurize/internal/sim"
	"github.com/Unmask06/pressurize/internal/units"
)

const testSchema = `
name:         string
description?: string
simulation: {
	mode?:                   "pressurize" | "depressurize" | "equalize"
	upstream_pressure_psig?: number
	downstream_volume_ft3?:  number & >=0
	time_step_s?:            number & >0
	...
}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	scenario := writeFile(t, dir, "scenario.yaml", `
name: fill-test
description: nitrogen fill
simulation:
  mode: pressurize
  upstream_pressure_psig: 500
  downstream_volume_ft3: 50
  upstream_temp_f: 70
  downstream_temp_f: 70
  valve_diameter_in: 2
  opening_time_s: 5
`)
	schema := writeFile(t, dir, "scenario.cue", testSchema)

	sc, err := Load(scenario, schema)
	require.NoError(t, err)
	assert.Equal(t, "fill-test", sc.Name)
	assert.Equal(t, physics.ModePressurize, sc.Simulation.Mode)
	assert.Equal(t, 500.0, sc.Simulation.UpstreamPressurePsig)
	assert.Equal(t, 50.0, sc.Simulation.DownstreamVolumeFt3)

	// The loaded config must pass engine validation after defaults.
	_, err = sim.New(sc.Simulation, units.Default())
	require.NoError(t, err)
}

func TestLoadSkipsSchemaWhenUnset(t *testing.T) {
	dir := t.TempDir()
	scenario := writeFile(t, dir, "scenario.yaml", "name: bare\nsimulation: {}\n")
	sc, err := Load(scenario, "")
	require.NoError(t, err)
	assert.Equal(t, "bare", sc.Name)
}

func TestLoadRejectsSchemaViolation(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "scenario.cue", testSchema)

	cases := []struct {
		name string
		yaml string
	}{
		{"bad mode", "name: x\nsimulation:\n  mode: drain\n"},
		{"negative volume", "name: x\nsimulation:\n  downstream_volume_ft3: -1\n"},
		{"zero time step", "name: x\nsimulation:\n  time_step_s: 0\n"},
		{"missing name", "simulation: {}\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			scenario := writeFile(t, dir, "bad.yaml", tc.yaml)
			_, err := Load(scenario, schema)
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFiles(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "nope.yaml"), "")
	assert.Error(t, err)

	scenario := writeFile(t, dir, "scenario.yaml", "name: x\nsimulation: {}\n")
	_, err = Load(scenario, filepath.Join(dir, "nope.cue"))
	assert.Error(t, err)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	scenario := writeFile(t, dir, "scenario.yaml", "name: [unclosed\n")
	_, err := Load(scenario, "")
	assert.Error(t, err)
}
