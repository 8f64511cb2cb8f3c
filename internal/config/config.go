// YAML scenario loader with CUE schema validation
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Unmask06/pressurize/internal/sim"
)

// Scenario is one simulation case as stored on disk: run metadata plus the
// engine inputs.
type Scenario struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Simulation  sim.Config `yaml:"simulation"`
}

// Load reads a YAML scenario file and validates it against a CUE schema.
// Pass an empty schema path to skip schema validation.
func Load(scenarioPath, cueSchemaPath string) (*Scenario, error) {
	if cueSchemaPath != "" {
		if err := ValidateWithCue(scenarioPath, cueSchemaPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(scenarioPath)
	if err != nil {
		return nil, fmt.Errorf("cannot read scenario file: %w", err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("cannot unmarshal scenario file: %w", err)
	}
	return &sc, nil
}
