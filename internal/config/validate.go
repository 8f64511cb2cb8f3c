// CUE schema validation code
package config

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/encoding/yaml"
)

// ValidateWithCue validates a YAML scenario file using a CUE schema file.
func ValidateWithCue(scenarioFile, cueFile string) error {
	ctx := cuecontext.New()

	yamlBytes, err := os.ReadFile(scenarioFile)
	if err != nil {
		return fmt.Errorf("cannot read YAML scenario: %w", err)
	}
	file, err := yaml.Extract(scenarioFile, yamlBytes)
	if err != nil {
		return fmt.Errorf("cannot parse YAML scenario: %w", err)
	}
	scenarioVal := ctx.BuildFile(file)
	if scenarioVal.Err() != nil {
		return fmt.Errorf("cannot build scenario value: %w", scenarioVal.Err())
	}

	schemaBytes, err := os.ReadFile(cueFile)
	if err != nil {
		return fmt.Errorf("cannot read CUE schema: %w", err)
	}
	schemaVal := ctx.CompileBytes(schemaBytes)
	if schemaVal.Err() != nil {
		return fmt.Errorf("cannot compile CUE schema: %w", schemaVal.Err())
	}

	final := schemaVal.Unify(scenarioVal)
	if final.Err() != nil {
		return fmt.Errorf("schema unify failed: %w", final.Err())
	}
	if err := final.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
