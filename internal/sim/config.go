package sim

import (
	"errors"
	"fmt"

	"github.com/Unmask06/pressurize/internal/physics"
	"github.com/Unmask06/pressurize/internal/valve"
)

// PropertyMode selects how gas properties are resolved during a run.
type PropertyMode string

const (
	// PropertyManual uses fixed user-supplied M, Z, and k.
	PropertyManual PropertyMode = "manual"
	// PropertyComposition derives properties from a mixture composition at
	// the current pressure and temperature each step.
	PropertyComposition PropertyMode = "composition"
)

// ErrInvalidConfig wraps all configuration validation failures so callers can
// distinguish them from mid-run faults.
var ErrInvalidConfig = errors.New("invalid simulation config")

// Config holds the immutable inputs for one simulation run. Pressures are
// gauge (psig), volumes ft³, temperatures °F, the valve bore inches, and
// times seconds, matching the field conventions of the original tool; the
// engine converts to SI at initialization.
type Config struct {
	Mode physics.Mode `yaml:"mode" json:"mode"`

	UpstreamPressurePsig   float64 `yaml:"upstream_pressure_psig" json:"upstream_pressure_psig"`
	DownstreamPressurePsig float64 `yaml:"downstream_pressure_psig" json:"downstream_pressure_psig"`
	UpstreamVolumeFt3      float64 `yaml:"upstream_volume_ft3" json:"upstream_volume_ft3"`
	DownstreamVolumeFt3    float64 `yaml:"downstream_volume_ft3" json:"downstream_volume_ft3"`
	UpstreamTempF          float64 `yaml:"upstream_temp_f" json:"upstream_temp_f"`
	DownstreamTempF        float64 `yaml:"downstream_temp_f" json:"downstream_temp_f"`

	ValveDiameterIn float64      `yaml:"valve_diameter_in" json:"valve_diameter_in"`
	OpeningTimeS    float64      `yaml:"opening_time_s" json:"opening_time_s"`
	ValveAction     valve.Action `yaml:"valve_action" json:"valve_action"`
	OpeningMode     valve.Mode   `yaml:"opening_mode" json:"opening_mode"`
	CurveSteepness  float64      `yaml:"curve_steepness" json:"curve_steepness"`
	DischargeCoeff  float64      `yaml:"discharge_coeff" json:"discharge_coeff"`

	TimeStepS float64 `yaml:"time_step_s" json:"time_step_s"`

	PropertyMode PropertyMode `yaml:"property_mode" json:"property_mode"`
	MolarMass    float64      `yaml:"molar_mass" json:"molar_mass"`
	ZFactor      float64      `yaml:"z_factor" json:"z_factor"`
	KRatio       float64      `yaml:"k_ratio" json:"k_ratio"`
	Composition  string       `yaml:"composition" json:"composition"`
}

// WithDefaults returns a copy of c with unset fields replaced by the
// standard defaults.
func (c Config) WithDefaults() Config {
	if c.Mode == "" {
		c.Mode = physics.ModeEqualize
	}
	if c.ValveAction == "" {
		c.ValveAction = valve.ActionOpen
	}
	if c.OpeningMode == "" {
		c.OpeningMode = valve.ModeLinear
	}
	if c.CurveSteepness == 0 {
		c.CurveSteepness = 4.0
	}
	if c.DischargeCoeff == 0 {
		c.DischargeCoeff = 0.65
	}
	if c.TimeStepS == 0 {
		c.TimeStepS = 0.05
	}
	if c.PropertyMode == "" {
		c.PropertyMode = PropertyManual
	}
	if c.PropertyMode == PropertyManual {
		if c.MolarMass == 0 {
			c.MolarMass = 28.97
		}
		if c.ZFactor == 0 {
			c.ZFactor = 1.0
		}
		if c.KRatio == 0 {
			c.KRatio = 1.4
		}
	}
	return c
}

// Validate rejects configurations the engine must not start with. All
// returned errors wrap ErrInvalidConfig.
func (c Config) Validate() error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	if !c.Mode.Valid() {
		return fail("unsupported mode %q", c.Mode)
	}
	if !c.ValveAction.Valid() {
		return fail("unsupported valve action %q", c.ValveAction)
	}
	if !c.OpeningMode.Valid() {
		return fail("unsupported opening mode %q", c.OpeningMode)
	}
	if c.TimeStepS <= 0 {
		return fail("time step must be positive, got %g", c.TimeStepS)
	}
	if c.ValveDiameterIn < 0 {
		return fail("valve diameter must not be negative, got %g", c.ValveDiameterIn)
	}
	if c.OpeningTimeS < 0 {
		return fail("opening time must not be negative, got %g", c.OpeningTimeS)
	}
	if c.DischargeCoeff <= 0 || c.DischargeCoeff > 1 {
		return fail("discharge coefficient must be in (0,1], got %g", c.DischargeCoeff)
	}

	// Only the vessels the mode integrates need a physical volume.
	if c.Mode != physics.ModePressurize && c.UpstreamVolumeFt3 <= 0 {
		return fail("upstream volume must be positive, got %g", c.UpstreamVolumeFt3)
	}
	if c.Mode != physics.ModeDepressurize && c.DownstreamVolumeFt3 <= 0 {
		return fail("downstream volume must be positive, got %g", c.DownstreamVolumeFt3)
	}

	switch c.PropertyMode {
	case PropertyManual:
		if c.MolarMass <= 0 {
			return fail("molar mass must be positive, got %g", c.MolarMass)
		}
		if c.ZFactor <= 0 {
			return fail("z-factor must be positive, got %g", c.ZFactor)
		}
		if c.KRatio <= 1 {
			return fail("k-ratio must exceed 1, got %g", c.KRatio)
		}
	case PropertyComposition:
		if c.Composition == "" {
			return fail("composition is required in composition property mode")
		}
	default:
		return fail("unsupported property mode %q", c.PropertyMode)
	}

	return nil
}
