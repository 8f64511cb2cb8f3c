package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Unmask06/pressurize/internal/gas"
	"github.com/Unmask06/pressurize/internal/units"
)

var (
	propComposition  string
	propPreset       string
	propPressurePsig float64
	propTempF        float64
)

var propertiesCmd = &cobra.Command{
	Use:   "properties",
	Short: "Resolve real-gas properties for a composition",
	Long:  "properties evaluates the Peng-Robinson equation of state for a composition at a pressure and temperature.",
	RunE: func(cmd *cobra.Command, args []string) error {
		composition := propComposition
		if composition == "" && propPreset != "" {
			composition = gas.PresetComposition(propPreset)
		}
		if composition == "" {
			composition = gas.DefaultComposition()
		}

		mix, err := gas.NewMixture(composition)
		if err != nil {
			return err
		}
		u := units.Default()
		props, err := mix.Properties(u.PsigToPa(propPressurePsig), u.FahrenheitToKelvin(propTempF))
		if err != nil {
			return err
		}

		out := map[string]float64{
			"molar_mass":    props.MolarMass,
			"z_factor":      props.Z,
			"k_ratio":       props.K,
			"density_kg_m3": props.Rho,
			"cp_j_mol_k":    props.Cp,
			"cv_j_mol_k":    props.Cv,
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	propertiesCmd.Flags().StringVar(&propComposition, "composition", "", "Composition string, e.g. \"Methane=0.9, Ethane=0.1\"")
	propertiesCmd.Flags().StringVar(&propPreset, "preset", "", "Composition preset (natural_gas, pure_methane, rich_gas, sour_gas, lean_gas)")
	propertiesCmd.Flags().Float64Var(&propPressurePsig, "pressure", 0, "Pressure (psig)")
	propertiesCmd.Flags().Float64Var(&propTempF, "temp", 59, "Temperature (°F)")
}
