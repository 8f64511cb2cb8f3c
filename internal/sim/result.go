package sim

import (
	"math"
	"os"
	"time"

	"github.com/Unmask06/pressurize/internal/physics"
)

// Row is one time step of simulation output. Rows are immutable once
// produced; display fields carry the same rounding the original tool used.
type Row struct {
	RunID                  string         `json:"run_id"` // TAG
	Time                   float64        `json:"time"`
	UpstreamPressurePsig   float64        `json:"upstream_pressure_psig"`
	DownstreamPressurePsig float64        `json:"downstream_pressure_psig"`
	FlowRateLbHr           float64        `json:"flowrate_lb_hr"`
	MassFlowKgS            float64        `json:"mass_flow_kg_s"`
	ValveOpeningPct        float64        `json:"valve_opening_pct"`
	FlowRegime             physics.Regime `json:"flow_regime"`
	DpDtUpstreamPsiS       float64        `json:"dp_dt_upstream_psi_s"`
	DpDtDownstreamPsiS     float64        `json:"dp_dt_downstream_psi_s"`
	ZFactor                float64        `json:"z_factor"`
	KRatio                 float64        `json:"k_ratio"`
	MolarMass              float64        `json:"molar_mass"`
	Timestamp              time.Time      `json:"ts"` // TIME INDEX
}

// RowTableName is the table rows are written to by the GreptimeDB writer.
// It defaults to "valve_simulation" but can be overridden via the
// GREPTIMEDB_TABLE environment variable.
var RowTableName = func() string {
	if env := os.Getenv("GREPTIMEDB_TABLE"); env != "" {
		return env
	}
	return "valve_simulation"
}()

// TableName returns the GreptimeDB table for Row.
func (Row) TableName() string {
	return RowTableName
}

func round(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
