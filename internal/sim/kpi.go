package sim

// Summary holds the KPIs derived from a completed row sequence. Derivation
// lives outside the engine so streaming consumers can compute it from
// whatever rows they collected.
type Summary struct {
	PeakFlowLbHr      float64 `json:"peak_flow_lb_hr"`
	FinalPressurePsig float64 `json:"final_pressure_psig"`
	EquilibriumTimeS  float64 `json:"equilibrium_time_s"`
	TotalMassLb       float64 `json:"total_mass_lb"`
}

// Summarize derives the run KPIs: peak mass flow, final downstream pressure,
// the time pressures first equalized (or the last row's time if they never
// did), and the total transferred mass Σ(ṁ·dt).
func Summarize(rows []Row, timeStepS float64) Summary {
	if len(rows) == 0 {
		return Summary{}
	}

	var s Summary
	var flowSum float64
	equilibriumFound := false
	for _, row := range rows {
		if row.FlowRateLbHr > s.PeakFlowLbHr {
			s.PeakFlowLbHr = row.FlowRateLbHr
		}
		flowSum += row.FlowRateLbHr
		if !equilibriumFound && row.DownstreamPressurePsig >= row.UpstreamPressurePsig {
			s.EquilibriumTimeS = row.Time
			equilibriumFound = true
		}
	}

	last := rows[len(rows)-1]
	s.FinalPressurePsig = last.DownstreamPressurePsig
	if !equilibriumFound {
		s.EquilibriumTimeS = last.Time
	}
	s.TotalMassLb = flowSum * timeStepS / 3600

	return s
}
