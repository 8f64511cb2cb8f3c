package api

import "github.com/Unmask06/pressurize/internal/sim"

// SimulateResponse is the batch simulation payload: the full row trace plus
// the derived KPIs.
type SimulateResponse struct {
	RunID     string      `json:"run_id"`
	Rows      []sim.Row   `json:"rows"`
	Summary   sim.Summary `json:"summary"`
	Completed bool        `json:"completed"`
}

// StreamChunk is one SSE event of a streaming run. Intermediate events carry
// rows; the final event carries the summary and the completed flag.
type StreamChunk struct {
	Rows      []sim.Row    `json:"rows,omitempty"`
	Summary   *sim.Summary `json:"summary,omitempty"`
	Completed bool         `json:"completed"`
	Done      bool         `json:"done"`
}

// PropertiesRequest asks for gas properties of a composition at a state point.
type PropertiesRequest struct {
	Composition  string  `json:"composition"`
	PressurePsig float64 `json:"pressure_psig"`
	TempF        float64 `json:"temp_f"`
}

// PropertiesResponse reports the resolved real-gas properties.
type PropertiesResponse struct {
	MolarMass   float64 `json:"molar_mass"`
	ZFactor     float64 `json:"z_factor"`
	KRatio      float64 `json:"k_ratio"`
	DensityKgM3 float64 `json:"density_kg_m3"`
}

type errorResponse struct {
	Error string `json:"error"`
}
