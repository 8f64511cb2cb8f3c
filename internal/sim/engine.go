// Engine integrating transient gas flow between two vessels through a valve.
package sim

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Unmask06/pressurize/internal/gas"
	"github.com/Unmask06/pressurize/internal/logging"
	"github.com/Unmask06/pressurize/internal/physics"
	"github.com/Unmask06/pressurize/internal/units"
	"github.com/Unmask06/pressurize/internal/valve"
)

const (
	// pressureEqTolPa: pressure differentials below this count as equilibrium.
	pressureEqTolPa = 1.0
	// massFlowTolKgS: computed flows below this are forced to exactly zero so
	// a run cannot drift forever on numerically insignificant flow.
	massFlowTolKgS = 1e-9

	// Safety ceilings bounding every run (seconds or multiples of the valve
	// travel time).
	fixedModeCeilingS  = 3600.0
	closeCeilingFactor = 1.2
	openCeilingFactor  = 10.0
)

// Engine drives a single simulation run: valve profile, gas properties,
// regime and mass flow, pressure integration, and stop conditions. An Engine
// is single-use; construct a new one per run.
type Engine struct {
	cfg   Config
	units units.Constants
	runID string

	provUp   gas.Provider
	provDown gas.Provider

	areaMax   float64
	tempUpK   float64
	tempDownK float64
	volUpM3   float64
	volDownM3 float64
	maxTimeS  float64

	// Mutable per-step state, owned by the run loop.
	pUp     float64
	pDown   float64
	props   gas.Properties
	elapsed float64
	steps   int

	mu        sync.Mutex
	started   bool
	completed bool
	runErr    error
}

// New validates the configuration, resolves initial gas properties, and
// returns an engine ready to run. Configuration errors and unresolvable
// compositions are reported here, before any stepping.
func New(cfg Config, c units.Constants) (*Engine, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:       cfg,
		units:     c,
		runID:     uuid.NewString(),
		areaMax:   c.BoreArea(cfg.ValveDiameterIn),
		tempUpK:   c.FahrenheitToKelvin(cfg.UpstreamTempF),
		tempDownK: c.FahrenheitToKelvin(cfg.DownstreamTempF),
		volUpM3:   c.Ft3ToCubicMeters(cfg.UpstreamVolumeFt3),
		volDownM3: c.Ft3ToCubicMeters(cfg.DownstreamVolumeFt3),
		pUp:       c.PsigToPa(cfg.UpstreamPressurePsig),
		pDown:     c.PsigToPa(cfg.DownstreamPressurePsig),
	}

	switch {
	case cfg.OpeningMode == valve.ModeFixed || cfg.OpeningTimeS <= 0:
		e.maxTimeS = fixedModeCeilingS
	case cfg.ValveAction == valve.ActionClose:
		e.maxTimeS = cfg.OpeningTimeS * closeCeilingFactor
	default:
		e.maxTimeS = cfg.OpeningTimeS * openCeilingFactor
	}

	if err := e.initProperties(); err != nil {
		return nil, err
	}
	return e, nil
}

// initProperties wires the per-side property providers and resolves the
// properties in effect at t=0. Only the sides the mode integrates get a
// composition provider; the other side never changes state.
func (e *Engine) initProperties() error {
	if e.cfg.PropertyMode == PropertyManual {
		manual := gas.Manual{
			MolarMass: e.cfg.MolarMass,
			ZFactor:   e.cfg.ZFactor,
			KRatio:    e.cfg.KRatio,
		}
		e.provUp, e.provDown = manual, manual
		e.props, _ = manual.Properties(e.pDown, e.tempDownK)
		return nil
	}

	newProvider := func() (gas.Provider, error) {
		return gas.NewMixture(e.cfg.Composition)
	}
	var err error
	switch e.cfg.Mode {
	case physics.ModeDepressurize:
		if e.provUp, err = newProvider(); err != nil {
			return err
		}
	case physics.ModePressurize:
		if e.provDown, err = newProvider(); err != nil {
			return err
		}
	default: // equalize refreshes both sides
		if e.provUp, err = newProvider(); err != nil {
			return err
		}
		if e.provDown, err = newProvider(); err != nil {
			return err
		}
	}
	return e.refreshProperties()
}

// refreshProperties re-queries the provider of the side(s) the mode updates.
// The flow equations use the downstream-side properties except in
// depressurize mode, where only the upstream state evolves.
func (e *Engine) refreshProperties() error {
	if e.cfg.Mode == physics.ModeDepressurize {
		props, err := e.provUp.Properties(e.pUp, e.tempUpK)
		if err != nil {
			return fmt.Errorf("refreshing upstream gas properties: %w", err)
		}
		e.props = props
		return nil
	}
	props, err := e.provDown.Properties(e.pDown, e.tempDownK)
	if err != nil {
		return fmt.Errorf("refreshing downstream gas properties: %w", err)
	}
	e.props = props
	return nil
}

// RunID identifies this run on every emitted row.
func (e *Engine) RunID() string { return e.runID }

// Completed reports whether the run finished without cancellation. Valid
// once Run has returned or the Stream channel has closed.
func (e *Engine) Completed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.completed
}

// Err returns the mid-run error, if any, after a streaming run finishes.
func (e *Engine) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.runErr
}

func (e *Engine) begin() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return fmt.Errorf("engine %s: run already consumed", e.runID)
	}
	e.started = true
	return nil
}

func (e *Engine) finish(completed bool, err error) {
	e.mu.Lock()
	e.completed = completed
	e.runErr = err
	e.mu.Unlock()
}

// Run executes the full simulation and returns the ordered result rows.
// Cancelling the context stops the run between steps; the rows collected so
// far are returned along with the context error.
func (e *Engine) Run(ctx context.Context) ([]Row, error) {
	if err := e.begin(); err != nil {
		return nil, err
	}
	rows := []Row{e.initialRow()}
	for {
		select {
		case <-ctx.Done():
			e.finish(false, ctx.Err())
			return rows, ctx.Err()
		default:
		}
		row, done, err := e.step()
		if err != nil {
			e.finish(false, err)
			return rows, err
		}
		rows = append(rows, row)
		if done {
			e.finish(true, nil)
			return rows, nil
		}
	}
}

// Stream runs the simulation on a goroutine, emitting one row per step. The
// returned channel closes when the run ends; Completed reports whether it
// ran to its stop condition or was cancelled. shouldStop is polled between
// steps and may be nil. A Stream is finite and not restartable.
func (e *Engine) Stream(ctx context.Context, shouldStop func() bool) (<-chan Row, error) {
	if err := e.begin(); err != nil {
		return nil, err
	}
	out := make(chan Row, 16)
	go func() {
		defer close(out)
		log := logging.FromContext(ctx)

		emit := func(row Row) bool {
			select {
			case out <- row:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !emit(e.initialRow()) {
			e.finish(false, ctx.Err())
			return
		}
		for {
			if ctx.Err() != nil || (shouldStop != nil && shouldStop()) {
				log.Info("simulation cancelled", "run_id", e.runID, "elapsed_s", e.elapsed)
				e.finish(false, ctx.Err())
				return
			}
			row, done, err := e.step()
			if err != nil {
				log.Error("simulation step failed", "run_id", e.runID, "err", err)
				e.finish(false, err)
				return
			}
			if !emit(row) {
				e.finish(false, ctx.Err())
				return
			}
			if done {
				e.finish(true, nil)
				return
			}
		}
	}()
	return out, nil
}

// initialRow is the t=0 record emitted before any integration.
func (e *Engine) initialRow() Row {
	return Row{
		RunID:                  e.runID,
		Time:                   0,
		UpstreamPressurePsig:   round(e.cfg.UpstreamPressurePsig, 2),
		DownstreamPressurePsig: round(e.cfg.DownstreamPressurePsig, 2),
		ValveOpeningPct:        valve.InitialOpeningPct(e.cfg.ValveAction, e.cfg.OpeningMode),
		FlowRegime:             physics.RegimeNone,
		ZFactor:                round(e.props.Z, 4),
		KRatio:                 round(e.props.K, 4),
		MolarMass:              round(e.props.MolarMass, 2),
		Timestamp:              time.Now().UTC(),
	}
}

// step advances the simulation by one time step and reports whether a stop
// condition fired.
func (e *Engine) step() (Row, bool, error) {
	cfg := &e.cfg
	e.elapsed += cfg.TimeStepS
	e.steps++

	fraction := valve.OpeningFraction(e.elapsed, cfg.OpeningTimeS, cfg.ValveAction, cfg.OpeningMode, cfg.CurveSteepness)
	area := e.areaMax * fraction

	if cfg.PropertyMode == PropertyComposition {
		if err := e.refreshProperties(); err != nil {
			return Row{}, false, err
		}
	}

	var (
		massFlow         float64
		regime           physics.Regime
		rateUp, rateDown float64
	)
	if math.Abs(e.pUp-e.pDown) < pressureEqTolPa {
		regime = physics.RegimeEquilibrium
	} else {
		// Flow always runs upstream to downstream, so the throat sees the
		// upstream vessel temperature.
		massFlow, regime = physics.MassFlowRate(e.units, cfg.DischargeCoeff, area,
			e.pUp, e.pDown, e.props.K, e.props.MolarMass, e.props.Z, e.tempUpK)
		if massFlow < massFlowTolKgS {
			massFlow = 0
			regime = physics.RegimeEquilibrium
		} else {
			rateUp, rateDown = physics.DualPressureRate(e.units, cfg.Mode, massFlow,
				e.props.Z, e.tempUpK, e.tempDownK, e.volUpM3, e.volDownM3, e.props.MolarMass)
		}
	}

	if rateUp != 0 {
		e.pUp += rateUp * cfg.TimeStepS
	}
	if rateDown != 0 {
		e.pDown += rateDown * cfg.TimeStepS
	}
	// A coarse step can integrate past the crossing point; pressures must
	// never invert.
	if e.pDown > e.pUp {
		if cfg.Mode == physics.ModeDepressurize {
			e.pUp = e.pDown
		} else {
			e.pDown = e.pUp
		}
	}

	row := Row{
		RunID:                  e.runID,
		Time:                   round(e.elapsed, 2),
		UpstreamPressurePsig:   round(e.units.PaToPsig(e.pUp), 2),
		DownstreamPressurePsig: round(e.units.PaToPsig(e.pDown), 2),
		FlowRateLbHr:           round(e.units.KgSToLbHr(massFlow), 2),
		MassFlowKgS:            massFlow,
		ValveOpeningPct:        round(fraction*100, 1),
		FlowRegime:             regime,
		DpDtUpstreamPsiS:       round(e.units.PaPerSToPsiPerS(rateUp), 6),
		DpDtDownstreamPsiS:     round(e.units.PaPerSToPsiPerS(rateDown), 6),
		ZFactor:                round(e.props.Z, 4),
		KRatio:                 round(e.props.K, 4),
		MolarMass:              round(e.props.MolarMass, 2),
		Timestamp:              time.Now().UTC(),
	}

	return row, e.stopAfter(fraction, regime), nil
}

// stopAfter evaluates the stop conditions once the step's row is built.
func (e *Engine) stopAfter(fraction float64, regime physics.Regime) bool {
	if e.elapsed >= e.maxTimeS {
		return true
	}
	if e.cfg.ValveAction == valve.ActionClose {
		// The valve is fully closed once the travel time elapses.
		return e.elapsed >= e.cfg.OpeningTimeS
	}
	// Opening runs stop when the valve is fully open and pressures have
	// equalized, so the opening curve is always fully traced.
	return regime == physics.RegimeEquilibrium && fraction >= 1 && e.elapsed >= e.cfg.OpeningTimeS
}
