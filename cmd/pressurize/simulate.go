package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Unmask06/pressurize/internal/config"
	"github.com/Unmask06/pressurize/internal/logging"
	"github.com/Unmask06/pressurize/internal/sim"
	"github.com/Unmask06/pressurize/internal/units"
)

var (
	simPrintOnly    bool
	simScenarioPath string
	simSchemaPath   string
	simLogFile      string
	simTUI          bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a valve flow scenario",
	Long:  "simulate loads a scenario file, runs the transient simulation, and streams result rows to the configured sinks.",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()

		sc, err := config.Load(simScenarioPath, simSchemaPath)
		if err != nil {
			return err
		}

		if simTUI && !term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("--tui requires an interactive terminal")
		}

		engine, err := sim.New(sc.Simulation, units.Default())
		if err != nil {
			return err
		}

		writer, tui, cleanup, err := newWriters(simPrintOnly, simLogFile, simTUI, sc.Name)
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		ctx = logging.NewContext(ctx, log)

		log.Info("starting simulation", "scenario", sc.Name, "run_id", engine.RunID(), "mode", sc.Simulation.Mode)

		stream, err := engine.Stream(ctx, nil)
		if err != nil {
			return err
		}
		rows, err := sim.Drain(ctx, stream, writer)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		if err := engine.Err(); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}

		summary := sim.Summarize(rows, sc.Simulation.WithDefaults().TimeStepS)
		log.Info("simulation finished",
			"run_id", engine.RunID(),
			"completed", engine.Completed(),
			"rows", len(rows),
			"peak_flow_lb_hr", summary.PeakFlowLbHr,
			"final_pressure_psig", summary.FinalPressurePsig,
			"equilibrium_time_s", summary.EquilibriumTimeS,
			"total_mass_lb", summary.TotalMassLb,
		)

		if tui != nil {
			tui.Finish(summary)
			tui.Wait()
			return nil
		}

		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	simulateCmd.Flags().BoolVar(&simPrintOnly, "print-only", false, "Print rows to STDOUT instead of writing to DB")
	simulateCmd.Flags().StringVar(&simScenarioPath, "scenario", "config/scenario.yaml", "Path to scenario YAML")
	simulateCmd.Flags().StringVar(&simSchemaPath, "schema", "schemas/scenario.cue", "Path to CUE schema file")
	simulateCmd.Flags().StringVar(&simLogFile, "log-file", "", "Path to export result rows (JSONL)")
	simulateCmd.Flags().BoolVar(&simTUI, "tui", false, "Render a live dashboard instead of printing rows")
}
