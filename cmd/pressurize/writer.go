package main

import (
	"os"

	"github.com/Unmask06/pressurize/internal/sim"
)

// newWriters assembles the row sink from flags and env vars. It returns the
// writer, the TUI handle when one was requested, and a cleanup function
// closing any resources.
func newWriters(printOnly bool, logFile string, useTUI bool, title string) (sim.RowWriter, *sim.TUIWriter, func(), error) {
	cleanup := func() {}

	var (
		writers []sim.RowWriter
		tui     *sim.TUIWriter
	)
	if useTUI {
		tui = sim.NewTUIWriter(title)
		writers = append(writers, tui)
	} else {
		base, err := baseWriter(printOnly)
		if err != nil {
			return nil, nil, nil, err
		}
		writers = append(writers, base)
	}

	if logFile != "" {
		fw, err := sim.NewFileWriter(logFile)
		if err != nil {
			return nil, nil, nil, err
		}
		writers = append(writers, fw)
		cleanup = func() { fw.Close() }
	}

	if len(writers) == 1 {
		return writers[0], tui, cleanup, nil
	}
	return sim.NewMultiWriter(writers...), tui, cleanup, nil
}

// baseWriter chooses the underlying writer based on the printOnly flag and
// env vars.
func baseWriter(printOnly bool) (sim.RowWriter, error) {
	endpoint := os.Getenv("GREPTIMEDB_ENDPOINT")
	if printOnly || endpoint == "" {
		return &sim.StdoutWriter{}, nil
	}
	database := os.Getenv("GREPTIMEDB_DATABASE")
	if database == "" {
		database = "public"
	}
	return sim.NewGreptimeDBWriter(endpoint, database)
}
