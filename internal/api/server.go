// HTTP API exposing simulation runs and gas property lookups.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Unmask06/pressurize/internal/gas"
	"github.com/Unmask06/pressurize/internal/logging"
	"github.com/Unmask06/pressurize/internal/sim"
	"github.com/Unmask06/pressurize/internal/units"
)

// streamChunkSize is the number of rows batched into one SSE event.
const streamChunkSize = 5

// Server serves the simulation API on its own mux.
type Server struct {
	units units.Constants
	mux   *http.ServeMux
}

// NewServer builds a server with all routes registered.
func NewServer(c units.Constants) *Server {
	s := &Server{units: c, mux: http.NewServeMux()}
	s.mux.HandleFunc("/api/simulate", s.handleSimulate)
	s.mux.HandleFunc("/api/simulate/stream", s.handleSimulateStream)
	s.mux.HandleFunc("/api/properties", s.handleProperties)
	s.mux.HandleFunc("/api/presets", s.handlePresets)
	s.mux.HandleFunc("/healthz", s.handleHealthz)
	return s
}

// Handler exposes the mux, mainly for tests.
func (s *Server) Handler() http.Handler { return s.mux }

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.mux}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// decodeEngine parses the request body into a config and constructs the
// engine. All failures here are client errors.
func (s *Server) decodeEngine(r *http.Request) (*sim.Engine, sim.Config, error) {
	var cfg sim.Config
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, cfg, fmt.Errorf("decoding simulation config: %w", err)
	}
	e, err := sim.New(cfg, s.units)
	if err != nil {
		return nil, cfg, err
	}
	return e, cfg.WithDefaults(), nil
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	e, cfg, err := s.decodeEngine(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	rows, err := e.Run(r.Context())
	if err != nil && !errors.Is(err, context.Canceled) {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, SimulateResponse{
		RunID:     e.RunID(),
		Rows:      rows,
		Summary:   sim.Summarize(rows, cfg.TimeStepS),
		Completed: e.Completed(),
	})
}

func (s *Server) handleSimulateStream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	e, cfg, err := s.decodeEngine(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, errors.New("streaming unsupported"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// The request context cancels the run when the client disconnects.
	stream, err := e.Stream(r.Context(), nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	log := logging.FromContext(r.Context())
	emit := func(chunk StreamChunk) bool {
		data, err := json.Marshal(chunk)
		if err != nil {
			return false
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
			return false
		}
		flusher.Flush()
		return true
	}

	var (
		all   []sim.Row
		chunk []sim.Row
	)
	for row := range stream {
		all = append(all, row)
		chunk = append(chunk, row)
		if len(chunk) >= streamChunkSize {
			if !emit(StreamChunk{Rows: chunk}) {
				return
			}
			chunk = nil
		}
	}
	if len(chunk) > 0 && !emit(StreamChunk{Rows: chunk}) {
		return
	}
	if err := e.Err(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("streaming run failed", "run_id", e.RunID(), "err", err)
	}

	summary := sim.Summarize(all, cfg.TimeStepS)
	emit(StreamChunk{Summary: &summary, Completed: e.Completed(), Done: true})
}

func (s *Server) handleProperties(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req PropertiesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decoding properties request: %w", err))
		return
	}

	mix, err := gas.NewMixture(req.Composition)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	props, err := mix.Properties(s.units.PsigToPa(req.PressurePsig), s.units.FahrenheitToKelvin(req.TempF))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, PropertiesResponse{
		MolarMass:   props.MolarMass,
		ZFactor:     props.Z,
		KRatio:      props.K,
		DensityKgM3: props.Rho,
	})
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, gas.Presets)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
