package api

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Unmask06/pressurize/internal/units"
)

func newTestServer() *Server {
	return NewServer(units.Default())
}

func simulateBody() []byte {
	return []byte(`{
		"mode": "pressurize",
		"upstream_pressure_psig": 500,
		"downstream_pressure_psig": 0,
		"downstream_volume_ft3": 50,
		"upstream_temp_f": 70,
		"downstream_temp_f": 70,
		"valve_diameter_in": 2,
		"opening_time_s": 5,
		"time_step_s": 0.5
	}`)
}

func TestHandleSimulate(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/simulate", bytes.NewReader(simulateBody()))
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp SimulateResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.NotEmpty(t, resp.RunID)
	assert.True(t, resp.Completed)
	require.NotEmpty(t, resp.Rows)
	assert.InDelta(t, 500, resp.Summary.FinalPressurePsig, 1.0)
	assert.Greater(t, resp.Summary.PeakFlowLbHr, 0.0)
	for _, row := range resp.Rows {
		assert.Equal(t, resp.RunID, row.RunID)
	}
}

func TestHandleSimulateBadConfig(t *testing.T) {
	s := newTestServer()

	cases := []struct {
		name string
		body string
	}{
		{"invalid mode", `{"mode": "drain"}`},
		{"unknown field", `{"mode": "pressurize", "bogus": 1}`},
		{"malformed json", `{`},
		{"unknown component", `{
			"mode": "pressurize",
			"upstream_pressure_psig": 100,
			"downstream_volume_ft3": 10,
			"valve_diameter_in": 1,
			"property_mode": "composition",
			"composition": "Unobtainium=1.0"
		}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/simulate", strings.NewReader(tc.body))
			w := httptest.NewRecorder()
			s.Handler().ServeHTTP(w, req)
			require.Equal(t, http.StatusBadRequest, w.Code)
			var resp errorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestHandleSimulateMethodNotAllowed(t *testing.T) {
	s := newTestServer()
	for _, path := range []string{"/api/simulate", "/api/simulate/stream", "/api/properties"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, req)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, path)
	}
}

func TestHandleSimulateStream(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/simulate/stream", bytes.NewReader(simulateBody()))
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	var (
		chunks    []StreamChunk
		totalRows int
	)
	sc := bufio.NewScanner(w.Body)
	sc.Buffer(make([]byte, 1024*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var chunk StreamChunk
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &chunk))
		chunks = append(chunks, chunk)
		totalRows += len(chunk.Rows)
	}
	require.NoError(t, sc.Err())
	require.NotEmpty(t, chunks)

	final := chunks[len(chunks)-1]
	assert.True(t, final.Done)
	assert.True(t, final.Completed)
	require.NotNil(t, final.Summary)
	assert.InDelta(t, 500, final.Summary.FinalPressurePsig, 1.0)

	// Intermediate chunks respect the chunk size.
	for _, chunk := range chunks[:len(chunks)-1] {
		assert.False(t, chunk.Done)
		assert.LessOrEqual(t, len(chunk.Rows), streamChunkSize)
	}
	assert.Greater(t, totalRows, streamChunkSize, "run should span several chunks")
}

func TestHandleProperties(t *testing.T) {
	s := newTestServer()
	body := `{"composition": "Methane=1.0", "pressure_psig": 0, "temp_f": 59}`
	req := httptest.NewRequest(http.MethodPost, "/api/properties", strings.NewReader(body))
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp PropertiesResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.InDelta(t, 16.04, resp.MolarMass, 0.05)
	assert.InDelta(t, 1.0, resp.ZFactor, 0.01)
	assert.Greater(t, resp.KRatio, 1.2)
	assert.Greater(t, resp.DensityKgM3, 0.0)
}

func TestHandlePropertiesBadComposition(t *testing.T) {
	s := newTestServer()
	body := `{"composition": "Unobtainium=1.0", "pressure_psig": 0, "temp_f": 59}`
	req := httptest.NewRequest(http.MethodPost, "/api/properties", strings.NewReader(body))
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlePresets(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/presets", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var presets map[string]map[string]float64
	require.NoError(t, json.NewDecoder(w.Body).Decode(&presets))
	assert.Contains(t, presets, "natural_gas")
	assert.Contains(t, presets, "pure_methane")
}

func TestHandleHealthz(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}
