package sim

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProgram captures messages instead of driving a terminal.
type mockProgram struct {
	msgs []tea.Msg
}

func (m *mockProgram) Send(msg tea.Msg) { m.msgs = append(m.msgs, msg) }

func TestTUIWriterSendsRows(t *testing.T) {
	p := &mockProgram{}
	w := &TUIWriter{program: p, done: make(chan struct{})}

	row := Row{Time: 1.5, DownstreamPressurePsig: 120}
	require.NoError(t, w.Write(row))
	w.Finish(Summary{PeakFlowLbHr: 9000})

	require.Len(t, p.msgs, 2)
	rm, ok := p.msgs[0].(rowMsg)
	require.True(t, ok)
	assert.Equal(t, 1.5, rm.Time)
	dm, ok := p.msgs[1].(doneMsg)
	require.True(t, ok)
	assert.Equal(t, 9000.0, dm.summary.PeakFlowLbHr)
}

func TestTUIModelUpdate(t *testing.T) {
	m := newTUIModel("test run")

	var model tea.Model = m
	for _, row := range sampleRows(tuiHistoryRows + 3) {
		model, _ = model.Update(rowMsg{row})
	}
	tm := model.(tuiModel)
	assert.Len(t, tm.rows, tuiHistoryRows, "history is bounded")
	assert.Equal(t, float64(tuiHistoryRows+2)*0.5, tm.latest.Time)

	model, _ = model.Update(doneMsg{summary: Summary{FinalPressurePsig: 500}})
	tm = model.(tuiModel)
	require.NotNil(t, tm.summary)
	assert.Equal(t, 500.0, tm.summary.FinalPressurePsig)
}

func TestTUIModelView(t *testing.T) {
	m := newTUIModel("equalize run")
	var model tea.Model = m
	model, _ = model.Update(rowMsg{sampleRows(2)[1]})
	model, _ = model.Update(doneMsg{summary: Summary{PeakFlowLbHr: 1234.56}})

	view := model.View()
	assert.Contains(t, view, "equalize run")
	assert.Contains(t, view, "run complete")
	assert.True(t, strings.Contains(view, "1234.56"))
}

func TestTUIModelQuitKeys(t *testing.T) {
	m := newTUIModel("test")
	keys := []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	}
	for _, key := range keys {
		_, cmd := m.Update(key)
		require.NotNil(t, cmd, "key %q must quit", key.String())
	}
}
