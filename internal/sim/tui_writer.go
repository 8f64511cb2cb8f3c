package sim

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/Unmask06/pressurize/internal/physics"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// rowMsg carries one result row into the TUI.
type rowMsg struct{ Row }

// doneMsg marks the end of the run.
type doneMsg struct{ summary Summary }

const tuiHistoryRows = 12

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("57")).Padding(0, 1)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle    = lipgloss.NewStyle().Bold(true)
	chokedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	subsonicStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	equilStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// TUIWriter renders a live simulation dashboard using bubbletea.
type TUIWriter struct {
	program    teaProgram
	done       chan struct{}
	sendSignal atomic.Bool
}

// NewTUIWriter starts a bubbletea program and returns a TUIWriter.
func NewTUIWriter(title string) *TUIWriter {
	w := &TUIWriter{done: make(chan struct{})}
	w.sendSignal.Store(true)
	p := tea.NewProgram(newTUIModel(title), tea.WithAltScreen())
	w.program = p
	go func() {
		_, _ = p.Run()
		close(w.done)
		if w.sendSignal.Load() {
			if proc, err := os.FindProcess(os.Getpid()); err == nil {
				_ = proc.Signal(os.Interrupt)
			}
		}
	}()
	return w
}

// Write implements RowWriter.
func (w *TUIWriter) Write(row Row) error {
	w.program.Send(rowMsg{row})
	return nil
}

// Finish pushes the run summary to the dashboard; the UI stays up until the
// user quits.
func (w *TUIWriter) Finish(summary Summary) {
	w.program.Send(doneMsg{summary})
}

// Close tears the UI down without signalling the process.
func (w *TUIWriter) Close() {
	w.sendSignal.Store(false)
	if p, ok := w.program.(*tea.Program); ok {
		p.Quit()
	}
	<-w.done
}

// Wait blocks until the user exits the dashboard.
func (w *TUIWriter) Wait() {
	<-w.done
}

type tuiModel struct {
	title   string
	latest  Row
	rows    []Row
	summary *Summary
	history table.Model
	width   int
}

func newTUIModel(title string) tuiModel {
	cols := []table.Column{
		{Title: "t (s)", Width: 8},
		{Title: "P_up (psig)", Width: 12},
		{Title: "P_down (psig)", Width: 14},
		{Title: "flow (lb/hr)", Width: 13},
		{Title: "open %", Width: 7},
		{Title: "regime", Width: 12},
	}
	hist := table.New(table.WithColumns(cols), table.WithHeight(tuiHistoryRows))
	hist.Blur()
	return tuiModel{title: title, history: hist, width: 100}
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case rowMsg:
		m.latest = msg.Row
		m.rows = append(m.rows, msg.Row)
		if len(m.rows) > tuiHistoryRows {
			m.rows = m.rows[len(m.rows)-tuiHistoryRows:]
		}
		rows := make([]table.Row, len(m.rows))
		for i, r := range m.rows {
			rows[i] = table.Row{
				fmt.Sprintf("%.2f", r.Time),
				fmt.Sprintf("%.2f", r.UpstreamPressurePsig),
				fmt.Sprintf("%.2f", r.DownstreamPressurePsig),
				fmt.Sprintf("%.2f", r.FlowRateLbHr),
				fmt.Sprintf("%.1f", r.ValveOpeningPct),
				string(r.FlowRegime),
			}
		}
		m.history.SetRows(rows)
	case doneMsg:
		s := msg.summary
		m.summary = &s
	}
	return m, nil
}

func (m tuiModel) View() string {
	regime := string(m.latest.FlowRegime)
	switch m.latest.FlowRegime {
	case physics.RegimeChoked:
		regime = chokedStyle.Render(regime)
	case physics.RegimeSubsonic:
		regime = subsonicStyle.Render(regime)
	case physics.RegimeEquilibrium:
		regime = equilStyle.Render(regime)
	}

	status := fmt.Sprintf("%s %s   %s %s   %s %s   %s %s",
		labelStyle.Render("t:"), valueStyle.Render(fmt.Sprintf("%.2fs", m.latest.Time)),
		labelStyle.Render("ΔP:"), valueStyle.Render(fmt.Sprintf("%.2f psi", m.latest.UpstreamPressurePsig-m.latest.DownstreamPressurePsig)),
		labelStyle.Render("opening:"), valueStyle.Render(fmt.Sprintf("%.1f%%", m.latest.ValveOpeningPct)),
		labelStyle.Render("regime:"), regime,
	)

	out := titleStyle.Render(m.title) + "\n\n" + status + "\n\n" + m.history.View() + "\n"
	if m.summary != nil {
		out += "\n" + valueStyle.Render(fmt.Sprintf(
			"run complete: peak flow %.2f lb/hr, final pressure %.2f psig, equalized at %.2f s, %.2f lb transferred",
			m.summary.PeakFlowLbHr, m.summary.FinalPressurePsig, m.summary.EquilibriumTimeS, m.summary.TotalMassLb))
	}
	out += "\n" + footerStyle.Render(wordwrap.String("press q to quit; the simulation keeps its own pace and ends at its stop condition", m.width))
	return out
}
