// Package tui provides a read-only terminal monitor for one swarm graph.
//
// The monitor polls a summary source on an interval and renders the status
// histogram, the cached execution order when it is current, the parallel
// groups, and a node table. It does not mutate the graph. Users can only
// quit with 'q' or Ctrl+C.
//
// Usage:
//
//	m := tui.NewMonitor(func() (models.GraphSummary, error) {
//	    return reg.Summary(graphID)
//	})
//	p := tea.NewProgram(m, tea.WithAltScreen())
//	_, err := p.Run()
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Pastarafian/VegaMCP-sub003/pkg/models"
)

// SummaryFunc supplies the current graph summary on each poll.
type SummaryFunc func() (models.GraphSummary, error)

// summaryMsg carries one poll result into the model.
type summaryMsg struct {
	summary models.GraphSummary
	err     error
}

// tickMsg schedules the next poll.
type tickMsg time.Time

// Monitor is the bubbletea model for the graph monitor.
type Monitor struct {
	// fetch supplies the summary on each poll.
	fetch SummaryFunc
	// interval is the poll interval.
	interval time.Duration
	// summary is the last successfully polled summary.
	summary models.GraphSummary
	// err is the last poll error, cleared on the next success.
	err error
	// loaded indicates at least one poll succeeded.
	loaded bool
	// spinner animates while polling continues.
	spinner spinner.Model
	// width is the terminal width.
	width int
	// height is the terminal height.
	height int
	// quitting indicates the monitor is shutting down.
	quitting bool

	// Styles
	titleStyle   lipgloss.Style
	labelStyle   lipgloss.Style
	dimStyle     lipgloss.Style
	errStyle     lipgloss.Style
	statusStyles map[models.AgentStatus]lipgloss.Style
	groupStyle   lipgloss.Style
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithInterval sets the poll interval.
func WithInterval(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

// NewMonitor creates a monitor polling the given summary source.
func NewMonitor(fetch SummaryFunc, opts ...Option) *Monitor {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Monitor{
		fetch:    fetch,
		interval: time.Second,
		spinner:  sp,

		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("7")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("240")),

		labelStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")),

		dimStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")),

		errStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")), // Red

		groupStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("45")), // Cyan

		statusStyles: map[models.AgentStatus]lipgloss.Style{
			models.AgentStatusIdle:      lipgloss.NewStyle().Foreground(lipgloss.Color("244")), // Gray
			models.AgentStatusWaiting:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // Orange
			models.AgentStatusRunning:   lipgloss.NewStyle().Foreground(lipgloss.Color("34")),  // Green
			models.AgentStatusCompleted: lipgloss.NewStyle().Foreground(lipgloss.Color("28")),  // Dark green
			models.AgentStatusFailed:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")), // Red
		},
	}

	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init implements tea.Model.
func (m *Monitor) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.poll(), m.tick())
}

// Update implements tea.Model.
func (m *Monitor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		return m, tea.Batch(m.poll(), m.tick())

	case summaryMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.summary = msg.summary
			m.err = nil
			m.loaded = true
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// poll fetches the summary once.
func (m *Monitor) poll() tea.Cmd {
	fetch := m.fetch
	return func() tea.Msg {
		s, err := fetch()
		return summaryMsg{summary: s, err: err}
	}
}

// tick schedules the next poll.
func (m *Monitor) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// View implements tea.Model.
func (m *Monitor) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var b strings.Builder

	title := "VegaSwarm Monitor"
	if m.loaded {
		title = fmt.Sprintf("VegaSwarm Monitor %s %s (%s)", m.spinner.View(), m.summary.Name, m.summary.ID)
	}
	b.WriteString(m.titleStyle.Render(title))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(m.errStyle.Render(fmt.Sprintf("poll failed: %v", m.err)))
		b.WriteString("\n\n")
	}

	if !m.loaded {
		b.WriteString(m.dimStyle.Render("Waiting for first summary..."))
		b.WriteString("\n\n")
		b.WriteString(m.footer())
		return b.String()
	}

	b.WriteString(m.viewCounts())
	b.WriteString("\n")
	b.WriteString(m.viewPlan())
	b.WriteString("\n")
	b.WriteString(m.viewNodes())
	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

// viewCounts renders the status histogram on one line.
func (m *Monitor) viewCounts() string {
	var parts []string
	for _, status := range models.AgentStatuses() {
		style, ok := m.statusStyles[status]
		if !ok {
			style = m.dimStyle
		}
		parts = append(parts, style.Render(fmt.Sprintf("%s %d", status, m.summary.StatusCounts[status])))
	}
	header := m.labelStyle.Render(fmt.Sprintf("Agents (%d)", m.summary.NodeCount))
	return fmt.Sprintf("%s  %s\n", header, strings.Join(parts, m.dimStyle.Render(" | ")))
}

// viewPlan renders the cached execution order and the parallel groups.
// A graph mutated since its last plan shows neither.
func (m *Monitor) viewPlan() string {
	var b strings.Builder

	if len(m.summary.ExecutionOrder) == 0 {
		b.WriteString(m.dimStyle.Render("No current plan"))
		b.WriteString("\n")
		return b.String()
	}

	names := make(map[string]string, len(m.summary.Nodes))
	for _, n := range m.summary.Nodes {
		names[n.ID] = n.Name
	}
	steps := make([]string, 0, len(m.summary.ExecutionOrder))
	for _, id := range m.summary.ExecutionOrder {
		if name := names[id]; name != "" {
			steps = append(steps, name)
		} else {
			steps = append(steps, id)
		}
	}
	b.WriteString(m.labelStyle.Render("Order: "))
	b.WriteString(strings.Join(steps, m.dimStyle.Render(" -> ")))
	b.WriteString("\n")

	for _, group := range m.summary.ParallelGroups {
		line := fmt.Sprintf("  level %d: %s", group.Level, strings.Join(group.Agents, ", "))
		b.WriteString(m.groupStyle.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// viewNodes renders one line per node in insertion order.
func (m *Monitor) viewNodes() string {
	if len(m.summary.Nodes) == 0 {
		return m.dimStyle.Render("No agents yet") + "\n"
	}

	var b strings.Builder
	for _, n := range m.summary.Nodes {
		style, ok := m.statusStyles[n.Status]
		if !ok {
			style = m.dimStyle
		}
		line := fmt.Sprintf("  %-12s %-16s %-10s deps=%d", n.ID, n.Name, style.Render(string(n.Status)), n.DependencyCount)
		if n.Role != "" {
			line += m.dimStyle.Render("  " + n.Role)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Monitor) footer() string {
	return m.dimStyle.Render("q to quit")
}

// Run starts the monitor and blocks until the user quits.
func Run(fetch SummaryFunc, opts ...Option) error {
	m := NewMonitor(fetch, opts...)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
