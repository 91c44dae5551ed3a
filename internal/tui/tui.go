// Package tui renders a live view of a running simulation. The model
// consumes the simulator's record stream and stays on screen after the
// run finishes so the final tallies can be read before quitting.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cardsim/blackjack/internal/analysis"
	"github.com/cardsim/blackjack/internal/game"
)

// Model is the Bubble Tea model for the simulation viewer
type Model struct {
	records <-chan *game.RoundRecord
	total   int
	stats   *analysis.Stats

	spinner  spinner.Model
	viewport viewport.Model

	lines    []string
	done     bool
	quitting bool

	width       int
	height      int
	initialized bool
}

type recordMsg struct {
	rec *game.RoundRecord
}

type doneMsg struct{}

// New creates a viewer over the simulator's record stream. total is the
// planned round count, used only for the progress line.
func New(records <-chan *game.RoundRecord, total int) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = ProgressStyle

	vp := viewport.New(10, 5)
	vp.SetContent("")

	return &Model{
		records:  records,
		total:    total,
		stats:    analysis.New(),
		spinner:  sp,
		viewport: vp,
	}
}

// Run plays the model in a full-screen program until the user quits
func Run(records <-chan *game.RoundRecord, total int) error {
	_, err := tea.NewProgram(New(records, total), tea.WithAltScreen()).Run()
	return err
}

// Init starts the spinner and the record pump
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.nextRecord())
}

// nextRecord returns a command that delivers the next round record, or
// doneMsg when the simulator closes the stream.
func (m *Model) nextRecord() tea.Cmd {
	return func() tea.Msg {
		rec, ok := <-m.records
		if !ok {
			return doneMsg{}
		}
		return recordMsg{rec: rec}
	}
}

// Update handles messages in the viewer
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "up", "k":
			m.viewport.ScrollUp(1)
		case "down", "j":
			m.viewport.ScrollDown(1)
		case "pgup", "b":
			m.viewport.HalfPageUp()
		case "pgdown", "f":
			m.viewport.HalfPageDown()
		case "home", "g":
			m.viewport.GotoTop()
		case "end", "G":
			m.viewport.GotoBottom()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = max(1, m.width-2)
		m.viewport.Height = max(1, m.height-7)
		m.viewport.SetContent(strings.Join(m.lines, "\n"))
		m.viewport.GotoBottom()
		m.initialized = true
		return m, nil

	case recordMsg:
		m.stats.Add(msg.rec)
		m.lines = append(m.lines, m.formatRound(msg.rec))
		m.viewport.SetContent(strings.Join(m.lines, "\n"))
		m.viewport.GotoBottom()
		return m, m.nextRecord()

	case doneMsg:
		m.done = true
		return m, nil

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the viewer
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.initialized {
		return "Loading..."
	}

	header := HeaderStyle.Render("blackjack simulator")

	var progress string
	if m.done {
		progress = ProgressStyle.Render(fmt.Sprintf("done: %d rounds", m.stats.Rounds)) +
			InfoStyle.Render("  press q to quit")
	} else {
		progress = fmt.Sprintf("%s round %d/%d", m.spinner.View(), m.stats.Rounds, m.total)
	}

	log := LogBorderStyle.
		Width(m.viewport.Width).
		Height(m.viewport.Height).
		Render(m.viewport.View())

	help := InfoStyle.Render("↑/↓ scroll · q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		progress,
		log,
		m.chipsLine(),
		help,
	)
}

// formatRound renders one record as a single log line
func (m *Model) formatRound(rec *game.RoundRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%4d  dealer %s (%d)", rec.Round,
		strings.Join(rec.Dealer.FinalHand, " "), rec.Dealer.FinalValue)

	for _, p := range rec.Participants {
		net := p.ChipsAfter - p.ChipsBefore
		label := fmt.Sprintf("  %s %+d", p.Name, net)
		switch {
		case net > 0:
			b.WriteString(WinStyle.Render(label))
		case net < 0:
			b.WriteString(LossStyle.Render(label))
		default:
			b.WriteString(PushStyle.Render(label))
		}
	}
	return b.String()
}

// chipsLine shows each player's running chip count
func (m *Model) chipsLine() string {
	players := m.stats.Players()
	if len(players) == 0 {
		return ""
	}
	parts := make([]string, len(players))
	for i, p := range players {
		parts[i] = fmt.Sprintf("%s: %d", p.Name, p.FinalChips)
	}
	return InfoStyle.Render("chips  " + strings.Join(parts, " · "))
}
