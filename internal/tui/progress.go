// Package tui shows simulation progress in the terminal.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/lox/blackjacksim/internal/simulator"
)

const (
	padding  = 2
	maxWidth = 80
)

// ProgressMsg carries a simulator progress report
type ProgressMsg simulator.Progress

// DoneMsg ends the progress view, with the simulation error if any
type DoneMsg struct {
	Err error
}

// ProgressModel is a bubbletea model drawing a progress bar for a running
// simulation.
type ProgressModel struct {
	title    string
	total    int
	current  simulator.Progress
	bar      progress.Model
	done     bool
	err      error
	quitting bool
	onQuit   func()
}

// NewProgressModel creates a progress view for total rounds. onQuit, if
// set, is called when the user aborts with q or ctrl+c.
func NewProgressModel(title string, total int, onQuit func()) *ProgressModel {
	return &ProgressModel{
		title:  title,
		total:  total,
		bar:    progress.New(progress.WithDefaultGradient()),
		onQuit: onQuit,
	}
}

func (m *ProgressModel) Init() tea.Cmd {
	return nil
}

func (m *ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			if m.onQuit != nil {
				m.onQuit()
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.bar.Width = min(msg.Width-padding*2-4, maxWidth)
	case ProgressMsg:
		m.current = simulator.Progress(msg)
		if m.current.Total > 0 {
			m.total = m.current.Total
		}
	case DoneMsg:
		m.done = true
		m.err = msg.Err
		if msg.Err == nil {
			m.current.Rounds = m.total
		}
		return m, tea.Quit
	}
	return m, nil
}

// Fraction returns the share of rounds completed
func (m *ProgressModel) Fraction() float64 {
	if m.total == 0 {
		return 0
	}
	return min(float64(m.current.Rounds)/float64(m.total), 1)
}

// Quitting reports whether the user aborted the simulation
func (m *ProgressModel) Quitting() bool {
	return m.quitting
}

func (m *ProgressModel) View() string {
	pad := strings.Repeat(" ", padding)

	var b strings.Builder
	b.WriteString("\n" + pad + HeaderStyle.Render(m.title) + "\n\n")
	b.WriteString(pad + m.bar.ViewAs(m.Fraction()) + "\n\n")

	status := fmt.Sprintf("%s / %s rounds", humanize.Comma(int64(m.current.Rounds)), humanize.Comma(int64(m.total)))
	if m.current.Elapsed > 0 {
		status += fmt.Sprintf(" in %s", m.current.Elapsed.Round(time.Millisecond))
	}
	b.WriteString(pad + InfoStyle.Render(status) + "\n")

	switch {
	case m.err != nil:
		b.WriteString(pad + ErrorStyle.Render("Simulation failed: "+m.err.Error()) + "\n")
	case m.done:
		b.WriteString(pad + SuccessStyle.Render("Done") + "\n")
	case m.quitting:
		b.WriteString(pad + InfoStyle.Render("Stopping...") + "\n")
	default:
		b.WriteString(pad + InfoStyle.Render("Press q to stop") + "\n")
	}
	return b.String()
}
