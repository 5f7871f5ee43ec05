// Package agenda renders a scrollable, selectable list of events with
// their delay annotations.
package agenda

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shootdeck/shootdeck/internal/delay"
	"github.com/shootdeck/shootdeck/internal/models"
	"github.com/shootdeck/shootdeck/internal/timefmt"
)

var (
	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(10)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	minorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	moderateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	criticalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

type Model struct {
	viewport viewport.Model
	events   []models.Event
	notes    []string
	cursor   int
	empty    string
	width    int
	height   int
}

func New(width, height int, empty string) Model {
	return Model{
		viewport: viewport.New(width, height),
		empty:    empty,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.events) == 0 {
		return m.empty
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.render()
}

// SetEvents replaces the list and annotates each delayed event against
// now and the configured thresholds.
func (m *Model) SetEvents(events []models.Event, now time.Time, cfg delay.Config) {
	m.events = events
	m.notes = make([]string, len(events))
	for i, e := range events {
		a, err := delay.Assess(e, now, cfg)
		if err != nil || !a.Delayed {
			continue
		}
		note := fmt.Sprintf("%dm overdue", a.Minutes)
		switch a.Severity {
		case delay.SeverityMinor:
			m.notes[i] = minorStyle.Render(note)
		case delay.SeverityModerate:
			m.notes[i] = moderateStyle.Render(note)
		case delay.SeverityCritical:
			m.notes[i] = criticalStyle.Render(note)
		}
	}
	if m.cursor >= len(events) {
		m.cursor = 0
	}
	m.render()
}

func (m *Model) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
	m.render()
}

func (m *Model) MoveDown() {
	if m.cursor < len(m.events)-1 {
		m.cursor++
	}
	m.render()
}

// Selected returns the event under the cursor.
func (m Model) Selected() (models.Event, bool) {
	if m.cursor < 0 || m.cursor >= len(m.events) {
		return models.Event{}, false
	}
	return m.events[m.cursor], true
}

func (m *Model) render() {
	var b strings.Builder
	for i, e := range m.events {
		marker := "  "
		if i == m.cursor {
			marker = cursorStyle.Render("> ")
		}

		clock := e.Time
		if c, err := timefmt.To12Hour(e.Time); err == nil {
			clock = c.String()
		}

		title := e.Title
		if e.Brand != "" {
			title += " (" + e.Brand + ")"
		}

		line := fmt.Sprintf("%s%s %s %s %s",
			marker,
			timeStyle.Render(clock),
			titleStyle.Render(title),
			statusStyle.Render(fmt.Sprintf("[%s %s]", e.Kind, e.Status)),
			m.notes[i],
		)
		b.WriteString(line + "\n")
	}
	m.viewport.SetContent(b.String())
}
