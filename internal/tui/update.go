package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/shootdeck/shootdeck/internal/reschedule"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == StateReschedule {
		return m.updateRescheduleForm(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.scheduleList.SetSize(msg.Width-4, msg.Height-6)
		m.delayedList.SetSize(msg.Width-4, msg.Height-6)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % 2
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state + 1) % 2
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Up):
			m.activeList().MoveUp()
		case key.Matches(msg, m.keys.Down):
			m.activeList().MoveDown()
		case key.Matches(msg, m.keys.Refresh):
			m.refresh()
		case key.Matches(msg, m.keys.Complete):
			if e, ok := m.activeList().Selected(); ok {
				if _, err := m.store.MarkComplete(e.ID); err != nil {
					m.errMsg = err.Error()
				} else {
					m.status = fmt.Sprintf("Completed %s", e.Title)
					m.refresh()
				}
			}
		case key.Matches(msg, m.keys.Reschedule):
			if e, ok := m.activeList().Selected(); ok {
				m.formEventID = e.ID
				m.formModel = &RescheduleFormModel{Date: e.Date, Time: e.Time}
				m.form = newRescheduleForm(m.formModel)
				m.state = StateReschedule
				return m, m.form.Init()
			}
		}
	}

	return m, nil
}

func (m Model) updateRescheduleForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateSchedule
		m.status = "Reschedule cancelled"
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.applyReschedule()
		m.state = StateSchedule
	}

	return m, cmd
}

func (m *Model) applyReschedule() {
	now := time.Now()
	w := reschedule.New(m.store)

	req, err := w.Open(m.formEventID)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	if err := w.Propose(req, m.formModel.Date, m.formModel.Time, now); err != nil {
		m.errMsg = err.Error()
		return
	}
	moved, err := w.Apply(req, now)
	if err != nil {
		m.errMsg = err.Error()
		return
	}

	m.status = fmt.Sprintf("Moved %s to %s %s", moved.Title, moved.Date, moved.Time)
	m.refresh()
}
