package tui

import "github.com/charmbracelet/lipgloss"

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.state == StateReschedule {
		return docStyle.Render(m.form.View())
	}

	var content string
	switch m.state {
	case StateSchedule:
		content = docStyle.Render(m.scheduleList.View())
	case StateDelayed:
		content = docStyle.Render(m.delayedList.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m.keys),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Schedule", "Delayed"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.errMsg != "" {
		return errorStyle.Render(m.errMsg)
	}
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	return ""
}
