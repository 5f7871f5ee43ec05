package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/shootdeck/shootdeck/internal/schedule"
	"github.com/shootdeck/shootdeck/internal/store"
	"github.com/shootdeck/shootdeck/internal/timefmt"
	"github.com/shootdeck/shootdeck/internal/tui/components/agenda"
)

type SessionState int

const (
	StateSchedule SessionState = iota
	StateDelayed
	StateReschedule
)

// RescheduleFormModel backs the huh form opened with 'r'.
type RescheduleFormModel struct {
	Date string
	Time string
}

type Model struct {
	store store.Provider
	state SessionState
	keys  KeyMap
	help  help.Model

	scheduleList agenda.Model
	delayedList  agenda.Model

	form        *huh.Form
	formModel   *RescheduleFormModel
	formEventID string

	status   string
	errMsg   string
	quitting bool
	width    int
	height   int
}

func NewModel(provider store.Provider) Model {
	m := Model{
		store:        provider,
		state:        StateSchedule,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		scheduleList: agenda.New(0, 0, "Nothing on the schedule"),
		delayedList:  agenda.New(0, 0, "Nothing is running late"),
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh reloads both tabs from the store.
func (m *Model) refresh() {
	events, err := m.store.GetAllEvents()
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	settings, err := m.store.GetSettings()
	if err != nil {
		m.errMsg = err.Error()
		return
	}

	now := time.Now()
	cfg := settings.Delay()
	m.scheduleList.SetEvents(schedule.EarliestOfEachKind(events, now), now, cfg)
	m.delayedList.SetEvents(schedule.FilterDelayed(events, now, cfg, ""), now, cfg)
	m.errMsg = ""
}

func newRescheduleForm(fm *RescheduleFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("New date (YYYY-MM-DD)").
				Value(&fm.Date).
				Validate(func(s string) error {
					_, err := time.Parse("2006-01-02", s)
					return err
				}),
			huh.NewInput().
				Title("New time (HH:MM)").
				Value(&fm.Time).
				Validate(func(s string) error {
					if !timefmt.Valid24(s) {
						return timefmt.ErrInvalidFormat
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// activeList returns the component behind the visible tab.
func (m *Model) activeList() *agenda.Model {
	if m.state == StateDelayed {
		return &m.delayedList
	}
	return &m.scheduleList
}
