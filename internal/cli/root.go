package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/shootdeck/shootdeck/internal/backup"
	"github.com/shootdeck/shootdeck/internal/delay"
	"github.com/shootdeck/shootdeck/internal/models"
	"github.com/shootdeck/shootdeck/internal/store"
	"github.com/shootdeck/shootdeck/internal/timefmt"
)

type Context struct {
	Store store.Provider
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		fmt.Printf("Warning: automatic backup failed: %v\n", err)
	}
}

// resolveDate accepts "today" or a YYYY-MM-DD string.
func resolveDate(s string) (string, error) {
	if s == "today" {
		return time.Now().Format("2006-01-02"), nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return "", fmt.Errorf("invalid date format, use YYYY-MM-DD or 'today': %w", err)
	}
	return s, nil
}

// parseClock accepts either the canonical 24-hour "HH:MM" or a 12-hour
// form like "3:05 PM" and returns the canonical form.
func parseClock(s string) (string, error) {
	s = strings.TrimSpace(s)
	if timefmt.Valid24(s) {
		return s, nil
	}

	fields := strings.Fields(strings.ToUpper(s))
	if len(fields) == 2 {
		var hour, minute int
		if _, err := fmt.Sscanf(fields[0], "%d:%d", &hour, &minute); err == nil {
			return timefmt.To24Hour(hour, minute, timefmt.Period(fields[1]))
		}
	}
	return "", fmt.Errorf("invalid time %q, use HH:MM or H:MM AM/PM", s)
}

// displayTime renders the stored 24-hour time in its 12-hour form.
func displayTime(clock string) string {
	c, err := timefmt.To12Hour(clock)
	if err != nil {
		return clock
	}
	return c.String()
}

func formatEventLine(e models.Event) string {
	where := e.Location
	if e.Kind == models.EventKindUpload {
		where = e.Platform
	}
	line := fmt.Sprintf("[%s] %s %s  %-6s  %s", e.Status, e.Date, displayTime(e.Time), e.Kind, e.Title)
	if e.Brand != "" {
		line += fmt.Sprintf(" (%s)", e.Brand)
	}
	if where != "" {
		line += fmt.Sprintf(" @ %s", where)
	}
	return line
}

func formatDelay(a delay.Assessment) string {
	hours := a.Minutes / 60
	minutes := a.Minutes % 60
	if hours > 0 {
		return fmt.Sprintf("%dh%02dm overdue (%s)", hours, minutes, a.Severity)
	}
	return fmt.Sprintf("%dm overdue (%s)", minutes, a.Severity)
}
