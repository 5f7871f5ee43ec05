// Package delay classifies how overdue a scheduled event is relative
// to an explicit "now".
package delay

import (
	"time"

	"github.com/shootdeck/shootdeck/internal/models"
	"github.com/shootdeck/shootdeck/internal/timefmt"
)

type Severity string

const (
	SeverityMinor    Severity = "minor"
	SeverityModerate Severity = "moderate"
	SeverityCritical Severity = "critical"
)

// Config holds the severity bucket ceilings in minutes. Both bounds
// are half-open: a delay of exactly MinorCeilingMin is moderate, one
// of exactly ModerateCeilingMin is critical.
type Config struct {
	MinorCeilingMin    int `json:"minor_ceiling_min"`
	ModerateCeilingMin int `json:"moderate_ceiling_min"`
}

func DefaultConfig() Config {
	return Config{
		MinorCeilingMin:    120,  // 2h
		ModerateCeilingMin: 1440, // 24h
	}
}

// Assessment is derived, never persisted.
type Assessment struct {
	Delayed  bool
	Minutes  int
	Severity Severity
}

// Assess computes the delay state of an event at the given instant.
// The scheduled date and time are interpreted in now's location.
// Completed and cancelled events are never delayed.
func Assess(e models.Event, now time.Time, cfg Config) (Assessment, error) {
	if !e.Status.Schedulable() {
		return Assessment{}, nil
	}

	scheduled, err := timefmt.Combine(e.Date, e.Time, now.Location())
	if err != nil {
		return Assessment{}, err
	}
	if !scheduled.Before(now) {
		return Assessment{}, nil
	}

	minutes := int(now.Sub(scheduled) / time.Minute)
	return Assessment{
		Delayed:  true,
		Minutes:  minutes,
		Severity: cfg.severity(minutes),
	}, nil
}

func (c Config) severity(minutes int) Severity {
	switch {
	case minutes < c.MinorCeilingMin:
		return SeverityMinor
	case minutes < c.ModerateCeilingMin:
		return SeverityModerate
	default:
		return SeverityCritical
	}
}
