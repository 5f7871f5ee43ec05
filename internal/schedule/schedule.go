// Package schedule produces ordered and filtered views over a
// collection of events. Every function is a pure function of its
// inputs; "now" is always explicit.
package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/shootdeck/shootdeck/internal/delay"
	"github.com/shootdeck/shootdeck/internal/models"
	"github.com/shootdeck/shootdeck/internal/timefmt"
)

// EarliestOfEachKind selects, per kind, the single chronologically-next
// upcoming or in-progress event, then sorts the selection ascending by
// effective date-time. On an exact tie across kinds, shoots sort before
// uploads. Events with malformed date/time are skipped.
func EarliestOfEachKind(events []models.Event, now time.Time) []models.Event {
	type candidate struct {
		event models.Event
		at    time.Time
	}
	best := make(map[models.EventKind]candidate)

	for _, e := range events {
		if !e.Status.Schedulable() {
			continue
		}
		at, err := timefmt.Combine(e.Date, e.Time, now.Location())
		if err != nil {
			continue
		}
		cur, ok := best[e.Kind]
		if !ok || at.Before(cur.at) {
			best[e.Kind] = candidate{event: e, at: at}
		}
	}

	selected := make([]candidate, 0, len(best))
	for _, c := range best {
		selected = append(selected, c)
	}
	sort.Slice(selected, func(i, j int) bool {
		if !selected[i].at.Equal(selected[j].at) {
			return selected[i].at.Before(selected[j].at)
		}
		return selected[i].event.Kind == models.EventKindShoot
	})

	out := make([]models.Event, 0, len(selected))
	for _, c := range selected {
		out = append(out, c.event)
	}
	return out
}

// FilterDelayed returns the events assessed as delayed at now, sorted
// most-overdue first. A non-empty severity restricts the result to one
// bucket.
func FilterDelayed(events []models.Event, now time.Time, cfg delay.Config, severity delay.Severity) []models.Event {
	type delayed struct {
		event   models.Event
		minutes int
	}
	var hits []delayed

	for _, e := range events {
		a, err := delay.Assess(e, now, cfg)
		if err != nil || !a.Delayed {
			continue
		}
		if severity != "" && a.Severity != severity {
			continue
		}
		hits = append(hits, delayed{event: e, minutes: a.Minutes})
	}

	sort.Slice(hits, func(i, j int) bool {
		return hits[i].minutes > hits[j].minutes
	})

	out := make([]models.Event, 0, len(hits))
	for _, d := range hits {
		out = append(out, d.event)
	}
	return out
}

// FilterByDateRange returns events scheduled between start and end,
// both inclusive, in "YYYY-MM-DD" form.
func FilterByDateRange(events []models.Event, start, end string) ([]models.Event, error) {
	startDay, err := time.Parse("2006-01-02", start)
	if err != nil {
		return nil, fmt.Errorf("%w: start date %q", timefmt.ErrInvalidFormat, start)
	}
	endDay, err := time.Parse("2006-01-02", end)
	if err != nil {
		return nil, fmt.Errorf("%w: end date %q", timefmt.ErrInvalidFormat, end)
	}
	if startDay.After(endDay) {
		return nil, fmt.Errorf("%w: %s is after %s", models.ErrInvalidRange, start, end)
	}

	var out []models.Event
	for _, e := range events {
		if e.Date >= start && e.Date <= end {
			out = append(out, e)
		}
	}
	return out, nil
}
