package models

import (
	"fmt"
	"time"
)

type EventKind string

const (
	EventKindShoot  EventKind = "shoot"
	EventKindUpload EventKind = "upload"
)

type EventStatus string

const (
	StatusUpcoming   EventStatus = "upcoming"
	StatusInProgress EventStatus = "in_progress"
	StatusCompleted  EventStatus = "completed"
	StatusCancelled  EventStatus = "cancelled"
)

// Schedulable reports whether an event in this status still counts for
// delay and ordering views.
func (s EventStatus) Schedulable() bool {
	return s == StatusUpcoming || s == StatusInProgress
}

// Terminal reports whether the status admits no further scheduling
// transitions.
func (s EventStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// RescheduleEntry records one applied reschedule. The history is
// append-only.
type RescheduleEntry struct {
	Date      string    `json:"date"` // YYYY-MM-DD
	Time      string    `json:"time"` // HH:MM, 24-hour
	ChangedAt time.Time `json:"changed_at"`
}

// Event is a unit of schedulable work: an in-person shoot booked with a
// brand, or a content upload tied to a platform. Time is always stored
// in 24-hour HH:MM; the 12-hour form is derived at render time and
// never persisted.
type Event struct {
	ID          string            `json:"id"`
	Kind        EventKind         `json:"kind"`
	Title       string            `json:"title"`
	Brand       string            `json:"brand,omitempty"`
	Date        string            `json:"date"` // YYYY-MM-DD
	Time        string            `json:"time"` // HH:MM, 24-hour
	Location    string            `json:"location,omitempty"` // shoots only
	Platform    string            `json:"platform,omitempty"` // uploads only
	Status      EventStatus       `json:"status"`
	Reschedules []RescheduleEntry `json:"reschedules,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// Validate checks the kind-dependent field invariant: a shoot carries a
// location and no platform, an upload the reverse.
func (e Event) Validate() error {
	switch e.Kind {
	case EventKindShoot:
		if e.Location == "" {
			return fmt.Errorf("%w: shoot requires a location", ErrValidation)
		}
		if e.Platform != "" {
			return fmt.Errorf("%w: shoot must not set a platform", ErrValidation)
		}
	case EventKindUpload:
		if e.Platform == "" {
			return fmt.Errorf("%w: upload requires a platform", ErrValidation)
		}
		if e.Location != "" {
			return fmt.Errorf("%w: upload must not set a location", ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown event kind %q", ErrValidation, e.Kind)
	}
	if e.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	return nil
}
