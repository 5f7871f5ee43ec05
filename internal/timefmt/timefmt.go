// Package timefmt converts between the canonical 24-hour "HH:MM" wire
// form and the 12-hour display form. Every call site shares this one
// implementation so midnight and noon behave the same everywhere.
package timefmt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidInput marks 12-hour components outside their ranges.
	ErrInvalidInput = errors.New("invalid clock input")
	// ErrInvalidFormat marks a malformed 24-hour "HH:MM" string.
	ErrInvalidFormat = errors.New("invalid time format")
)

type Period string

const (
	AM Period = "AM"
	PM Period = "PM"
)

// Clock12 is the 12-hour display form of a wall-clock time. It is
// always derived from the 24-hour form, never stored.
type Clock12 struct {
	Hour   int // 1..12
	Minute int // 0..59
	Period Period
}

func (c Clock12) String() string {
	return fmt.Sprintf("%d:%02d %s", c.Hour, c.Minute, c.Period)
}

// To24Hour converts 12-hour components to the canonical "HH:MM" form.
// Midnight is 12 AM, noon is 12 PM.
func To24Hour(hour, minute int, period Period) (string, error) {
	if hour < 1 || hour > 12 {
		return "", fmt.Errorf("%w: hour %d outside 1-12", ErrInvalidInput, hour)
	}
	if minute < 0 || minute > 59 {
		return "", fmt.Errorf("%w: minute %d outside 0-59", ErrInvalidInput, minute)
	}
	switch period {
	case AM:
		if hour == 12 {
			hour = 0
		}
	case PM:
		if hour != 12 {
			hour += 12
		}
	default:
		return "", fmt.Errorf("%w: period %q", ErrInvalidInput, period)
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

// To12Hour parses a canonical "HH:MM" string into its 12-hour form.
func To12Hour(clock string) (Clock12, error) {
	hour, minute, err := parse24(clock)
	if err != nil {
		return Clock12{}, err
	}

	period := AM
	if hour >= 12 {
		period = PM
	}
	switch {
	case hour == 0:
		hour = 12
	case hour > 12:
		hour -= 12
	}
	return Clock12{Hour: hour, Minute: minute, Period: period}, nil
}

// Valid24 reports whether clock is a well-formed 24-hour "HH:MM" string.
func Valid24(clock string) bool {
	_, _, err := parse24(clock)
	return err == nil
}

// Combine interprets date ("YYYY-MM-DD") and clock ("HH:MM") as a
// wall-clock instant in loc.
func Combine(date, clock string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q", ErrInvalidFormat, date)
	}
	hour, minute, err := parse24(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc), nil
}

func parse24(clock string) (hour, minute int, err error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q is not HH:MM", ErrInvalidFormat, clock)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: hour in %q", ErrInvalidFormat, clock)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: minute in %q", ErrInvalidFormat, clock)
	}
	if hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%w: hour %d outside 0-23", ErrInvalidFormat, hour)
	}
	if minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: minute %d outside 0-59", ErrInvalidFormat, minute)
	}
	return hour, minute, nil
}
