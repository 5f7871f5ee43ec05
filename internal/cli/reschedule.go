package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/shootdeck/shootdeck/internal/reschedule"
)

type RescheduleCmd struct {
	ID   string `arg:"" help:"ID of the event to reschedule."`
	Date string `short:"d" help:"New date (YYYY-MM-DD). Prompted for when omitted."`
	Time string `short:"t" help:"New time (HH:MM or H:MM AM/PM). Prompted for when omitted."`
	Yes  bool   `short:"y" help:"Apply without confirmation."`
}

func (c *RescheduleCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	e, err := ctx.Store.GetEvent(c.ID)
	if err != nil {
		return err
	}

	now := time.Now()
	w := reschedule.New(ctx.Store)
	req, err := w.Open(c.ID)
	if err != nil {
		return err
	}

	date, clock := c.Date, c.Time
	if date == "" || clock == "" {
		if date == "" {
			date = e.Date
		}
		if clock == "" {
			clock = e.Time
		}
		if err := promptForSchedule(&date, &clock); err != nil {
			return err
		}
	}

	clock, err = parseClock(clock)
	if err != nil {
		return err
	}
	if err := w.Propose(req, date, clock, now); err != nil {
		return err
	}

	if !c.Yes {
		confirmed := false
		confirm := huh.NewConfirm().
			Title(fmt.Sprintf("Move %q from %s %s to %s %s?", e.Title, e.Date, displayTime(e.Time), date, displayTime(clock))).
			Value(&confirmed)
		if err := huh.NewForm(huh.NewGroup(confirm)).Run(); err != nil {
			return err
		}
		if !confirmed {
			if err := w.Cancel(req); err != nil {
				return err
			}
			fmt.Println("Reschedule cancelled.")
			return nil
		}
	}

	moved, err := w.Apply(req, now)
	if err != nil {
		return err
	}

	fmt.Printf("Rescheduled %s to %s at %s (change #%d)\n",
		moved.Title, moved.Date, displayTime(moved.Time), len(moved.Reschedules))
	return nil
}

func promptForSchedule(date, clock *string) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("New date (YYYY-MM-DD)").
				Value(date).
				Validate(func(s string) error {
					_, err := time.Parse("2006-01-02", s)
					return err
				}),
			huh.NewInput().
				Title("New time (HH:MM or H:MM AM/PM)").
				Value(clock).
				Validate(func(s string) error {
					_, err := parseClock(s)
					return err
				}),
		),
	).Run()
}
