package cli

import (
	"fmt"

	"github.com/shootdeck/shootdeck/internal/models"
)

type EventAddCmd struct {
	Title    string `arg:"" help:"Event title."`
	Kind     string `short:"k" help:"Event kind (shoot|upload)." required:""`
	Date     string `short:"d" help:"Date (YYYY-MM-DD or 'today')." required:""`
	Time     string `short:"t" help:"Time (HH:MM or H:MM AM/PM)." required:""`
	Brand    string `short:"b" help:"Brand or client name."`
	Location string `short:"l" help:"Location (shoots only)."`
	Platform string `short:"p" help:"Platform (uploads only)."`
}

func (c *EventAddCmd) Validate() error {
	if c.Kind != string(models.EventKindShoot) && c.Kind != string(models.EventKindUpload) {
		return fmt.Errorf("invalid kind: %s (expected shoot or upload)", c.Kind)
	}
	return nil
}

func (c *EventAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	date, err := resolveDate(c.Date)
	if err != nil {
		return err
	}
	clock, err := parseClock(c.Time)
	if err != nil {
		return err
	}

	e, err := ctx.Store.CreateEvent(models.Event{
		Kind:     models.EventKind(c.Kind),
		Title:    c.Title,
		Brand:    c.Brand,
		Date:     date,
		Time:     clock,
		Location: c.Location,
		Platform: c.Platform,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added %s: %s on %s at %s (ID: %s)\n", e.Kind, e.Title, e.Date, displayTime(e.Time), e.ID)
	return nil
}
