package cli

import (
	"fmt"
	"sort"

	"github.com/shootdeck/shootdeck/internal/models"
	"github.com/shootdeck/shootdeck/internal/schedule"
)

type EventListCmd struct {
	Kind   string `short:"k" help:"Filter by kind (shoot|upload)."`
	Status string `short:"s" help:"Filter by status (upcoming|in_progress|completed|cancelled)."`
	From   string `help:"Start of date range (YYYY-MM-DD, inclusive)."`
	To     string `help:"End of date range (YYYY-MM-DD, inclusive)."`
}

func (c *EventListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	events, err := ctx.Store.GetAllEvents()
	if err != nil {
		return err
	}

	if c.From != "" || c.To != "" {
		if c.From == "" || c.To == "" {
			return fmt.Errorf("--from and --to must be given together")
		}
		events, err = schedule.FilterByDateRange(events, c.From, c.To)
		if err != nil {
			return err
		}
	}

	var shown []models.Event
	for _, e := range events {
		if c.Kind != "" && string(e.Kind) != c.Kind {
			continue
		}
		if c.Status != "" && string(e.Status) != c.Status {
			continue
		}
		shown = append(shown, e)
	}

	if len(shown) == 0 {
		fmt.Println("No events found")
		return nil
	}

	sort.Slice(shown, func(i, j int) bool {
		if shown[i].Date != shown[j].Date {
			return shown[i].Date < shown[j].Date
		}
		return shown[i].Time < shown[j].Time
	})

	fmt.Println("Events:")
	for _, e := range shown {
		fmt.Printf("  %s\n", formatEventLine(e))
		if n := len(e.Reschedules); n > 0 {
			fmt.Printf("      Rescheduled %d time(s)\n", n)
		}
	}

	return nil
}
