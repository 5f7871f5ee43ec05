package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/shootdeck/shootdeck/internal/delay"
)

type DayCmd struct {
	Date string `arg:"" help:"Date to show (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *DayCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	date, err := resolveDate(c.Date)
	if err != nil {
		return err
	}

	events, err := ctx.Store.ListByDate(date)
	if err != nil {
		return err
	}

	fmt.Printf("Schedule for %s:\n\n", date)

	if len(events) == 0 {
		fmt.Println("  No events scheduled")
		return nil
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	cfg := settings.Delay()
	now := time.Now()

	sort.Slice(events, func(i, j int) bool {
		return events[i].Time < events[j].Time
	})

	for _, e := range events {
		fmt.Printf("%s  %-6s  %s", displayTime(e.Time), e.Kind, e.Title)
		if e.Brand != "" {
			fmt.Printf(" (%s)", e.Brand)
		}
		fmt.Printf("  [%s]", e.Status)

		if a, err := delay.Assess(e, now, cfg); err == nil && a.Delayed {
			fmt.Printf("  %s", formatDelay(a))
		}
		fmt.Println()
	}

	return nil
}
