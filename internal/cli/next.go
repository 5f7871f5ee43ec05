package cli

import (
	"fmt"
	"time"

	"github.com/shootdeck/shootdeck/internal/delay"
	"github.com/shootdeck/shootdeck/internal/schedule"
)

type NextCmd struct{}

func (c *NextCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	events, err := ctx.Store.GetAllEvents()
	if err != nil {
		return err
	}

	now := time.Now()
	next := schedule.EarliestOfEachKind(events, now)
	if len(next) == 0 {
		fmt.Println("Nothing on the schedule")
		return nil
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	cfg := settings.Delay()

	fmt.Println("Up next:")
	for _, e := range next {
		fmt.Printf("  %s\n", formatEventLine(e))
		if a, err := delay.Assess(e, now, cfg); err == nil && a.Delayed {
			fmt.Printf("      %s\n", formatDelay(a))
		}
	}

	return nil
}
