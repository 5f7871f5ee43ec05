package cli

import (
	"fmt"
	"time"

	"github.com/shootdeck/shootdeck/internal/delay"
	"github.com/shootdeck/shootdeck/internal/schedule"
)

type DelayedCmd struct {
	Severity string `short:"s" help:"Restrict to one bucket (minor|moderate|critical)."`
}

func (c *DelayedCmd) Validate() error {
	switch delay.Severity(c.Severity) {
	case "", delay.SeverityMinor, delay.SeverityModerate, delay.SeverityCritical:
		return nil
	}
	return fmt.Errorf("invalid severity: %s", c.Severity)
}

func (c *DelayedCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	events, err := ctx.Store.GetAllEvents()
	if err != nil {
		return err
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	now := time.Now()
	cfg := settings.Delay()
	hits := schedule.FilterDelayed(events, now, cfg, delay.Severity(c.Severity))
	if len(hits) == 0 {
		fmt.Println("Nothing is running late")
		return nil
	}

	fmt.Println("Delayed events (most overdue first):")
	for _, e := range hits {
		a, err := delay.Assess(e, now, cfg)
		if err != nil {
			continue
		}
		fmt.Printf("  %s\n      %s\n", formatEventLine(e), formatDelay(a))
	}

	return nil
}
