package cli

import "fmt"

type EventCompleteCmd struct {
	ID string `arg:"" help:"ID of the event to mark completed."`
}

func (c *EventCompleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	e, err := ctx.Store.MarkComplete(c.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Completed %s: %s\n", e.Kind, e.Title)
	return nil
}
