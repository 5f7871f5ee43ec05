package cli

import "fmt"

type EventDeleteCmd struct {
	ID string `arg:"" help:"ID of the event to delete."`
}

func (c *EventDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	e, err := ctx.Store.GetEvent(c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteEvent(c.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted %s: %s\n", e.Kind, e.Title)
	return nil
}
