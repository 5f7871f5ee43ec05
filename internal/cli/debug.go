package cli

import (
	"encoding/json"
	"fmt"
)

type DebugCmd struct {
	StorePath *DebugStorePathCmd `cmd:"" help:"Show store path."`
	DumpEvent *DebugDumpEventCmd `cmd:"" help:"Dump event data as JSON."`
}

type DebugStorePathCmd struct{}

func (cmd *DebugStorePathCmd) Run(ctx *Context) error {
	// Output in machine-readable format
	output := map[string]string{
		"path": ctx.Store.GetConfigPath(),
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDumpEventCmd struct {
	ID string `arg:"" help:"ID of the event to dump."`
}

func (cmd *DebugDumpEventCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}

	e, err := ctx.Store.GetEvent(cmd.ID)
	if err != nil {
		return fmt.Errorf("failed to get event: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}
