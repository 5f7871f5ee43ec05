package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/shootdeck/shootdeck/internal/backup"
	"github.com/shootdeck/shootdeck/internal/store"
	"github.com/shootdeck/shootdeck/internal/timefmt"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	storeReachable := false

	// Check 1: store reachable
	if err := checkStoreReachable(ctx); err != nil {
		fmt.Printf("❌ Store reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Store reachable: OK\n")
		storeReachable = true
	}

	// Check 2: settings sane
	if storeReachable {
		if err := checkSettings(ctx); err != nil {
			fmt.Printf("❌ Delay thresholds: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Delay thresholds: OK\n")
		}
	} else {
		fmt.Printf("⊘ Delay thresholds: SKIPPED (store not reachable)\n")
	}

	// Check 3: event data consistent
	if storeReachable {
		if err := checkEvents(ctx); err != nil {
			fmt.Printf("❌ Event data: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Event data: OK\n")
		}
	} else {
		fmt.Printf("⊘ Event data: SKIPPED (store not reachable)\n")
	}

	// Check 4: backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	// Check 5: clock/timezone sanity
	if err := checkClockTimezone(); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	// Check 6: concurrent processes (warning only)
	if err := checkConcurrentProcesses(); err != nil {
		fmt.Printf("⚠ Single process: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Single process: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}

	// For SQLite, also try a simple query
	if sqliteStore, ok := ctx.Store.(*store.SQLiteStore); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}

	return nil
}

func checkSettings(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if settings.MinorCeilingMin <= 0 {
		return fmt.Errorf("minor ceiling must be positive, got %d", settings.MinorCeilingMin)
	}
	if settings.ModerateCeilingMin <= settings.MinorCeilingMin {
		return fmt.Errorf("moderate ceiling (%d) must exceed minor ceiling (%d)",
			settings.ModerateCeilingMin, settings.MinorCeilingMin)
	}
	return nil
}

func checkEvents(ctx *Context) error {
	events, err := ctx.Store.GetAllEvents()
	if err != nil {
		return fmt.Errorf("failed to get events: %w", err)
	}

	seen := make(map[string]bool)
	for _, e := range events {
		if seen[e.ID] {
			return fmt.Errorf("duplicate event ID found: %s", e.ID)
		}
		seen[e.ID] = true

		if err := e.Validate(); err != nil {
			return fmt.Errorf("event %s: %w", e.ID, err)
		}
		if !timefmt.Valid24(e.Time) {
			return fmt.Errorf("event %s has malformed time %q", e.ID, e.Time)
		}
		if _, err := time.Parse("2006-01-02", e.Date); err != nil {
			return fmt.Errorf("event %s has malformed date %q", e.ID, e.Date)
		}
	}

	return nil
}

func checkBackupsPresent(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'shootdeck backup create'")
	}

	return nil
}

func checkClockTimezone() error {
	now := time.Now()

	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	_, offset := now.Zone()
	if offset == 0 && now.Location() == time.UTC {
		fmt.Printf("   Note: timezone is UTC\n")
	}

	return nil
}

// checkConcurrentProcesses warns when another shootdeck process is
// running; the JSON store has no cross-process locking.
func checkConcurrentProcesses() error {
	self := filepath.Base(os.Args[0])
	procs, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("failed to list processes: %w", err)
	}

	count := 0
	for _, p := range procs {
		if strings.EqualFold(p.Executable(), self) {
			count++
		}
	}
	if count > 1 {
		return fmt.Errorf("found %d running %s processes; concurrent writes can clobber the store", count, self)
	}

	return nil
}
