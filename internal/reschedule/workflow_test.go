package reschedule

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shootdeck/shootdeck/internal/models"
	"github.com/shootdeck/shootdeck/internal/store"
)

func newWorkflow(t *testing.T) (*Workflow, store.Provider, models.Event) {
	t.Helper()
	s := store.NewJSONStore(filepath.Join(t.TempDir(), "shootdeck.json"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	e, err := s.CreateEvent(models.Event{
		Kind:     models.EventKindShoot,
		Title:    "Spring Collection",
		Date:     "2025-12-01",
		Time:     "08:00",
		Location: "Mumbai Studio",
	})
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	return New(s), s, e
}

var now = time.Date(2025, 11, 25, 12, 0, 0, 0, time.UTC)

func TestOpenRejectsTerminalEvents(t *testing.T) {
	w, s, e := newWorkflow(t)
	if _, err := s.MarkComplete(e.ID); err != nil {
		t.Fatalf("MarkComplete failed: %v", err)
	}

	if _, err := w.Open(e.ID); !errors.Is(err, models.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
	if _, err := w.Open("missing"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestProposeRejectsPastDates(t *testing.T) {
	w, _, e := newWorkflow(t)
	req, err := w.Open(e.ID)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	cases := []struct{ date, clock string }{
		{"2025-11-24", "08:00"},
		{"2025-11-25", "11:59"},
		{"2025-11-25", "12:00"}, // exactly now is not a move forward
	}
	for _, c := range cases {
		if err := w.Propose(req, c.date, c.clock, now); !errors.Is(err, models.ErrValidation) {
			t.Errorf("propose %s %s: expected ErrValidation, got %v", c.date, c.clock, err)
		}
	}

	// A failed proposal keeps the request open for re-entry.
	if req.State() != StateOpen {
		t.Errorf("expected request to stay open, got %s", req.State())
	}
	if err := w.Propose(req, "2025-11-25", "12:01", now); err != nil {
		t.Errorf("future proposal should succeed, got %v", err)
	}
}

func TestProposeRejectsMalformedInput(t *testing.T) {
	w, _, e := newWorkflow(t)
	req, _ := w.Open(e.ID)

	if err := w.Propose(req, "2025-13-40", "09:00", now); !errors.Is(err, models.ErrValidation) {
		t.Errorf("bad date: expected ErrValidation, got %v", err)
	}
	if err := w.Propose(req, "2025-12-02", "25:00", now); !errors.Is(err, models.ErrValidation) {
		t.Errorf("bad clock: expected ErrValidation, got %v", err)
	}
}

func TestApplyCommitsProposal(t *testing.T) {
	w, s, e := newWorkflow(t)
	req, _ := w.Open(e.ID)
	if err := w.Propose(req, "2025-12-02", "09:00", now); err != nil {
		t.Fatalf("Propose failed: %v", err)
	}

	updated, err := w.Apply(req, now)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if updated.Date != "2025-12-02" || updated.Time != "09:00" {
		t.Errorf("event not moved: %+v", updated)
	}
	if len(updated.Reschedules) != 1 {
		t.Errorf("expected one history entry, got %d", len(updated.Reschedules))
	}
	if req.State() != StateApplied {
		t.Errorf("expected applied, got %s", req.State())
	}

	stored, _ := s.GetEvent(e.ID)
	if stored.Date != "2025-12-02" {
		t.Errorf("store not updated: %+v", stored)
	}
}

func TestApplyRequiresValidatedProposal(t *testing.T) {
	w, _, e := newWorkflow(t)
	req, _ := w.Open(e.ID)

	if _, err := w.Apply(req, now); !errors.Is(err, models.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestTerminalRequestsRejectEverything(t *testing.T) {
	w, _, e := newWorkflow(t)

	req, _ := w.Open(e.ID)
	if err := w.Cancel(req); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if err := w.Propose(req, "2025-12-02", "09:00", now); !errors.Is(err, models.ErrTerminalState) {
		t.Errorf("propose after cancel: expected ErrTerminalState, got %v", err)
	}
	if _, err := w.Apply(req, now); !errors.Is(err, models.ErrTerminalState) {
		t.Errorf("apply after cancel: expected ErrTerminalState, got %v", err)
	}
	if err := w.Cancel(req); !errors.Is(err, models.ErrTerminalState) {
		t.Errorf("double cancel: expected ErrTerminalState, got %v", err)
	}

	applied, _ := w.Open(e.ID)
	if err := w.Propose(applied, "2025-12-02", "09:00", now); err != nil {
		t.Fatalf("Propose failed: %v", err)
	}
	if _, err := w.Apply(applied, now); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if _, err := w.Apply(applied, now); !errors.Is(err, models.ErrTerminalState) {
		t.Errorf("double apply: expected ErrTerminalState, got %v", err)
	}
}

func TestCancelLeavesStoreUntouched(t *testing.T) {
	w, s, e := newWorkflow(t)
	req, _ := w.Open(e.ID)
	if err := w.Propose(req, "2025-12-02", "09:00", now); err != nil {
		t.Fatalf("Propose failed: %v", err)
	}
	if err := w.Cancel(req); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}

	stored, _ := s.GetEvent(e.ID)
	if stored.Date != "2025-12-01" || stored.Time != "08:00" || len(stored.Reschedules) != 0 {
		t.Errorf("store mutated by cancelled request: %+v", stored)
	}
}
