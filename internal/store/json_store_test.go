package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shootdeck/shootdeck/internal/models"
)

func newTestJSONStore(t *testing.T) *JSONStore {
	t.Helper()
	s := NewJSONStore(filepath.Join(t.TempDir(), "shootdeck.json"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return s
}

func testShoot() models.Event {
	return models.Event{
		Kind:     models.EventKindShoot,
		Title:    "Spring Collection",
		Brand:    "Fashion Nova",
		Date:     "2025-12-01",
		Time:     "10:00",
		Location: "Mumbai Studio",
	}
}

func TestJSONCreateAssignsIDAndStatus(t *testing.T) {
	s := newTestJSONStore(t)

	created, err := s.CreateEvent(testShoot())
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	if created.ID == "" {
		t.Error("expected a generated id")
	}
	if created.Status != models.StatusUpcoming {
		t.Errorf("expected upcoming, got %s", created.Status)
	}

	got, err := s.GetEvent(created.ID)
	if err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	if got.Title != "Spring Collection" || got.Time != "10:00" {
		t.Errorf("unexpected event %+v", got)
	}
}

func TestJSONCreateValidatesKindFields(t *testing.T) {
	s := newTestJSONStore(t)

	e := testShoot()
	e.Location = ""
	if _, err := s.CreateEvent(e); !errors.Is(err, models.ErrValidation) {
		t.Errorf("shoot without location: expected ErrValidation, got %v", err)
	}

	u := models.Event{Kind: models.EventKindUpload, Title: "Haul Video", Date: "2025-12-01", Time: "16:00"}
	if _, err := s.CreateEvent(u); !errors.Is(err, models.ErrValidation) {
		t.Errorf("upload without platform: expected ErrValidation, got %v", err)
	}

	u.Platform = "instagram"
	u.Location = "Studio B"
	if _, err := s.CreateEvent(u); !errors.Is(err, models.ErrValidation) {
		t.Errorf("upload with location: expected ErrValidation, got %v", err)
	}
}

func TestJSONMarkCompleteIsGuarded(t *testing.T) {
	s := newTestJSONStore(t)
	created, _ := s.CreateEvent(testShoot())

	done, err := s.MarkComplete(created.ID)
	if err != nil {
		t.Fatalf("first MarkComplete failed: %v", err)
	}
	if done.Status != models.StatusCompleted {
		t.Errorf("expected completed, got %s", done.Status)
	}

	if _, err := s.MarkComplete(created.ID); !errors.Is(err, models.ErrInvalidTransition) {
		t.Errorf("second MarkComplete: expected ErrInvalidTransition, got %v", err)
	}

	got, _ := s.GetEvent(created.ID)
	if got.Status != models.StatusCompleted {
		t.Errorf("status corrupted by failed call: %s", got.Status)
	}
}

func TestJSONDeleteGuardsRedeemedReview(t *testing.T) {
	s := newTestJSONStore(t)
	created, _ := s.CreateEvent(testShoot())

	tok := models.ReviewToken{Token: "tkn", EventID: created.ID, CreatedAt: time.Now()}
	if err := s.SaveToken(tok); err != nil {
		t.Fatalf("SaveToken failed: %v", err)
	}
	if err := s.RedeemToken("tkn"); err != nil {
		t.Fatalf("RedeemToken failed: %v", err)
	}

	if err := s.DeleteEvent(created.ID); !errors.Is(err, models.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition deleting reviewed event, got %v", err)
	}
}

func TestJSONDeleteRemovesEventAndUnredeemedToken(t *testing.T) {
	s := newTestJSONStore(t)
	created, _ := s.CreateEvent(testShoot())
	_ = s.SaveToken(models.ReviewToken{Token: "tkn", EventID: created.ID, CreatedAt: time.Now()})

	if err := s.DeleteEvent(created.ID); err != nil {
		t.Fatalf("DeleteEvent failed: %v", err)
	}
	if _, err := s.GetEvent(created.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if _, err := s.TokenByValue("tkn"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected token gone after delete, got %v", err)
	}
}

func TestJSONApplyRescheduleAppendsHistory(t *testing.T) {
	s := newTestJSONStore(t)
	created, _ := s.CreateEvent(testShoot())
	at := time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC)

	updated, err := s.ApplyReschedule(created.ID, "2025-12-02", "09:00", at)
	if err != nil {
		t.Fatalf("ApplyReschedule failed: %v", err)
	}
	if updated.Date != "2025-12-02" || updated.Time != "09:00" {
		t.Errorf("schedule not updated: %+v", updated)
	}
	if len(updated.Reschedules) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(updated.Reschedules))
	}
	if updated.Reschedules[0].Date != "2025-12-02" || !updated.Reschedules[0].ChangedAt.Equal(at) {
		t.Errorf("unexpected history entry %+v", updated.Reschedules[0])
	}
}

func TestJSONRedeemTokenOnlyOnce(t *testing.T) {
	s := newTestJSONStore(t)
	created, _ := s.CreateEvent(testShoot())
	_ = s.SaveToken(models.ReviewToken{Token: "tkn", EventID: created.ID, CreatedAt: time.Now()})

	if err := s.RedeemToken("tkn"); err != nil {
		t.Fatalf("first redeem failed: %v", err)
	}
	if err := s.RedeemToken("tkn"); !errors.Is(err, models.ErrAlreadyRedeemed) {
		t.Errorf("second redeem: expected ErrAlreadyRedeemed, got %v", err)
	}
	if err := s.RedeemToken("missing"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("unknown token: expected ErrNotFound, got %v", err)
	}
}

func TestJSONPersistsAcrossReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shootdeck.json")
	s := NewJSONStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	created, _ := s.CreateEvent(testShoot())

	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	got, err := reopened.GetEvent(created.ID)
	if err != nil {
		t.Fatalf("GetEvent after reload failed: %v", err)
	}
	if got.Title != created.Title {
		t.Errorf("expected %q, got %q", created.Title, got.Title)
	}
}
