package review

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shootdeck/shootdeck/internal/delay"
	"github.com/shootdeck/shootdeck/internal/models"
	"github.com/shootdeck/shootdeck/internal/reschedule"
	"github.com/shootdeck/shootdeck/internal/store"
)

func newFlow(t *testing.T) (*Flow, store.Provider) {
	t.Helper()
	s := store.NewJSONStore(filepath.Join(t.TempDir(), "shootdeck.json"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return New(s), s
}

func completedShoot(t *testing.T, s store.Provider) models.Event {
	t.Helper()
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
	done, err := s.MarkComplete(e.ID)
	if err != nil {
		t.Fatalf("MarkComplete failed: %v", err)
	}
	return done
}

var issuedAt = time.Date(2025, 12, 1, 18, 0, 0, 0, time.UTC)

func TestIssueRequiresCompletedShoot(t *testing.T) {
	f, s := newFlow(t)

	pending, _ := s.CreateEvent(models.Event{
		Kind: models.EventKindShoot, Title: "Pending", Date: "2025-12-05", Time: "10:00", Location: "Studio",
	})
	if _, err := f.Issue(pending.ID, issuedAt); !errors.Is(err, models.ErrInvalidTransition) {
		t.Errorf("upcoming shoot: expected ErrInvalidTransition, got %v", err)
	}

	upload, _ := s.CreateEvent(models.Event{
		Kind: models.EventKindUpload, Title: "Haul", Date: "2025-12-05", Time: "10:00", Platform: "youtube",
	})
	if _, err := s.MarkComplete(upload.ID); err != nil {
		t.Fatalf("MarkComplete failed: %v", err)
	}
	if _, err := f.Issue(upload.ID, issuedAt); !errors.Is(err, models.ErrInvalidTransition) {
		t.Errorf("completed upload: expected ErrInvalidTransition, got %v", err)
	}

	if _, err := f.Issue("missing", issuedAt); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("unknown event: expected ErrNotFound, got %v", err)
	}
}

func TestIssueIsOncePerEvent(t *testing.T) {
	f, s := newFlow(t)
	e := completedShoot(t, s)

	tok, err := f.Issue(e.ID, issuedAt)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if len(tok.Token) != 32 {
		t.Errorf("expected 32 hex chars, got %q", tok.Token)
	}
	if tok.EventID != e.ID || tok.Redeemed {
		t.Errorf("unexpected token %+v", tok)
	}

	if _, err := f.Issue(e.ID, issuedAt); !errors.Is(err, models.ErrAlreadyIssued) {
		t.Errorf("second issue: expected ErrAlreadyIssued, got %v", err)
	}
}

func TestTokensAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 64; i++ {
		tok := newToken()
		if seen[tok] {
			t.Fatalf("duplicate token %q", tok)
		}
		seen[tok] = true
	}
}

func TestResolveWorksBeforeAndAfterRedemption(t *testing.T) {
	f, s := newFlow(t)
	e := completedShoot(t, s)
	tok, _ := f.Issue(e.ID, issuedAt)

	before, err := f.Resolve(tok.Token)
	if err != nil {
		t.Fatalf("Resolve before redeem failed: %v", err)
	}
	if err := f.Redeem(tok.Token); err != nil {
		t.Fatalf("Redeem failed: %v", err)
	}
	after, err := f.Resolve(tok.Token)
	if err != nil {
		t.Fatalf("Resolve after redeem failed: %v", err)
	}
	if before.ID != e.ID || after.ID != e.ID {
		t.Errorf("resolve returned wrong event: before=%s after=%s", before.ID, after.ID)
	}

	if _, err := f.Resolve("unknown"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRedeemSucceedsExactlyOnce(t *testing.T) {
	f, s := newFlow(t)
	e := completedShoot(t, s)
	tok, _ := f.Issue(e.ID, issuedAt)

	if err := f.Redeem(tok.Token); err != nil {
		t.Fatalf("first redeem failed: %v", err)
	}
	if err := f.Redeem(tok.Token); !errors.Is(err, models.ErrAlreadyRedeemed) {
		t.Errorf("second redeem: expected ErrAlreadyRedeemed, got %v", err)
	}
}

func TestSubmitRecordsReviewOnce(t *testing.T) {
	f, s := newFlow(t)
	e := completedShoot(t, s)
	tok, _ := f.Issue(e.ID, issuedAt)

	r, err := f.Submit(tok.Token, models.Review{ClientName: "Aditi", Rating: 5, Comment: "Great shoot"}, issuedAt)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if r.EventID != e.ID {
		t.Errorf("review bound to wrong event: %+v", r)
	}

	if _, err := f.Submit(tok.Token, models.Review{ClientName: "Again", Rating: 1}, issuedAt); !errors.Is(err, models.ErrAlreadyRedeemed) {
		t.Errorf("second submit: expected ErrAlreadyRedeemed, got %v", err)
	}

	reviews, err := s.ReviewsByEvent(e.ID)
	if err != nil {
		t.Fatalf("ReviewsByEvent failed: %v", err)
	}
	if len(reviews) != 1 {
		t.Errorf("expected exactly one review, got %d", len(reviews))
	}
}

// Full pass through the engine: book a shoot, watch it run late,
// reschedule it, complete it, collect the review.
func TestShootLifecycle(t *testing.T) {
	f, s := newFlow(t)

	e, err := s.CreateEvent(models.Event{
		Kind:     models.EventKindShoot,
		Title:    "Winter Collection",
		Brand:    "StyleHub",
		Date:     "2025-12-01",
		Time:     "08:00",
		Location: "Studio 4",
	})
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	now := time.Date(2025, 12, 1, 11, 30, 0, 0, time.UTC)
	a, err := delay.Assess(e, now, delay.DefaultConfig())
	if err != nil {
		t.Fatalf("Assess failed: %v", err)
	}
	if !a.Delayed || a.Minutes != 210 || a.Severity != delay.SeverityModerate {
		t.Fatalf("expected 210-minute moderate delay, got %+v", a)
	}

	w := reschedule.New(s)
	req, err := w.Open(e.ID)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := w.Propose(req, "2025-12-02", "09:00", now); err != nil {
		t.Fatalf("Propose failed: %v", err)
	}
	moved, err := w.Apply(req, now)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if moved.Date != "2025-12-02" || moved.Time != "09:00" || len(moved.Reschedules) != 1 {
		t.Fatalf("unexpected event after reschedule: %+v", moved)
	}

	if _, err := s.MarkComplete(e.ID); err != nil {
		t.Fatalf("MarkComplete failed: %v", err)
	}

	tok, err := f.Issue(e.ID, now)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if err := f.Redeem(tok.Token); err != nil {
		t.Fatalf("Redeem failed: %v", err)
	}
	if err := f.Redeem(tok.Token); !errors.Is(err, models.ErrAlreadyRedeemed) {
		t.Fatalf("expected ErrAlreadyRedeemed, got %v", err)
	}
}
