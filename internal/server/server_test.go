package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/shootdeck/shootdeck/internal/models"
	"github.com/shootdeck/shootdeck/internal/review"
	"github.com/shootdeck/shootdeck/internal/store"
)

func newTestServer(t *testing.T) (*Server, *review.Flow, store.Provider) {
	t.Helper()
	s := store.NewJSONStore(filepath.Join(t.TempDir(), "shootdeck.json"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	flow := review.New(s)
	log := zerolog.Nop()
	return New(":0", "*", flow, &log), flow, s
}

func issueToken(t *testing.T, flow *review.Flow, s store.Provider) models.ReviewToken {
	t.Helper()
	e, err := s.CreateEvent(models.Event{
		Kind:     models.EventKindShoot,
		Title:    "Spring Collection",
		Brand:    "Fashion Nova",
		Date:     "2025-12-01",
		Time:     "14:00",
		Location: "Mumbai Studio",
	})
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	if _, err := s.MarkComplete(e.ID); err != nil {
		t.Fatalf("MarkComplete failed: %v", err)
	}
	tok, err := flow.Issue(e.ID, time.Now())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	return tok
}

func TestHealthEndpoint(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestResolveTokenReturnsEventSummary(t *testing.T) {
	srv, flow, s := newTestServer(t)
	tok := issueToken(t, flow, s)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/reviews/"+tok.Token, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Event struct {
			Title       string `json:"title"`
			Brand       string `json:"brand"`
			DisplayTime string `json:"display_time"`
		} `json:"event"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body.Event.Title != "Spring Collection" || body.Event.DisplayTime != "2:00 PM" {
		t.Errorf("unexpected summary %+v", body.Event)
	}
}

func TestResolveUnknownTokenIs404(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/reviews/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func postReview(srv *Server, token string, payload any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(payload)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/reviews/"+token, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestSubmitReviewOnce(t *testing.T) {
	srv, flow, s := newTestServer(t)
	tok := issueToken(t, flow, s)

	payload := map[string]any{"client_name": "Aditi", "rating": 5, "comment": "Great shoot"}
	if rec := postReview(srv, tok.Token, payload); rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec := postReview(srv, tok.Token, payload); rec.Code != http.StatusConflict {
		t.Errorf("second submission: expected 409, got %d", rec.Code)
	}
}

func TestSubmitReviewValidatesPayload(t *testing.T) {
	srv, flow, s := newTestServer(t)
	tok := issueToken(t, flow, s)

	cases := []map[string]any{
		{"rating": 5},                         // missing name
		{"client_name": "Aditi"},              // missing rating
		{"client_name": "Aditi", "rating": 6}, // out of range
		{"client_name": "Aditi", "rating": 0},
	}
	for _, payload := range cases {
		if rec := postReview(srv, tok.Token, payload); rec.Code != http.StatusBadRequest {
			t.Errorf("payload %v: expected 400, got %d", payload, rec.Code)
		}
	}

	// Nothing above consumed the token.
	good := map[string]any{"client_name": "Aditi", "rating": 4}
	if rec := postReview(srv, tok.Token, good); rec.Code != http.StatusCreated {
		t.Errorf("valid payload after rejects: expected 201, got %d", rec.Code)
	}
}
