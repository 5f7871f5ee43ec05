package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/shootdeck/shootdeck/internal/models"
	"github.com/shootdeck/shootdeck/internal/review"
	"github.com/shootdeck/shootdeck/internal/timefmt"
)

var validate = validator.New()

// ReviewHandler serves the token-bound review form endpoints.
type ReviewHandler struct {
	flow *review.Flow
	log  *zerolog.Logger
}

func NewReviewHandler(flow *review.Flow, log *zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{flow: flow, log: log}
}

// SubmitReviewRequest is the payload posted from the review form.
type SubmitReviewRequest struct {
	ClientName string `json:"client_name" validate:"required"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Comment    string `json:"comment" validate:"max=2000"`
}

// eventSummary is what the public form needs to render; internal
// fields such as location stay private.
type eventSummary struct {
	Title       string `json:"title"`
	Brand       string `json:"brand,omitempty"`
	Date        string `json:"date"`
	DisplayTime string `json:"display_time"`
}

// ResolveToken looks up the event behind a review link without
// consuming the token.
func (h *ReviewHandler) ResolveToken(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	e, err := h.flow.Resolve(token)
	if err != nil {
		h.writeError(w, err)
		return
	}

	summary := eventSummary{Title: e.Title, Brand: e.Brand, Date: e.Date}
	if c, err := timefmt.To12Hour(e.Time); err == nil {
		summary.DisplayTime = c.String()
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"event":  summary,
	})
}

// SubmitReview redeems the token and records the client's review.
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	var req SubmitReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("failed to decode review payload")
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"status": "error", "message": "invalid request body",
		})
		return
	}
	if err := validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"status": "error", "message": err.Error(),
		})
		return
	}

	submitted, err := h.flow.Submit(token, models.Review{
		ClientName: req.ClientName,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}, time.Now())
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"status": "success",
		"review": submitted,
	})
}

func (h *ReviewHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]any{
			"status": "error", "message": "invalid link",
		})
	case errors.Is(err, models.ErrAlreadyRedeemed):
		writeJSON(w, http.StatusConflict, map[string]any{
			"status": "error", "message": "this review has already been submitted",
		})
	default:
		h.log.Error().Err(err).Msg("review request failed")
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"status": "error", "message": "internal server error",
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
