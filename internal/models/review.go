package models

import "time"

// ReviewToken binds one completed shoot to a public review link. The
// token value is generated once and never changes; Redeemed flips to
// true exactly once when a client review lands.
type ReviewToken struct {
	Token     string    `json:"token"`
	EventID   string    `json:"event_id"`
	CreatedAt time.Time `json:"created_at"`
	Redeemed  bool      `json:"redeemed"`
}

// Review is a client's submission against a review token.
type Review struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	ClientName  string    `json:"client_name"`
	Rating      int       `json:"rating"` // 1..5
	Comment     string    `json:"comment,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}
