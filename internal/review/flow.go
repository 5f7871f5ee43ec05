// Package review issues and redeems the one-time tokens that link a
// completed shoot to its public review form.
package review

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/shootdeck/shootdeck/internal/models"
	"github.com/shootdeck/shootdeck/internal/store"
)

type Flow struct {
	store store.Provider
}

func New(provider store.Provider) *Flow {
	return &Flow{store: provider}
}

// Issue creates the review token for a completed shoot. Each event
// gets at most one token, ever.
func (f *Flow) Issue(eventID string, now time.Time) (models.ReviewToken, error) {
	e, err := f.store.GetEvent(eventID)
	if err != nil {
		return models.ReviewToken{}, err
	}
	if e.Kind != models.EventKindShoot {
		return models.ReviewToken{}, fmt.Errorf("%w: review links are for shoots only", models.ErrInvalidTransition)
	}
	if e.Status != models.StatusCompleted {
		return models.ReviewToken{}, fmt.Errorf("%w: event %s is %s, not completed", models.ErrInvalidTransition, eventID, e.Status)
	}
	if _, err := f.store.TokenByEvent(eventID); err == nil {
		return models.ReviewToken{}, fmt.Errorf("%w: event %s", models.ErrAlreadyIssued, eventID)
	} else if !errors.Is(err, models.ErrNotFound) {
		return models.ReviewToken{}, err
	}

	tok := models.ReviewToken{
		Token:     newToken(),
		EventID:   eventID,
		CreatedAt: now,
	}
	if err := f.store.SaveToken(tok); err != nil {
		return models.ReviewToken{}, err
	}
	return tok, nil
}

// Resolve looks up the event bound to a token without redeeming it, so
// the review form can render before and after submission.
func (f *Flow) Resolve(token string) (models.Event, error) {
	tok, err := f.store.TokenByValue(token)
	if err != nil {
		return models.Event{}, err
	}
	return f.store.GetEvent(tok.EventID)
}

// Redeem consumes the token. Exactly one call succeeds per token.
func (f *Flow) Redeem(token string) error {
	return f.store.RedeemToken(token)
}

// Submit redeems the token and records the client's review. The redeem
// runs first: once it succeeds no second submission can get through,
// so one token can never yield two reviews.
func (f *Flow) Submit(token string, r models.Review, now time.Time) (models.Review, error) {
	tok, err := f.store.TokenByValue(token)
	if err != nil {
		return models.Review{}, err
	}
	if err := f.store.RedeemToken(token); err != nil {
		return models.Review{}, err
	}

	r.EventID = tok.EventID
	r.SubmittedAt = now
	if err := f.store.SaveReview(r); err != nil {
		return models.Review{}, err
	}
	return r, nil
}

// newToken returns 32 hex characters from crypto/rand. The link is the
// only credential guarding the public review form, so it has to be
// unguessable.
func newToken() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(buf)
}
