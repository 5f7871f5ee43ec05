// Package reschedule governs the lifecycle of a reschedule request:
// Open -> Applied | Cancelled. Requests are transient; the store is
// only touched at the apply transition, so cancelling never leaves a
// partial mutation behind.
package reschedule

import (
	"fmt"
	"time"

	"github.com/shootdeck/shootdeck/internal/models"
	"github.com/shootdeck/shootdeck/internal/store"
	"github.com/shootdeck/shootdeck/internal/timefmt"
)

type State string

const (
	StateOpen      State = "open"
	StateApplied   State = "applied"
	StateCancelled State = "cancelled"
)

// Request is one in-flight reschedule interaction. Callers discard it
// after Apply or Cancel; any further call fails with ErrTerminalState.
type Request struct {
	EventID string

	proposedDate string
	proposedTime string
	validated    bool
	state        State
}

func (r *Request) State() State { return r.state }

// Proposal returns the validated date and time, if any.
func (r *Request) Proposal() (date, clock string, ok bool) {
	return r.proposedDate, r.proposedTime, r.validated
}

type Workflow struct {
	store store.Provider
}

func New(provider store.Provider) *Workflow {
	return &Workflow{store: provider}
}

// Open starts a reschedule request for an event. Completed and
// cancelled events cannot be moved.
func (w *Workflow) Open(eventID string) (*Request, error) {
	e, err := w.store.GetEvent(eventID)
	if err != nil {
		return nil, err
	}
	if e.Status.Terminal() {
		return nil, fmt.Errorf("%w: cannot reschedule a %s event", models.ErrInvalidTransition, e.Status)
	}
	return &Request{EventID: eventID, state: StateOpen}, nil
}

// Propose validates a new date and time against the codec and against
// now: a reschedule must move the event strictly into the future. A
// failed proposal leaves the request open for another attempt.
func (w *Workflow) Propose(req *Request, date, clock string, now time.Time) error {
	if err := req.ensureOpen(); err != nil {
		return err
	}

	proposed, err := timefmt.Combine(date, clock, now.Location())
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrValidation, err)
	}
	if !proposed.After(now) {
		return fmt.Errorf("%w: proposed time %s %s is not in the future", models.ErrValidation, date, clock)
	}

	req.proposedDate = date
	req.proposedTime = clock
	req.validated = true
	return nil
}

// Apply commits a validated proposal through the store and moves the
// request to its terminal state.
func (w *Workflow) Apply(req *Request, at time.Time) (models.Event, error) {
	if err := req.ensureOpen(); err != nil {
		return models.Event{}, err
	}
	if !req.validated {
		return models.Event{}, fmt.Errorf("%w: no validated proposal", models.ErrValidation)
	}

	e, err := w.store.ApplyReschedule(req.EventID, req.proposedDate, req.proposedTime, at)
	if err != nil {
		return models.Event{}, err
	}
	req.state = StateApplied
	return e, nil
}

// Cancel discards an open request. The store is never touched.
func (w *Workflow) Cancel(req *Request) error {
	if err := req.ensureOpen(); err != nil {
		return err
	}
	req.state = StateCancelled
	return nil
}

func (r *Request) ensureOpen() error {
	if r.state != StateOpen {
		return fmt.Errorf("%w: request is %s", models.ErrTerminalState, r.state)
	}
	return nil
}
