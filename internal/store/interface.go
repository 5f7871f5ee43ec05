package store

import (
	"time"

	"github.com/shootdeck/shootdeck/internal/delay"
	"github.com/shootdeck/shootdeck/internal/models"
)

// Settings holds the configurable delay thresholds, persisted with the
// rest of the store so every view classifies identically.
type Settings struct {
	MinorCeilingMin    int `json:"minor_ceiling_min"`
	ModerateCeilingMin int `json:"moderate_ceiling_min"`
}

func (s Settings) Delay() delay.Config {
	return delay.Config{
		MinorCeilingMin:    s.MinorCeilingMin,
		ModerateCeilingMin: s.ModerateCeilingMin,
	}
}

func DefaultSettings() Settings {
	cfg := delay.DefaultConfig()
	return Settings{
		MinorCeilingMin:    cfg.MinorCeilingMin,
		ModerateCeilingMin: cfg.ModerateCeilingMin,
	}
}

// Provider is the single owner of event, token and review records.
// The reschedule workflow and the review flow mutate events only
// through its designated operations.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (Settings, error)
	SaveSettings(Settings) error

	// Events
	CreateEvent(models.Event) (models.Event, error)
	GetEvent(id string) (models.Event, error)
	GetAllEvents() ([]models.Event, error)
	ListByDate(date string) ([]models.Event, error)
	MarkComplete(id string) (models.Event, error)
	DeleteEvent(id string) error
	// ApplyReschedule is called by the reschedule workflow at its apply
	// transition only; it appends to the event's history and does not
	// validate the new date-time against "now".
	ApplyReschedule(id, date, clock string, at time.Time) (models.Event, error)

	// Review tokens and reviews
	SaveToken(models.ReviewToken) error
	TokenByValue(token string) (models.ReviewToken, error)
	TokenByEvent(eventID string) (models.ReviewToken, error)
	// RedeemToken is a compare-and-set on the redeemed flag.
	RedeemToken(token string) error
	SaveReview(models.Review) error
	ReviewsByEvent(eventID string) ([]models.Review, error)

	// Utils
	GetConfigPath() string
}
