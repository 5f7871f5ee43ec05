package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shootdeck/shootdeck/internal/models"
	"github.com/shootdeck/shootdeck/internal/timefmt"
)

type fileStore struct {
	Version  int                           `json:"version"`
	Settings Settings                      `json:"settings"`
	Events   map[string]models.Event       `json:"events"`
	Tokens   map[string]models.ReviewToken `json:"tokens"` // keyed by token value
	Reviews  []models.Review               `json:"reviews"`
}

// JSONStore keeps the whole store in a single JSON file. It is the
// lightweight backend for a single local user; the SQLite store is the
// default.
type JSONStore struct {
	path string
	mu   sync.Mutex
	data *fileStore
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{path: configPath}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.data = &fileStore{
		Version:  1,
		Settings: DefaultSettings(),
		Events:   make(map[string]models.Event),
		Tokens:   make(map[string]models.ReviewToken),
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'shootdeck init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.data = &fileStore{}
	if err := json.Unmarshal(raw, s.data); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.data.Events == nil {
		s.data.Events = make(map[string]models.Event)
	}
	if s.data.Tokens == nil {
		s.data.Tokens = make(map[string]models.ReviewToken)
	}
	return nil
}

func (s *JSONStore) Close() error { return nil }

func (s *JSONStore) save() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) loaded() error {
	if s.data == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

func (s *JSONStore) GetSettings() (Settings, error) {
	if err := s.loaded(); err != nil {
		return Settings{}, err
	}
	return s.data.Settings, nil
}

func (s *JSONStore) SaveSettings(settings Settings) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.data.Settings = settings
	return s.save()
}

func (s *JSONStore) CreateEvent(e models.Event) (models.Event, error) {
	if err := s.loaded(); err != nil {
		return models.Event{}, err
	}
	if err := validateNewEvent(&e); err != nil {
		return models.Event{}, err
	}
	s.data.Events[e.ID] = e
	if err := s.save(); err != nil {
		return models.Event{}, err
	}
	return e, nil
}

func (s *JSONStore) GetEvent(id string) (models.Event, error) {
	if err := s.loaded(); err != nil {
		return models.Event{}, err
	}
	e, ok := s.data.Events[id]
	if !ok {
		return models.Event{}, fmt.Errorf("%w: event %s", models.ErrNotFound, id)
	}
	return e, nil
}

func (s *JSONStore) GetAllEvents() ([]models.Event, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	events := make([]models.Event, 0, len(s.data.Events))
	for _, e := range s.data.Events {
		events = append(events, e)
	}
	return events, nil
}

func (s *JSONStore) ListByDate(date string) ([]models.Event, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	var events []models.Event
	for _, e := range s.data.Events {
		if e.Date == date {
			events = append(events, e)
		}
	}
	return events, nil
}

func (s *JSONStore) MarkComplete(id string) (models.Event, error) {
	e, err := s.GetEvent(id)
	if err != nil {
		return models.Event{}, err
	}
	if e.Status.Terminal() {
		return models.Event{}, fmt.Errorf("%w: event %s is %s", models.ErrInvalidTransition, id, e.Status)
	}
	e.Status = models.StatusCompleted
	s.data.Events[id] = e
	if err := s.save(); err != nil {
		return models.Event{}, err
	}
	return e, nil
}

func (s *JSONStore) DeleteEvent(id string) error {
	if _, err := s.GetEvent(id); err != nil {
		return err
	}
	if tok, err := s.TokenByEvent(id); err == nil && tok.Redeemed {
		return fmt.Errorf("%w: event %s has a redeemed review", models.ErrInvalidTransition, id)
	}
	delete(s.data.Events, id)
	for value, tok := range s.data.Tokens {
		if tok.EventID == id {
			delete(s.data.Tokens, value)
		}
	}
	return s.save()
}

func (s *JSONStore) ApplyReschedule(id, date, clock string, at time.Time) (models.Event, error) {
	e, err := s.GetEvent(id)
	if err != nil {
		return models.Event{}, err
	}
	if e.Status.Terminal() {
		return models.Event{}, fmt.Errorf("%w: event %s is %s", models.ErrInvalidTransition, id, e.Status)
	}
	if err := validateSchedule(date, clock); err != nil {
		return models.Event{}, err
	}

	e.Date = date
	e.Time = clock
	e.Reschedules = append(e.Reschedules, models.RescheduleEntry{
		Date:      date,
		Time:      clock,
		ChangedAt: at,
	})
	s.data.Events[id] = e
	if err := s.save(); err != nil {
		return models.Event{}, err
	}
	return e, nil
}

func (s *JSONStore) SaveToken(tok models.ReviewToken) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.data.Tokens[tok.Token] = tok
	return s.save()
}

func (s *JSONStore) TokenByValue(token string) (models.ReviewToken, error) {
	if err := s.loaded(); err != nil {
		return models.ReviewToken{}, err
	}
	tok, ok := s.data.Tokens[token]
	if !ok {
		return models.ReviewToken{}, fmt.Errorf("%w: token", models.ErrNotFound)
	}
	return tok, nil
}

func (s *JSONStore) TokenByEvent(eventID string) (models.ReviewToken, error) {
	if err := s.loaded(); err != nil {
		return models.ReviewToken{}, err
	}
	for _, tok := range s.data.Tokens {
		if tok.EventID == eventID {
			return tok, nil
		}
	}
	return models.ReviewToken{}, fmt.Errorf("%w: no token for event %s", models.ErrNotFound, eventID)
}

// RedeemToken flips the redeemed flag exactly once. The mutex makes the
// check-and-set atomic with respect to concurrent redeem attempts.
func (s *JSONStore) RedeemToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tok, err := s.TokenByValue(token)
	if err != nil {
		return err
	}
	if tok.Redeemed {
		return fmt.Errorf("%w: token", models.ErrAlreadyRedeemed)
	}
	tok.Redeemed = true
	s.data.Tokens[token] = tok
	return s.save()
}

func (s *JSONStore) SaveReview(r models.Review) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	s.data.Reviews = append(s.data.Reviews, r)
	return s.save()
}

func (s *JSONStore) ReviewsByEvent(eventID string) ([]models.Review, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	var out []models.Review
	for _, r := range s.data.Reviews {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

// validateNewEvent normalizes a creation request in place: fresh id,
// upcoming status, validated kind fields and schedule.
func validateNewEvent(e *models.Event) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if err := validateSchedule(e.Date, e.Time); err != nil {
		return err
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	e.Status = models.StatusUpcoming
	e.Reschedules = nil
	return nil
}

func validateSchedule(date, clock string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("%w: date %q is not YYYY-MM-DD", models.ErrValidation, date)
	}
	if !timefmt.Valid24(clock) {
		return fmt.Errorf("%w: time %q is not 24-hour HH:MM", models.ErrValidation, clock)
	}
	return nil
}
