package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/shootdeck/shootdeck/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS events (
	id         TEXT PRIMARY KEY,
	kind       TEXT NOT NULL,
	title      TEXT NOT NULL,
	brand      TEXT NOT NULL DEFAULT '',
	date       TEXT NOT NULL,
	time       TEXT NOT NULL,
	location   TEXT NOT NULL DEFAULT '',
	platform   TEXT NOT NULL DEFAULT '',
	status     TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_date ON events(date);
CREATE TABLE IF NOT EXISTS reschedules (
	event_id   TEXT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
	seq        INTEGER NOT NULL,
	date       TEXT NOT NULL,
	time       TEXT NOT NULL,
	changed_at TEXT NOT NULL,
	PRIMARY KEY (event_id, seq)
);
CREATE TABLE IF NOT EXISTS review_tokens (
	token      TEXT PRIMARY KEY,
	event_id   TEXT NOT NULL UNIQUE REFERENCES events(id) ON DELETE CASCADE,
	created_at TEXT NOT NULL,
	redeemed   INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS reviews (
	id           TEXT PRIMARY KEY,
	event_id     TEXT NOT NULL,
	client_name  TEXT NOT NULL,
	rating       INTEGER NOT NULL,
	comment      TEXT NOT NULL DEFAULT '',
	submitted_at TEXT NOT NULL
);
`

// SQLiteStore is the default backend.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	if _, err := s.GetSettings(); err != nil {
		if err := s.SaveSettings(DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'shootdeck init' first")
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db
	// Schema statements are idempotent, so opening an older store file
	// picks up any missing tables.
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetSettings() (Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return Settings{}, err
	}
	defer rows.Close()

	settings := Settings{}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return Settings{}, err
		}
		switch key {
		case "minor_ceiling_min":
			if _, err := fmt.Sscanf(value, "%d", &settings.MinorCeilingMin); err != nil {
				return Settings{}, fmt.Errorf("parsing minor_ceiling_min: %w", err)
			}
		case "moderate_ceiling_min":
			if _, err := fmt.Sscanf(value, "%d", &settings.ModerateCeilingMin); err != nil {
				return Settings{}, fmt.Errorf("parsing moderate_ceiling_min: %w", err)
			}
		}
		count++
	}
	if count == 0 {
		return Settings{}, fmt.Errorf("settings not found")
	}
	return settings, rows.Err()
}

func (s *SQLiteStore) SaveSettings(settings Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	if _, err := stmt.Exec("minor_ceiling_min", fmt.Sprintf("%d", settings.MinorCeilingMin)); err != nil {
		return err
	}
	if _, err := stmt.Exec("moderate_ceiling_min", fmt.Sprintf("%d", settings.ModerateCeilingMin)); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) CreateEvent(e models.Event) (models.Event, error) {
	if err := validateNewEvent(&e); err != nil {
		return models.Event{}, err
	}

	_, err := s.db.Exec(`
		INSERT INTO events (id, kind, title, brand, date, time, location, platform, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Kind, e.Title, e.Brand, e.Date, e.Time, e.Location, e.Platform, e.Status,
		e.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return models.Event{}, err
	}
	return e, nil
}

const eventColumns = "id, kind, title, brand, date, time, location, platform, status, created_at"

func (s *SQLiteStore) scanEvent(row interface{ Scan(...any) error }) (models.Event, error) {
	var e models.Event
	var kind, status, createdAt string
	err := row.Scan(&e.ID, &kind, &e.Title, &e.Brand, &e.Date, &e.Time, &e.Location, &e.Platform, &status, &createdAt)
	if err != nil {
		return models.Event{}, err
	}
	e.Kind = models.EventKind(kind)
	e.Status = models.EventStatus(status)
	if at, err := time.Parse(time.RFC3339, createdAt); err == nil {
		e.CreatedAt = at
	}
	return e, nil
}

func (s *SQLiteStore) GetEvent(id string) (models.Event, error) {
	row := s.db.QueryRow("SELECT "+eventColumns+" FROM events WHERE id = ?", id)
	e, err := s.scanEvent(row)
	if err == sql.ErrNoRows {
		return models.Event{}, fmt.Errorf("%w: event %s", models.ErrNotFound, id)
	}
	if err != nil {
		return models.Event{}, err
	}
	e.Reschedules, err = s.rescheduleHistory(id)
	if err != nil {
		return models.Event{}, err
	}
	return e, nil
}

func (s *SQLiteStore) rescheduleHistory(eventID string) ([]models.RescheduleEntry, error) {
	rows, err := s.db.Query(
		"SELECT date, time, changed_at FROM reschedules WHERE event_id = ? ORDER BY seq", eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []models.RescheduleEntry
	for rows.Next() {
		var entry models.RescheduleEntry
		var changedAt string
		if err := rows.Scan(&entry.Date, &entry.Time, &changedAt); err != nil {
			return nil, err
		}
		if at, err := time.Parse(time.RFC3339, changedAt); err == nil {
			entry.ChangedAt = at
		}
		history = append(history, entry)
	}
	return history, rows.Err()
}

func (s *SQLiteStore) GetAllEvents() ([]models.Event, error) {
	return s.queryEvents("SELECT " + eventColumns + " FROM events")
}

func (s *SQLiteStore) ListByDate(date string) ([]models.Event, error) {
	return s.queryEvents("SELECT "+eventColumns+" FROM events WHERE date = ?", date)
}

func (s *SQLiteStore) queryEvents(query string, args ...any) ([]models.Event, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		e, err := s.scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range events {
		events[i].Reschedules, err = s.rescheduleHistory(events[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return events, nil
}

func (s *SQLiteStore) MarkComplete(id string) (models.Event, error) {
	e, err := s.GetEvent(id)
	if err != nil {
		return models.Event{}, err
	}
	if e.Status.Terminal() {
		return models.Event{}, fmt.Errorf("%w: event %s is %s", models.ErrInvalidTransition, id, e.Status)
	}
	if _, err := s.db.Exec("UPDATE events SET status = ? WHERE id = ?", models.StatusCompleted, id); err != nil {
		return models.Event{}, err
	}
	e.Status = models.StatusCompleted
	return e, nil
}

func (s *SQLiteStore) DeleteEvent(id string) error {
	if _, err := s.GetEvent(id); err != nil {
		return err
	}
	if tok, err := s.TokenByEvent(id); err == nil && tok.Redeemed {
		return fmt.Errorf("%w: event %s has a redeemed review", models.ErrInvalidTransition, id)
	}
	_, err := s.db.Exec("DELETE FROM events WHERE id = ?", id)
	return err
}

func (s *SQLiteStore) ApplyReschedule(id, date, clock string, at time.Time) (models.Event, error) {
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

	tx, err := s.db.Begin()
	if err != nil {
		return models.Event{}, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("UPDATE events SET date = ?, time = ? WHERE id = ?", date, clock, id); err != nil {
		return models.Event{}, err
	}
	if _, err := tx.Exec(`
		INSERT INTO reschedules (event_id, seq, date, time, changed_at)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM reschedules WHERE event_id = ?), ?, ?, ?)`,
		id, id, date, clock, at.UTC().Format(time.RFC3339),
	); err != nil {
		return models.Event{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Event{}, err
	}

	return s.GetEvent(id)
}

func (s *SQLiteStore) SaveToken(tok models.ReviewToken) error {
	_, err := s.db.Exec(`
		INSERT INTO review_tokens (token, event_id, created_at, redeemed)
		VALUES (?, ?, ?, ?)`,
		tok.Token, tok.EventID, tok.CreatedAt.UTC().Format(time.RFC3339), tok.Redeemed,
	)
	return err
}

func (s *SQLiteStore) TokenByValue(token string) (models.ReviewToken, error) {
	return s.scanToken(s.db.QueryRow(
		"SELECT token, event_id, created_at, redeemed FROM review_tokens WHERE token = ?", token))
}

func (s *SQLiteStore) TokenByEvent(eventID string) (models.ReviewToken, error) {
	return s.scanToken(s.db.QueryRow(
		"SELECT token, event_id, created_at, redeemed FROM review_tokens WHERE event_id = ?", eventID))
}

func (s *SQLiteStore) scanToken(row *sql.Row) (models.ReviewToken, error) {
	var tok models.ReviewToken
	var createdAt string
	err := row.Scan(&tok.Token, &tok.EventID, &createdAt, &tok.Redeemed)
	if err == sql.ErrNoRows {
		return models.ReviewToken{}, fmt.Errorf("%w: token", models.ErrNotFound)
	}
	if err != nil {
		return models.ReviewToken{}, err
	}
	if at, err := time.Parse(time.RFC3339, createdAt); err == nil {
		tok.CreatedAt = at
	}
	return tok, nil
}

// RedeemToken is a single compare-and-set: the UPDATE only matches an
// unredeemed row, so two concurrent redeems cannot both succeed.
func (s *SQLiteStore) RedeemToken(token string) error {
	res, err := s.db.Exec(
		"UPDATE review_tokens SET redeemed = 1 WHERE token = ? AND redeemed = 0", token)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}
	if _, err := s.TokenByValue(token); err != nil {
		return err
	}
	return fmt.Errorf("%w: token", models.ErrAlreadyRedeemed)
}

func (s *SQLiteStore) SaveReview(r models.Review) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	_, err := s.db.Exec(`
		INSERT INTO reviews (id, event_id, client_name, rating, comment, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.EventID, r.ClientName, r.Rating, r.Comment, r.SubmittedAt.UTC().Format(time.RFC3339),
	)
	return err
}

func (s *SQLiteStore) ReviewsByEvent(eventID string) ([]models.Review, error) {
	rows, err := s.db.Query(`
		SELECT id, event_id, client_name, rating, comment, submitted_at
		FROM reviews WHERE event_id = ? ORDER BY submitted_at`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var r models.Review
		var submittedAt string
		if err := rows.Scan(&r.ID, &r.EventID, &r.ClientName, &r.Rating, &r.Comment, &submittedAt); err != nil {
			return nil, err
		}
		if at, err := time.Parse(time.RFC3339, submittedAt); err == nil {
			r.SubmittedAt = at
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}
