package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ratneshs230/prepdeck/internal/quiz"
	"github.com/ratneshs230/prepdeck/internal/session"
)

// Logical record keys in the app_kv table.
const (
	keyAppState      = "app_state"
	keyCredential    = "credential"
	keyActiveSession = "active_session"
)

// SnapshotTTL is how long a saved session snapshot stays resumable.
// Older snapshots are discarded on load.
const SnapshotTTL = 24 * time.Hour

// StateRepo persists the top-level app-state aggregate.
type StateRepo interface {
	// Save overwrites the stored app state with the given document.
	Save(ctx context.Context, state quiz.AppState) error

	// Load returns the stored app state, or the zero value if none exists.
	Load(ctx context.Context) (quiz.AppState, error)
}

// CredentialRepo persists the user-supplied AI API key. The key is stored
// in clear text; there is no encryption layer.
type CredentialRepo interface {
	Set(ctx context.Context, key string) error

	// Get returns the stored key, or "" if none is set.
	Get(ctx context.Context) (string, error)

	Clear(ctx context.Context) error
}

// SessionSnapshot captures an in-progress session so it survives a restart.
type SessionSnapshot struct {
	Session      *session.Session `json:"session"`
	Attempts     []quiz.Attempt   `json:"attempts"`
	CurrentIndex int              `json:"currentIndex"`

	// ElapsedSecs is the countdown time already spent when the snapshot was
	// taken; resuming continues the clock from here.
	ElapsedSecs int       `json:"elapsedSecs"`
	SavedAt     time.Time `json:"savedAt"`
}

// SessionSnapshotRepo persists the active-session snapshot.
type SessionSnapshotRepo interface {
	Save(ctx context.Context, snap SessionSnapshot) error

	// Load returns the stored snapshot, or nil if none exists or the
	// stored one has expired (expired snapshots are deleted, not an error).
	Load(ctx context.Context) (*SessionSnapshot, error)

	Clear(ctx context.Context) error
}

func kvSet(ctx context.Context, db *sql.DB, key, value string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO app_kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now())
	if err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	return nil
}

func kvGet(ctx context.Context, db *sql.DB, key string) (string, bool, error) {
	var value string
	err := db.QueryRowContext(ctx, `SELECT value FROM app_kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("kv get %q: %w", key, err)
	}
	return value, true, nil
}

func kvDelete(ctx context.Context, db *sql.DB, key string) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM app_kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	return nil
}

type kvStateRepo struct {
	db *sql.DB
}

func (r *kvStateRepo) Save(ctx context.Context, state quiz.AppState) error {
	b, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal app state: %w", err)
	}
	return kvSet(ctx, r.db, keyAppState, string(b))
}

func (r *kvStateRepo) Load(ctx context.Context) (quiz.AppState, error) {
	var state quiz.AppState
	raw, ok, err := kvGet(ctx, r.db, keyAppState)
	if err != nil || !ok {
		return state, err
	}
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return quiz.AppState{}, fmt.Errorf("unmarshal app state: %w", err)
	}
	return state, nil
}

type kvCredentialRepo struct {
	db *sql.DB
}

func (r *kvCredentialRepo) Set(ctx context.Context, key string) error {
	return kvSet(ctx, r.db, keyCredential, key)
}

func (r *kvCredentialRepo) Get(ctx context.Context) (string, error) {
	key, _, err := kvGet(ctx, r.db, keyCredential)
	return key, err
}

func (r *kvCredentialRepo) Clear(ctx context.Context) error {
	return kvDelete(ctx, r.db, keyCredential)
}

type kvSnapshotRepo struct {
	db *sql.DB
}

func (r *kvSnapshotRepo) Save(ctx context.Context, snap SessionSnapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal session snapshot: %w", err)
	}
	return kvSet(ctx, r.db, keyActiveSession, string(b))
}

func (r *kvSnapshotRepo) Load(ctx context.Context) (*SessionSnapshot, error) {
	raw, ok, err := kvGet(ctx, r.db, keyActiveSession)
	if err != nil || !ok {
		return nil, err
	}

	var snap SessionSnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		// A snapshot that no longer parses is stale data, not a fault.
		_ = kvDelete(ctx, r.db, keyActiveSession)
		return nil, nil
	}

	if time.Since(snap.SavedAt) > SnapshotTTL {
		_ = kvDelete(ctx, r.db, keyActiveSession)
		return nil, nil
	}

	return &snap, nil
}

func (r *kvSnapshotRepo) Clear(ctx context.Context) error {
	return kvDelete(ctx, r.db, keyActiveSession)
}
