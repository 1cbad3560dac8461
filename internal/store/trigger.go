package store

import (
	"database/sql"
	"errors"
	"time"
)

// Trigger records one fired action.
type Trigger struct {
	ID          string
	FingerCount int
	ActionKind  string
	Target      string
	Success     bool
	Error       string
	CreatedAt   time.Time
}

// TriggerRepository provides access to the trigger history.
type TriggerRepository struct {
	db *sql.DB
}

// Triggers returns the trigger repository for this store.
func (s *Store) Triggers() *TriggerRepository {
	return &TriggerRepository{db: s.db}
}

// Record inserts a trigger into the history.
func (r *TriggerRepository) Record(t *Trigger) error {
	t.CreatedAt = time.Now()

	_, err := r.db.Exec(
		`INSERT INTO triggers (id, finger_count, action_kind, target, success, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.FingerCount, t.ActionKind, t.Target, t.Success, t.Error, t.CreatedAt,
	)
	return err
}

// ListRecent returns the most recent triggers, newest first.
func (r *TriggerRepository) ListRecent(limit int) ([]*Trigger, error) {
	rows, err := r.db.Query(
		`SELECT id, finger_count, action_kind, target, success, error, created_at
		 FROM triggers ORDER BY created_at DESC, id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var triggers []*Trigger
	for rows.Next() {
		t := &Trigger{}
		var success int

		err := rows.Scan(&t.ID, &t.FingerCount, &t.ActionKind, &t.Target, &success, &t.Error, &t.CreatedAt)
		if err != nil {
			return nil, err
		}

		t.Success = success != 0
		triggers = append(triggers, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return triggers, nil
}

// GetByID retrieves a trigger by its ID.
func (r *TriggerRepository) GetByID(id string) (*Trigger, error) {
	t := &Trigger{}
	var success int

	err := r.db.QueryRow(
		`SELECT id, finger_count, action_kind, target, success, error, created_at
		 FROM triggers WHERE id = ?`,
		id,
	).Scan(&t.ID, &t.FingerCount, &t.ActionKind, &t.Target, &success, &t.Error, &t.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	t.Success = success != 0
	return t, nil
}

// Prune deletes history older than the given age and returns the number
// of rows removed.
func (r *TriggerRepository) Prune(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)

	result, err := r.db.Exec(`DELETE FROM triggers WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
