package level

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Store keeps level definitions in Postgres as JSONB.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// List returns the catalogue ordered for display.
func (s *Store) List() ([]Summary, error) {
	var out []Summary
	err := s.db.Select(&out, `
		SELECT id, name, par, balls, sort_order
		FROM levels
		ORDER BY sort_order, id
	`)
	return out, err
}

// Get loads and validates one level.
func (s *Store) Get(id string) (*Level, error) {
	var raw []byte
	err := s.db.Get(&raw, `SELECT definition FROM levels WHERE id=$1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	l, err := ParseJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("stored level %q: %w", id, err)
	}
	return l, nil
}

// Upsert validates and writes a level, replacing any existing definition.
func (s *Store) Upsert(l *Level) error {
	if err := l.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(l)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO levels (id, name, par, balls, sort_order, definition, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb, NOW())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			par = EXCLUDED.par,
			balls = EXCLUDED.balls,
			sort_order = EXCLUDED.sort_order,
			definition = EXCLUDED.definition,
			updated_at = NOW()
	`, l.ID, l.Name, l.Par, l.Balls, l.SortOrder, string(data))
	return err
}

// Count returns how many levels are stored.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.Get(&n, `SELECT COUNT(*) FROM levels`)
	return n, err
}

// SyncDir upserts every level file in dir.
func (s *Store) SyncDir(dir string) (int, error) {
	levels, err := LoadDir(dir)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, l := range levels {
		if err := s.Upsert(l); err != nil {
			return n, fmt.Errorf("level %q: %w", l.ID, err)
		}
		n++
	}
	return n, nil
}
