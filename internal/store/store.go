// internal/store/store.go
//
// Query helpers for the campus database.
//
// Context
// -------
// The schema (internal/database/migrations) is small:
//
//	course           (code, title, description, credits, department)
//	faculty          (name, title, department, email, office, bio)
//	user             (email, name, password_hash)
//	registration     (user_id, course_code, term, phone)
//	contact_message  (name, email, subject, body)
//
// Every helper runs exactly one parameterised statement through sqlx and
// honours the caller's context.  Missing rows surface as ErrNotFound so
// handlers can answer 404 without importing database/sql.
//
// Notes
// -----
// • Column lists match the struct tags in model.go; update both together.
package store

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("store: not found")

// ErrDuplicate is returned when an insert violates a unique key.
var ErrDuplicate = errors.New("store: duplicate")

// Store wraps the shared pool.
type Store struct {
	db *sqlx.DB
}

// New returns a Store over db.
func New(db *sqlx.DB) *Store { return &Store{db: db} }

// DB exposes the pool for health checks.
func (s *Store) DB() *sqlx.DB { return s.db }

// notFound maps sql.ErrNoRows to ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
