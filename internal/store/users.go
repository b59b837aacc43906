package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// UserByEmail looks a user up by login email (case-insensitive).
func (s *Store) UserByEmail(ctx context.Context, email string) (*User, error) {
	const q = `SELECT id, email, name, password_hash, created_at
	           FROM user WHERE email = ? LIMIT 1`
	var u User
	if err := s.db.GetContext(ctx, &u, q, strings.ToLower(email)); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// CreateUser inserts a user and returns its id.
func (s *Store) CreateUser(ctx context.Context, email, name, passwordHash string) (int64, error) {
	const q = `INSERT INTO user (email, name, password_hash) VALUES (?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q, strings.ToLower(email), name, passwordHash)
	if err != nil {
		return 0, duplicate(err)
	}
	return res.LastInsertId()
}

// CreateRegistration records a course sign-up.
func (s *Store) CreateRegistration(ctx context.Context, r Registration) error {
	const q = `INSERT INTO registration (user_id, course_code, term, phone)
	           VALUES (:user_id, :course_code, :term, :phone)`
	if _, err := s.db.NamedExecContext(ctx, q, r); err != nil {
		return duplicate(err)
	}
	return nil
}

// RegistrationsForUser lists a user's sign-ups, newest first.
func (s *Store) RegistrationsForUser(ctx context.Context, userID int64) ([]Registration, error) {
	const q = `SELECT id, user_id, course_code, term, phone, created_at
	           FROM registration WHERE user_id = ? ORDER BY created_at DESC`
	var rows []Registration
	if err := s.db.SelectContext(ctx, &rows, q, userID); err != nil {
		return nil, fmt.Errorf("registrations: %w", err)
	}
	return rows, nil
}

// CreateContactMessage stores a contact form submission.
func (s *Store) CreateContactMessage(ctx context.Context, m ContactMessage) error {
	const q = `INSERT INTO contact_message (name, email, subject, body)
	           VALUES (:name, :email, :subject, :body)`
	if _, err := s.db.NamedExecContext(ctx, q, m); err != nil {
		return fmt.Errorf("contact message: %w", err)
	}
	return nil
}

// duplicate maps MySQL error 1062 to ErrDuplicate.
func duplicate(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == 1062 {
		return ErrDuplicate
	}
	return err
}
