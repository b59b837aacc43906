package store

import (
	"context"
	"fmt"
)

// ListFaculty returns the directory sorted by name.  An empty dept means
// all departments.
func (s *Store) ListFaculty(ctx context.Context, dept string) ([]Faculty, error) {
	q := `SELECT id, name, title, department, email, office, bio FROM faculty`
	var args []any
	if dept != "" {
		q += ` WHERE department = ?`
		args = append(args, dept)
	}
	q += ` ORDER BY name`

	var rows []Faculty
	if err := s.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("list faculty: %w", err)
	}
	return rows, nil
}

// FacultyByID fetches one faculty member.
func (s *Store) FacultyByID(ctx context.Context, id uint64) (*Faculty, error) {
	const q = `SELECT id, name, title, department, email, office, bio
	           FROM faculty WHERE id = ? LIMIT 1`
	var f Faculty
	if err := s.db.GetContext(ctx, &f, q, id); err != nil {
		return nil, notFound(err)
	}
	return &f, nil
}
