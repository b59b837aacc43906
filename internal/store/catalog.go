package store

import (
	"context"
	"fmt"
)

// Course sort keys accepted from the ?sort= query parameter.
const (
	SortCode    = "code"
	SortName    = "name"
	SortCredits = "credits"
)

// orderBy whitelists sort keys; user input never reaches the SQL text.
var orderBy = map[string]string{
	SortCode:    "code",
	SortName:    "title, code",
	SortCredits: "credits DESC, code",
}

// NormalizeSort maps unknown keys to SortCode.
func NormalizeSort(key string) string {
	if _, ok := orderBy[key]; ok {
		return key
	}
	return SortCode
}

// ListCourses returns courses ordered by sort, optionally limited to one
// department.  An empty dept means all departments.
func (s *Store) ListCourses(ctx context.Context, sort, dept string) ([]Course, error) {
	q := `SELECT id, code, title, description, credits, department FROM course`
	var args []any
	if dept != "" {
		q += ` WHERE department = ?`
		args = append(args, dept)
	}
	q += ` ORDER BY ` + orderBy[NormalizeSort(sort)]

	var rows []Course
	if err := s.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return rows, nil
}

// CourseByCode fetches one course.
func (s *Store) CourseByCode(ctx context.Context, code string) (*Course, error) {
	const q = `SELECT id, code, title, description, credits, department
	           FROM course WHERE code = ? LIMIT 1`
	var c Course
	if err := s.db.GetContext(ctx, &c, q, code); err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

// Departments lists the distinct department codes that have courses.
func (s *Store) Departments(ctx context.Context) ([]string, error) {
	const q = `SELECT DISTINCT department FROM course ORDER BY department`
	var out []string
	if err := s.db.SelectContext(ctx, &out, q); err != nil {
		return nil, fmt.Errorf("departments: %w", err)
	}
	return out, nil
}
