package store

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Seed is the on-disk fixture format read by cmd/seed.
//
//	courses:
//	  - code: CS101
//	    title: Intro to Programming
//	    credits: 4
//	    department: CS
//	faculty:
//	  - name: Ada Lovelace
//	    email: ada@example.edu
//	    department: CS
//	users:
//	  - email: admin@example.edu
//	    name: Admin
//	    password: change-me
type Seed struct {
	Courses []SeedCourse  `yaml:"courses"`
	Faculty []SeedFaculty `yaml:"faculty"`
	Users   []SeedUser    `yaml:"users"`
}

type SeedCourse struct {
	Code        string `yaml:"code"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Credits     int    `yaml:"credits"`
	Department  string `yaml:"department"`
}

type SeedFaculty struct {
	Name       string `yaml:"name"`
	Title      string `yaml:"title"`
	Department string `yaml:"department"`
	Email      string `yaml:"email"`
	Office     string `yaml:"office"`
	Bio        string `yaml:"bio"`
}

// SeedUser carries a plaintext password; Apply hashes it.
type SeedUser struct {
	Email    string `yaml:"email"`
	Name     string `yaml:"name"`
	Password string `yaml:"password"`
}

// LoadSeed reads and parses a seed file.
func LoadSeed(path string) (*Seed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed read: %w", err)
	}
	return ParseSeed(raw)
}

// ParseSeed decodes YAML seed data.  Unknown keys are rejected.
func ParseSeed(raw []byte) (*Seed, error) {
	var s Seed
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("seed parse: %w", err)
	}
	for i, c := range s.Courses {
		if c.Code == "" || c.Title == "" {
			return nil, fmt.Errorf("seed course #%d: code and title required", i+1)
		}
	}
	for i, f := range s.Faculty {
		if f.Name == "" || f.Email == "" {
			return nil, fmt.Errorf("seed faculty #%d: name and email required", i+1)
		}
	}
	for i, u := range s.Users {
		if u.Email == "" || u.Password == "" {
			return nil, fmt.Errorf("seed user #%d: email and password required", i+1)
		}
	}
	return &s, nil
}

// Apply upserts the seed inside one transaction.  hash turns a plaintext
// password into the stored hash.
func (s *Store) Apply(ctx context.Context, seed *Seed, hash func(string) (string, error)) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	const upCourse = `INSERT INTO course (code, title, description, credits, department)
	                  VALUES (:code, :title, :description, :credits, :department)
	                  ON DUPLICATE KEY UPDATE title = VALUES(title),
	                      description = VALUES(description),
	                      credits = VALUES(credits),
	                      department = VALUES(department)`
	for _, c := range seed.Courses {
		if _, err := tx.NamedExecContext(ctx, upCourse, Course{
			Code: c.Code, Title: c.Title, Description: c.Description,
			Credits: c.Credits, Department: c.Department,
		}); err != nil {
			return fmt.Errorf("seed course %s: %w", c.Code, err)
		}
	}

	const upFaculty = `INSERT INTO faculty (name, title, department, email, office, bio)
	                   VALUES (:name, :title, :department, :email, :office, :bio)
	                   ON DUPLICATE KEY UPDATE title = VALUES(title),
	                       department = VALUES(department),
	                       office = VALUES(office),
	                       bio = VALUES(bio)`
	for _, f := range seed.Faculty {
		if _, err := tx.NamedExecContext(ctx, upFaculty, Faculty{
			Name: f.Name, Title: f.Title, Department: f.Department,
			Email: f.Email, Office: f.Office, Bio: f.Bio,
		}); err != nil {
			return fmt.Errorf("seed faculty %s: %w", f.Name, err)
		}
	}

	const upUser = `INSERT INTO user (email, name, password_hash) VALUES (?, ?, ?)
	                ON DUPLICATE KEY UPDATE name = VALUES(name),
	                    password_hash = VALUES(password_hash)`
	for _, u := range seed.Users {
		h, err := hash(u.Password)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
		if _, err := tx.ExecContext(ctx, upUser, u.Email, u.Name, h); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
	}
	return tx.Commit()
}
