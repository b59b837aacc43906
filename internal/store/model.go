package store

import "time"

// Course mirrors one row in `course`.
type Course struct {
	ID          uint64 `db:"id"`
	Code        string `db:"code"`
	Title       string `db:"title"`
	Description string `db:"description"`
	Credits     int    `db:"credits"`
	Department  string `db:"department"`
}

// Faculty mirrors one row in `faculty`.
type Faculty struct {
	ID         uint64 `db:"id"`
	Name       string `db:"name"`
	Title      string `db:"title"`
	Department string `db:"department"`
	Email      string `db:"email"`
	Office     string `db:"office"`
	Bio        string `db:"bio"`
}

// User mirrors one row in `user`.
type User struct {
	ID           int64     `db:"id"`
	Email        string    `db:"email"`
	Name         string    `db:"name"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// Registration is a course sign-up.
type Registration struct {
	ID         uint64    `db:"id"`
	UserID     int64     `db:"user_id"`
	CourseCode string    `db:"course_code"`
	Term       string    `db:"term"`
	Phone      string    `db:"phone"`
	CreatedAt  time.Time `db:"created_at"`
}

// ContactMessage is one submission of the contact form.
type ContactMessage struct {
	Name    string `db:"name"`
	Email   string `db:"email"`
	Subject string `db:"subject"`
	Body    string `db:"body"`
}
