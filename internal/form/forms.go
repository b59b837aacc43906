package form

import (
	"net/url"
	"strings"
)

// Login is the /login form.
type Login struct {
	Email    string `form:"email" validate:"required,email,max=255"`
	Password string `form:"password" validate:"required,max=128"`
	Next     string `form:"next" validate:"omitempty,max=512"`
}

func (f *Login) Bind(v url.Values) {
	f.Email = strings.ToLower(Text(v, "email"))
	f.Password = v.Get("password") // never sanitised; compared as-is
	f.Next = strings.TrimSpace(v.Get("next"))
}

// Contact is the /contact form.
type Contact struct {
	Name    string `form:"name" validate:"required,max=128"`
	Email   string `form:"email" validate:"required,email,max=255"`
	Subject string `form:"subject" validate:"required,max=200"`
	Message string `form:"message" validate:"required,min=10,max=5000"`
}

func (f *Contact) Bind(v url.Values) {
	f.Name = Text(v, "name")
	f.Email = strings.ToLower(Text(v, "email"))
	f.Subject = Text(v, "subject")
	f.Message = Text(v, "message")
}

// Registration is the /register form.
type Registration struct {
	CourseCode string `form:"course" validate:"required,alphanum,max=16"`
	Term       string `form:"term" validate:"required,term"`
	Phone      string `form:"phone" validate:"required,phone"`
}

func (f *Registration) Bind(v url.Values) {
	f.CourseCode = strings.ToUpper(Text(v, "course"))
	f.Term = strings.ToLower(Text(v, "term"))
	f.Phone = Text(v, "phone")
}
