// internal/form/form.go
//
// Campus – Forms subsystem: parse, verify, bind, and validate a POST.
//
// Context
//   Handlers describe each form as a struct with `validate` tags and a Bind
//   method that copies url.Values into it.  Processor.Submit wraps the
//   common sequence:
//
//     1. ParseForm.
//     2. CSRF token check (`csrf_token`).
//     3. Render-timestamp check (`render_ts`): not too fast, not too stale.
//     4. Bind, with free text passed through a strict HTML sanitizer.
//     5. go-playground/validator on the bound struct.
//
//   Failures in 2, 3, and 5 come back as a validation error carrying
//   []ErrorField so templates can highlight exact issues.  Anything else is
//   a system failure and should become a 500.
//
// Style
//   Full sentences, two space spacing, Oxford comma.
//
//------------------------------------------------------------------------------

package form

import (
	"errors"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

// ErrorField describes a single validation failure so the template can render
// a field-level message.  Name is empty for form-level problems.
type ErrorField struct {
	Name    string // field name
	Message string // user-facing message
}

// validationError wraps []ErrorField and satisfies the error interface.
type validationError struct{ Fields []ErrorField }

func (ve validationError) Error() string { return "form validation failed" }

// IsValidationError reports whether err is a user input error.
func IsValidationError(err error) bool {
	var ve validationError
	return errors.As(err, &ve)
}

// Fields returns the field errors carried by err, or nil.
func Fields(err error) []ErrorField {
	var ve validationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}

// Binder copies posted values into a form struct.
type Binder interface {
	Bind(v url.Values)
}

// Processor validates submissions.  Build one at startup.
type Processor struct {
	CSRF     *CSRF
	MinDelay time.Duration // reject posts faster than this after render
	MaxAge   time.Duration // reject posts older than this

	validate *validator.Validate
	now      func() time.Time
}

// NewProcessor returns a Processor with the default timing window.
func NewProcessor(csrf *CSRF) *Processor {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name, _, _ := strings.Cut(f.Tag.Get("form"), ","); name != "" && name != "-" {
			return name
		}
		return f.Name
	})
	_ = v.RegisterValidation("term", func(fl validator.FieldLevel) bool {
		return termRE.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRE.MatchString(fl.Field().String())
	})
	return &Processor{
		CSRF:     csrf,
		MinDelay: 2 * time.Second,
		MaxAge:   30 * time.Minute,
		validate: v,
		now:      time.Now,
	}
}

var (
	termRE  = regexp.MustCompile(`^(spring|summer|fall)-\d{4}$`)
	phoneRE = regexp.MustCompile(`^\+?[0-9][0-9 ()\-.]{5,30}$`)
)

// Hidden returns the values every rendered form must embed:
// csrf_token and render_ts.
func (p *Processor) Hidden() (map[string]string, error) {
	tok, err := p.CSRF.Token()
	if err != nil {
		return nil, fmt.Errorf("csrf token: %w", err)
	}
	return map[string]string{
		"csrf_token": tok,
		"render_ts":  strconv.FormatInt(p.now().UnixMicro(), 10),
	}, nil
}

// Submit parses r, checks CSRF and timing, binds into dst, and validates.
func (p *Processor) Submit(r *http.Request, dst Binder) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	posted := r.PostForm

	if tok := posted.Get("csrf_token"); tok == "" || !p.CSRF.Verify(tok) {
		return validationError{[]ErrorField{{"", "Security token invalid.  Please refresh and try again."}}}
	}
	if msg := p.checkTiming(posted.Get("render_ts")); msg != "" {
		return validationError{[]ErrorField{{"", msg}}}
	}

	dst.Bind(posted)

	if err := p.validate.Struct(dst); err != nil {
		var ves validator.ValidationErrors
		if !errors.As(err, &ves) {
			return err
		}
		fields := make([]ErrorField, 0, len(ves))
		for _, fe := range ves {
			fields = append(fields, ErrorField{Name: fe.Field(), Message: message(fe)})
		}
		return validationError{fields}
	}
	return nil
}

// checkTiming ensures the form was not submitted suspiciously fast or too late.
// Returns empty string on success, user-visible message on failure.
func (p *Processor) checkTiming(tsRaw string) string {
	if tsRaw == "" {
		return "Timestamp missing.  Please reload the page."
	}
	ts, err := strconv.ParseInt(tsRaw, 10, 64)
	if err != nil {
		return "Bad timestamp.  Please retry."
	}
	delta := p.now().Sub(time.UnixMicro(ts))
	switch {
	case delta < p.MinDelay:
		return "Form submitted too quickly.  Please enter the fields manually."
	case p.MaxAge > 0 && delta > p.MaxAge:
		return "Form expired.  Please reload and submit again."
	default:
		return ""
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "max":
		return "Must be at most " + fe.Param() + " characters."
	case "min":
		return "Must be at least " + fe.Param() + " characters."
	case "alphanum":
		return "Letters and digits only."
	case "term":
		return "Choose a term such as fall-2025."
	case "phone":
		return "Enter a valid phone number."
	default:
		return "Invalid value."
	}
}

//
// bind helpers
//

var strict = bluemonday.StrictPolicy()

// Text returns the trimmed value of key with all markup stripped.
func Text(v url.Values, key string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(v.Get(key))))
}
