package validation

import (
	"regexp"
	"strings"
)

// Violations maps field name to a stable error code. An empty map means
// the input passed every rule.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

var (
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	lowerRe    = regexp.MustCompile(`[a-z]`)
	upperRe    = regexp.MustCompile(`[A-Z]`)
	digitRe    = regexp.MustCompile(`\d`)
)

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func MinLen(field, value string, n int, v Violations) {
	if len(strings.TrimSpace(value)) < n {
		v[field] = "too_short"
	}
}

func PositiveFloat(field string, val float64, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

func RangeFloat(field string, val, minVal, maxVal float64, v Violations) {
	if val < minVal || val > maxVal {
		v[field] = "out_of_range"
	}
}

// OneOf rejects any value outside the given closed set.
func OneOf(field, value string, options []string, v Violations) {
	for _, o := range options {
		if value == o {
			return
		}
	}
	v[field] = "invalid_option"
}

func Email(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
		return
	}
	if !emailRe.MatchString(value) {
		v[field] = "invalid_email"
	}
}

// Username requires at least 3 characters from [a-zA-Z0-9_].
func Username(field, value string, v Violations) {
	switch {
	case strings.TrimSpace(value) == "":
		v[field] = "required"
	case len(value) < 3:
		v[field] = "too_short"
	case !usernameRe.MatchString(value):
		v[field] = "invalid_username"
	}
}

// Password enforces the account password policy: at least 8 characters
// with one lowercase letter, one uppercase letter and one digit. Length
// is checked before composition so each failure names a single rule.
func Password(field, value string, v Violations) {
	switch {
	case value == "":
		v[field] = "required"
	case len(value) < 8:
		v[field] = "password_too_short"
	case !PasswordOK(value):
		v[field] = "password_complexity"
	}
}

// PasswordOK reports whether value satisfies the composition rule alone.
func PasswordOK(value string) bool {
	return lowerRe.MatchString(value) && upperRe.MatchString(value) && digitRe.MatchString(value)
}

func PasswordsMatch(field, password, confirm string, v Violations) {
	if confirm == "" {
		v[field] = "required"
		return
	}
	if password != confirm {
		v[field] = "password_mismatch"
	}
}
