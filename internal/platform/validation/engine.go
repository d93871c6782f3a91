// Package validation implements the conditional field validation engine.
//
// The engine holds a fixed table of named rules. Each rule declares the
// field(s) it governs and runs only when at least one of them was submitted,
// so callers can reuse the same engine for every endpoint: absent fields are
// simply skipped.
package validation

import (
	"regexp"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Field names the engine knows about.
const (
	FieldEmail       = "email"
	FieldFullname    = "fullname"
	FieldMobile      = "mobile"
	FieldPassword    = "password"
	FieldOldPassword = "old_password"
	FieldNewPassword = "new_password"
)

// User-facing rule violation messages.
const (
	msgInvalidEmail  = "Invalid email format."
	msgShortFullname = "Fullname must be atleast 4 characters long."
	msgInvalidMobile = "Mobile should start with 6, 7, 8 or 9 and must be 10 digits long."
	msgWeakPassword  = "Password should contain 1 uppercase, 1 lowercase, 1 number, 1 symbol and must be atleast 8 characters long."
	msgWeakPasswords = "Passwords should contain 1 uppercase, 1 lowercase, 1 number, 1 symbol and must be atleast 8 characters long."
	msgSamePasswords = "Old password and new password cannot be same."
)

const (
	minFullnameLength = 4
	minPasswordLength = 8
)

var (
	mobilePattern = regexp.MustCompile(`^[6-9][0-9]{9}$`)
	upperPattern  = regexp.MustCompile(`[A-Z]`)
	lowerPattern  = regexp.MustCompile(`[a-z]`)
	digitPattern  = regexp.MustCompile(`[0-9]`)
	symbolPattern = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// rule is a single entry of the validation table. It governs one or more
// fields and reports every message it finds wrong with them.
type rule struct {
	// fields are the input keys that trigger this rule. The rule runs when
	// any of them is present.
	fields []string

	// apply inspects the submitted fields and returns violation messages.
	apply func(e *Engine, fields map[string]string) []string
}

// Engine validates a mapping of submitted field name to value.
// It is stateless and safe for concurrent use.
type Engine struct {
	rules    []rule
	validate *validator.Validate
}

// NewEngine creates an Engine with the full account rule table.
func NewEngine() *Engine {
	e := &Engine{validate: validator.New()}
	e.rules = []rule{
		{
			fields: []string{FieldEmail},
			apply: func(e *Engine, fields map[string]string) []string {
				if e.validate.Var(fields[FieldEmail], "email") != nil {
					return []string{msgInvalidEmail}
				}
				return nil
			},
		},
		{
			fields: []string{FieldFullname},
			apply: func(e *Engine, fields map[string]string) []string {
				if utf8.RuneCountInString(fields[FieldFullname]) < minFullnameLength {
					return []string{msgShortFullname}
				}
				return nil
			},
		},
		{
			fields: []string{FieldMobile},
			apply: func(e *Engine, fields map[string]string) []string {
				if !mobilePattern.MatchString(fields[FieldMobile]) {
					return []string{msgInvalidMobile}
				}
				return nil
			},
		},
		{
			fields: []string{FieldPassword},
			apply: func(e *Engine, fields map[string]string) []string {
				if !isStrongPassword(fields[FieldPassword]) {
					return []string{msgWeakPassword}
				}
				return nil
			},
		},
		{
			// Either password triggers the strength check of both; the
			// pair must also differ from each other.
			fields: []string{FieldOldPassword, FieldNewPassword},
			apply: func(e *Engine, fields map[string]string) []string {
				var msgs []string
				if !isStrongPassword(fields[FieldOldPassword]) || !isStrongPassword(fields[FieldNewPassword]) {
					msgs = append(msgs, msgWeakPasswords)
				}
				if fields[FieldNewPassword] == fields[FieldOldPassword] {
					msgs = append(msgs, msgSamePasswords)
				}
				return msgs
			},
		},
	}
	return e
}

// Validate applies every rule whose governed fields are present and returns
// the distinct violation messages in rule-table order. A nil result means the
// input is valid. Absent fields are skipped, so the result only depends on the
// submitted values, never on how the mapping was built.
func (e *Engine) Validate(fields map[string]string) []string {
	var msgs []string
	seen := map[string]struct{}{}
	for _, r := range e.rules {
		triggered := false
		for _, f := range r.fields {
			if v, ok := fields[f]; ok && v != "" {
				triggered = true
				break
			}
		}
		if !triggered {
			continue
		}
		for _, m := range r.apply(e, fields) {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			msgs = append(msgs, m)
		}
	}
	return msgs
}

// isStrongPassword reports whether the password has at least 8 characters and
// contains an uppercase letter, a lowercase letter, a digit and a symbol.
func isStrongPassword(password string) bool {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return false
	}
	return upperPattern.MatchString(password) &&
		lowerPattern.MatchString(password) &&
		digitPattern.MatchString(password) &&
		symbolPattern.MatchString(password)
}
