// Package validation holds the field checks applied to the register, login
// and profile forms before anything reaches the account store.
package validation

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/profilekeeper/internal/common"
)

const MinPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Field names used as Errors keys.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
)

// Errors maps a field name to a user-facing message.
type Errors map[string]string

func (e Errors) Error() string {
	fields := e.fields()
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Messages returns the messages ordered by field name.
func (e Errors) Messages() []string {
	fields := e.fields()
	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, e[f])
	}
	return msgs
}

func (e Errors) fields() []string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func (e Errors) Unwrap() error { return common.ErrValidation }

// Err returns e as an error, or nil when there is nothing to report.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func checkEmail(e Errors, email, invalidMsg string) {
	switch {
	case strings.TrimSpace(email) == "":
		e[FieldEmail] = "Email is required"
	case !emailPattern.MatchString(email):
		e[FieldEmail] = invalidMsg
	}
}

func checkPassword(e Errors, password string) {
	switch {
	case password == "":
		e[FieldPassword] = "Password is required"
	case utf8.RuneCountInString(password) < MinPasswordLength:
		e[FieldPassword] = "Password must be at least 6 characters"
	}
}

// Registration checks the sign-up form.
func Registration(name, email, password string) error {
	e := Errors{}
	if strings.TrimSpace(name) == "" {
		e[FieldName] = "Name is required"
	}
	checkEmail(e, email, "Invalid email")
	checkPassword(e, password)
	return e.Err()
}

// Login checks the sign-in form.
func Login(email, password string) error {
	e := Errors{}
	checkEmail(e, email, "Invalid email")
	checkPassword(e, password)
	return e.Err()
}

// Profile checks the profile form. The password may be left blank to keep
// the current one.
func Profile(name, email, password string) error {
	e := Errors{}
	if strings.TrimSpace(name) == "" {
		e[FieldName] = "Name is required"
	}
	checkEmail(e, email, "Email is invalid")
	if password != "" && utf8.RuneCountInString(password) < MinPasswordLength {
		e[FieldPassword] = "Password must be 6+ chars"
	}
	return e.Err()
}
