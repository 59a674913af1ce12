// Package form describes the public web forms: their fields, validation rules and notification copy.
package form

import (
	"fmt"
	"regexp"
	"text/template"

	"form-relay/internal/common/validation"
)

// TokenField carries the client-side bot verification token in every submission.
const TokenField = "recaptcha_token"

// NoLimit disables a Field's upper length bound.
const NoLimit = -1

// Form names, also used as the verification expected action.
const (
	NameContact = "contact"
	NameJoinUs  = "join_us"
)

// emailPart excludes "@" and every Unicode whitespace rune. RE2's \s alone is ASCII only.
const emailPart = `[^@\s\v\x{1c}-\x{1f}\x{85}\p{Z}]+`

var emailPattern = regexp.MustCompile(`^` + emailPart + `@` + emailPart + `\.` + emailPart + `$`)

// IsEmail reports whether s looks like local@domain.tld.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Field is one declared form field. Lengths are counted in characters after trimming.
type Field struct {
	Name      string
	Required  bool
	MinLength int
	MaxLength int
	Format    func(string) bool
	Message   string
}

// Schema is the immutable definition of one form.
type Schema struct {
	Name   string
	Action string
	Fields []Field

	// MissingMessage, when set, is returned for any empty required field without naming it.
	MissingMessage string

	subject *template.Template
	body    *template.Template
}

func newSchema(name, action string, fields []Field, missing, subjectTmpl, bodyTmpl string) *Schema {
	return &Schema{
		Name:           name,
		Action:         action,
		Fields:         fields,
		MissingMessage: missing,
		subject:        template.Must(template.New(name + "-subject").Option("missingkey=zero").Parse(subjectTmpl)),
		body:           template.Must(template.New(name + "-body").Option("missingkey=zero").Parse(bodyTmpl)),
	}
}

// Lookup returns the schema registered under name.
func Lookup(name string) (*Schema, error) {
	switch name {
	case NameContact:
		return Contact(), nil
	case NameJoinUs, "join-us":
		return JoinUs(), nil
	default:
		return nil, fmt.Errorf("unknown form %q", name)
	}
}

// Envelope describes the accepted body shape: every declared field and the token must be a string or null.
func (s *Schema) Envelope() validation.JSONSchema {
	props := map[string]validation.Property{
		TokenField: validation.NullableString("bot verification token"),
	}
	for _, f := range s.Fields {
		props[f.Name] = validation.NullableString(f.Name)
	}
	return validation.JSONSchema{
		Type:                 "object",
		Properties:           props,
		AdditionalProperties: true,
	}
}
