package form

import (
	"strings"
	"unicode/utf8"

	"form-relay/internal/common/errors"
)

// Submission holds the trimmed values of every declared field.
type Submission map[string]string

// Validate trims every declared field and returns the first rule violation, if any.
func (s *Schema) Validate(body map[string]interface{}) (Submission, *errors.StandardError) {
	sub := make(Submission, len(s.Fields))
	for _, f := range s.Fields {
		sub[f.Name] = trimmed(body[f.Name])
	}

	if s.MissingMessage != "" {
		for _, f := range s.Fields {
			if f.Required && sub[f.Name] == "" {
				return nil, errors.NewValidationFailedError(s.MissingMessage, f.Name)
			}
		}
	}

	for _, f := range s.Fields {
		if !f.accepts(sub[f.Name]) {
			return nil, errors.NewValidationFailedError(f.Message, f.Name)
		}
	}

	return sub, nil
}

func (f Field) accepts(value string) bool {
	n := utf8.RuneCountInString(value)
	if n < f.MinLength {
		return false
	}
	if f.MaxLength != NoLimit && n > f.MaxLength {
		return false
	}
	if f.Format != nil && !f.Format(value) {
		return false
	}
	return true
}

func trimmed(v interface{}) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}
