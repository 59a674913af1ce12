package form

import (
	"bytes"
	"fmt"
)

// MaxSubjectLength is the longest subject the notification sink accepts.
const MaxSubjectLength = 100

// Notification is the rendered message for one accepted submission.
type Notification struct {
	Subject string
	Body    string
}

// Render fills the schema's templates with the submission values verbatim.
func (s *Schema) Render(sub Submission) (Notification, error) {
	var subject, body bytes.Buffer
	if err := s.subject.Execute(&subject, map[string]string(sub)); err != nil {
		return Notification{}, fmt.Errorf("render subject: %w", err)
	}
	if err := s.body.Execute(&body, map[string]string(sub)); err != nil {
		return Notification{}, fmt.Errorf("render body: %w", err)
	}

	return Notification{
		Subject: truncate(subject.String(), MaxSubjectLength),
		Body:    body.String(),
	}, nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
