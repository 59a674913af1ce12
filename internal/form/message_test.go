package form

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContact_Render(t *testing.T) {
	schema := Contact()
	sub, verr := schema.Validate(map[string]interface{}{
		"name":    "Jane Doe",
		"email":   "jane@example.com",
		"company": "Acme <Holdings> & Co",
		"service": "Advisory",
		"message": "Hello\nsecond line",
	})
	require.Nil(t, verr)

	n, err := schema.Render(sub)
	require.NoError(t, err)

	assert.Equal(t, "New Contact Form Submission from Jane Doe", n.Subject)
	assert.Contains(t, n.Body, "Name: Jane Doe\n")
	assert.Contains(t, n.Body, "Email: jane@example.com\n")
	assert.Contains(t, n.Body, "Company: Acme <Holdings> & Co\n")
	assert.Contains(t, n.Body, "Service of Interest: Advisory\n")
	assert.True(t, strings.HasSuffix(n.Body, "Message:\nHello\nsecond line"))
	assert.True(t, strings.HasPrefix(n.Body, "You are receiving this email because"))
}

func TestJoinUs_Render(t *testing.T) {
	schema := JoinUs()
	sub, verr := schema.Validate(validJoinUsBody())
	require.Nil(t, verr)

	n, err := schema.Render(sub)
	require.NoError(t, err)

	assert.Equal(t, "New Talent Application from Sam Lee", n.Subject)
	assert.Contains(t, n.Body, "Country & Time Zone: Portugal, WET\n")
	assert.Contains(t, n.Body, "LinkedIn Profile: https://linkedin.com/in/samlee\n")
	assert.Contains(t, n.Body, "Resume/CV Link: https://drive.example.com/cv.pdf\n")
	assert.Contains(t, n.Body, "Areas of Expertise: M&A, valuation\n")
}

func TestRender_SubjectTruncated(t *testing.T) {
	schema := Contact()
	sub, verr := schema.Validate(map[string]interface{}{
		"name":  strings.Repeat("Ж", 150),
		"email": "a@b.com",
	})
	require.Nil(t, verr)

	n, err := schema.Render(sub)
	require.NoError(t, err)

	assert.Equal(t, MaxSubjectLength, utf8.RuneCountInString(n.Subject))
	assert.True(t, strings.HasPrefix(n.Subject, "New Contact Form Submission from ЖЖ"))
	assert.Contains(t, n.Body, strings.Repeat("Ж", 150))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abc", 2))
	assert.Equal(t, "", truncate("", 2))
}
