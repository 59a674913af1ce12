package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envelope() JSONSchema {
	return JSONSchema{
		Type: "object",
		Properties: map[string]Property{
			"recaptcha_token": NullableString("verification token"),
			"name":            NullableString("submitter name"),
		},
		AdditionalProperties: true,
	}
}

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name    string
		doc     interface{}
		valid   bool
		errText string
	}{
		{
			name:  "strings accepted",
			doc:   map[string]interface{}{"recaptcha_token": "tok", "name": "Jane"},
			valid: true,
		},
		{
			name:  "null accepted",
			doc:   map[string]interface{}{"name": nil},
			valid: true,
		},
		{
			name:  "unknown fields of any type accepted",
			doc:   map[string]interface{}{"consent": true, "page": 3.0},
			valid: true,
		},
		{
			name:    "number rejected",
			doc:     map[string]interface{}{"name": 42.0},
			valid:   false,
			errText: "name",
		},
		{
			name:    "object rejected",
			doc:     map[string]interface{}{"recaptcha_token": map[string]interface{}{"t": "x"}},
			valid:   false,
			errText: "recaptcha_token",
		},
		{
			name:    "array document rejected",
			doc:     []interface{}{"a"},
			valid:   false,
			errText: "(root)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateDocument(tt.doc, envelope())
			require.NoError(t, err)
			assert.Equal(t, tt.valid, result.Valid)
			if !tt.valid {
				assert.Contains(t, result.Summary(), tt.errText)
			} else {
				assert.Empty(t, result.Summary())
			}
		})
	}
}

func TestValidateDocument_LengthAndPattern(t *testing.T) {
	schema := JSONSchema{
		Type: "object",
		Properties: map[string]Property{
			"code": {Type: "string", MinLength: IntPtr(2), MaxLength: IntPtr(4)},
		},
		Required: []string{"code"},
	}

	result, err := ValidateDocument(map[string]interface{}{"code": "abc"}, schema)
	require.NoError(t, err)
	assert.True(t, result.Valid)

	result, err = ValidateDocument(map[string]interface{}{"code": "abcde"}, schema)
	require.NoError(t, err)
	assert.False(t, result.Valid)

	result, err = ValidateDocument(map[string]interface{}{}, schema)
	require.NoError(t, err)
	assert.False(t, result.Valid)
}
