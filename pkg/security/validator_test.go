package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSearchQuery(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		expectErr error
		expected  string
	}{
		{name: "empty query", query: "", expected: ""},
		{name: "whitespace only", query: "   ", expected: ""},
		{name: "simple query", query: "golang", expected: "golang"},
		{name: "query with spaces", query: "rest api", expected: "rest api"},
		{name: "trimmed", query: "  rest api  ", expected: "rest api"},
		{name: "allowed punctuation", query: "go-1.22_notes, o'reilly", expected: "go-1.22_notes, o'reilly"},
		{name: "keyword inside a word", query: "updated articles", expected: "updated articles"},
		{name: "unicode letters", query: "café crème", expected: "café crème"},
		{
			name:      "too long",
			query:     strings.Repeat("a", MaxSearchQueryLength+1),
			expectErr: ErrSearchQueryTooLong,
		},
		{name: "UNION injection", query: "x UNION SELECT * FROM users", expectErr: ErrSearchQueryInvalid},
		{name: "OR 1=1", query: "x OR 1=1", expectErr: ErrSearchQueryInvalid},
		{name: "comment", query: "x --", expectErr: ErrSearchQueryInvalid},
		{name: "drop table", query: "x; DROP TABLE users", expectErr: ErrSearchQueryInvalid},
		{name: "script tag", query: "<script>alert('xss')</script>", expectErr: ErrSearchQueryInvalid},
		{name: "ampersand", query: "rock&roll", expectErr: ErrSearchQueryInvalid},
		{name: "semicolon", query: "a;b", expectErr: ErrSearchQueryInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateSearchQuery(tt.query)

			if tt.expectErr != nil {
				require.ErrorIs(t, err, tt.expectErr)
				assert.Empty(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		query    string
		expected string
	}{
		{"", ""},
		{"golang", "golang"},
		{"100%", `100\%`},
		{"snake_case", `snake\_case`},
		{`back\slash`, `back\\slash`},
		{"%a_%", `\%a\_\%`},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.expected, EscapeLike(tt.query))
		})
	}
}

func TestIsValidSearchChar(t *testing.T) {
	valid := []rune{'a', 'Z', '5', ' ', '-', '_', '.', '@', '+', ',', '\'', 'é'}
	invalid := []rune{';', '&', '<', '>', '*', '#', '"', '(', ')'}

	for _, c := range valid {
		assert.True(t, isValidSearchChar(c), string(c))
	}
	for _, c := range invalid {
		assert.False(t, isValidSearchChar(c), string(c))
	}
}

func BenchmarkValidateSearchQuery(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = ValidateSearchQuery("building a rest api")
	}
}
