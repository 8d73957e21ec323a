package security

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxSearchQueryLength defines the maximum allowed length for search queries
const MaxSearchQueryLength = 100

var (
	// ErrSearchQueryTooLong is returned for queries over MaxSearchQueryLength runes
	ErrSearchQueryTooLong = errors.New("search query too long")
	// ErrSearchQueryInvalid is returned for queries with disallowed characters or patterns
	ErrSearchQueryInvalid = errors.New("search query contains invalid characters")
)

// dangerousPatterns contains regex patterns that could indicate SQL injection or XSS attempts.
// Keywords match on word boundaries so ordinary words like "updated" stay searchable.
var dangerousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(union|select|insert|update|delete|drop|create|alter|exec|execute)\b`),
	regexp.MustCompile(`(?i)\b(or|and)\s+\d+\s*=\s*\d+`),
	regexp.MustCompile(`(?i)\b(or|and)\s+['"].*['"]\s*=\s*['"].*['"]`),
	regexp.MustCompile(`(--|#|/\*|\*/)`),
	regexp.MustCompile(`(?i)\b(waitfor|delay|benchmark|sleep)\b`),
	regexp.MustCompile(`(?i)(<script|</script|javascript:|vbscript:|onload=|onerror=)`),
}

// ValidateSearchQuery validates a free-text search query and returns it trimmed
func ValidateSearchQuery(query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", nil
	}

	if utf8.RuneCountInString(query) > MaxSearchQueryLength {
		return "", ErrSearchQueryTooLong
	}

	for _, pattern := range dangerousPatterns {
		if pattern.MatchString(query) {
			return "", ErrSearchQueryInvalid
		}
	}

	for _, char := range query {
		if !isValidSearchChar(char) {
			return "", ErrSearchQueryInvalid
		}
	}

	return query, nil
}

// isValidSearchChar checks if a character is safe for search queries
func isValidSearchChar(char rune) bool {
	return unicode.IsLetter(char) || unicode.IsNumber(char) ||
		char == ' ' || char == '-' || char == '_' || char == '.' ||
		char == '@' || char == '+' || char == ',' || char == '\''
}

// EscapeLike escapes LIKE wildcards so the query matches literally.
// Callers must use ESCAPE '\' in the LIKE clause.
func EscapeLike(query string) string {
	if query == "" {
		return ""
	}

	query = strings.ReplaceAll(query, `\`, `\\`)
	query = strings.ReplaceAll(query, "%", `\%`)
	query = strings.ReplaceAll(query, "_", `\_`)

	return query
}
