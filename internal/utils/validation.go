package utils

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

// Compiled regular expressions for validation
var (
	// Detect HTML/script tags
	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

	// Detect potentially dangerous characters - more focused on injection patterns
	dangerousPattern = regexp.MustCompile(`[<>]|--|\/\*|\*\/|;.*--`)
)

const (
	maxYearLength  = 32
	maxCauseLength = 200
)

// ValidateYear checks the year selector value. Empty is allowed and means
// "use the default year".
func ValidateYear(year string) error {
	if len(year) > maxYearLength {
		return errors.New("year too long (max 32 characters)")
	}
	if hasControlCharacters(year) {
		return errors.New("year contains invalid characters")
	}
	return nil
}

// ValidateCause checks the cause selector value. Empty is allowed and means
// all causes.
func ValidateCause(cause string) error {
	if len(cause) > maxCauseLength {
		return errors.New("cause too long (max 200 characters)")
	}
	if hasControlCharacters(cause) || strings.ContainsAny(cause, "<>") {
		return errors.New("cause contains invalid characters")
	}
	return nil
}

// ValidateCauseGroup validates the cause prefix used by the stored-data query.
func ValidateCauseGroup(group string) error {
	if group == "" {
		return nil
	}
	if len(group) > maxCauseLength {
		return errors.New("cause_group too long (max 200 characters)")
	}
	if dangerousPattern.MatchString(group) {
		return errors.New("cause_group contains invalid characters")
	}
	return nil
}

// SanitizeInput removes HTML tags and surrounding whitespace.
func SanitizeInput(input string) string {
	sanitized := htmlTagPattern.ReplaceAllString(input, "")
	return strings.TrimSpace(sanitized)
}

func hasControlCharacters(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) {
			return true
		}
	}
	return false
}
