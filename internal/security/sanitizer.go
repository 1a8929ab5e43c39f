package security

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var htmlPolicy = bluemonday.StrictPolicy()

// SanitizeHandle cleans a user-supplied display handle: strips HTML, null
// bytes and surrounding whitespace, and caps the length.
func SanitizeHandle(input string) string {
	input = htmlPolicy.Sanitize(input)
	input = strings.ReplaceAll(input, "\x00", "")
	input = strings.TrimSpace(input)

	if len(input) > 64 {
		input = input[:64]
	}
	return input
}

// SanitizeGenderTag cleans a free-form gender tag the same way, with a
// shorter cap, and lowercases it so preference comparison is stable.
func SanitizeGenderTag(input string) string {
	input = htmlPolicy.Sanitize(input)
	input = strings.TrimSpace(strings.ToLower(input))

	if len(input) > 32 {
		input = input[:32]
	}
	return input
}

// ValidateAge checks if age is within valid range
func ValidateAge(age int) bool {
	return age >= 13 && age <= 100
}
