package security

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	htmlPolicy      = bluemonday.StrictPolicy()
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

const maxNameLength = 60

// SanitizeName cleans a player or village name coming from the world import:
// strips all HTML, drops null bytes, collapses whitespace, and caps the
// length.
func SanitizeName(input string) string {
	input = htmlPolicy.Sanitize(input)
	input = strings.ReplaceAll(input, "\x00", "")
	input = whitespaceRegex.ReplaceAllString(input, " ")
	input = strings.TrimSpace(input)

	if len(input) > maxNameLength {
		input = input[:maxNameLength]
	}
	return input
}

// ValidateName reports whether a sanitized name is usable.
func ValidateName(name string) bool {
	return len(name) >= 2 && len(name) <= maxNameLength
}
