package enhance

import (
	"regexp"
	"strings"
)

var (
	// boilerplatePattern matches the fixed set of boilerplate tokens
	// stripped from page and snippet text.
	boilerplatePattern = regexp.MustCompile(`(?i)(LOGIN|Subscribe|e-?Paper|Account|Image \d+:)`)
	whitespacePattern  = regexp.MustCompile(`\s+`)
)

// Normalize removes boilerplate tokens, collapses consecutive whitespace
// to a single space and trims the result. Idempotent.
func Normalize(text string) string {
	text = boilerplatePattern.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
