package security

import (
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

var htmlPolicy = bluemonday.StrictPolicy()

// textEntities decodes the escapes the policy applies to characters that
// cannot open a tag. &lt; and &gt; stay encoded.
var textEntities = strings.NewReplacer("&amp;", "&", "&#39;", "'", "&#34;", `"`)

// SanitizeString trims whitespace, drops null bytes and caps the rune count
func SanitizeString(input string, maxLen int) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")

	if maxLen > 0 && utf8.RuneCountInString(input) > maxLen {
		input = string([]rune(input)[:maxLen])
	}

	return input
}

// SanitizeHTML removes all HTML tags
func SanitizeHTML(input string) string {
	return htmlPolicy.Sanitize(input)
}

// SanitizeText strips markup from user text and normalizes it. Angle brackets
// that survive as text are returned entity-encoded.
func SanitizeText(input string, maxLen int) string {
	stripped := textEntities.Replace(SanitizeHTML(input))
	return SanitizeString(stripped, maxLen)
}
