package table

import (
	"regexp"
	"strings"
	"unicode"
)

// customFieldSuffix is the platform's custom-field marker on field
// identifiers, e.g. "EventType__c".
var customFieldSuffix = regexp.MustCompile(`(?i)__c$`)

// FormatLabel converts a raw field identifier into a human-readable column
// label: the custom-field suffix is stripped, underscores become spaces,
// camelCase boundaries become word breaks, and the first letter of each word
// is upper-cased. Letters past the first of each word keep their case, so the
// function is idempotent on its own output.
//
//	FormatLabel("EventType__c") == "Event Type"
//	FormatLabel("start_date")   == "Start Date"
func FormatLabel(field string) string {
	s := customFieldSuffix.ReplaceAllString(field, "")
	s = strings.ReplaceAll(s, "_", " ")
	s = breakCamelCase(s)

	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// breakCamelCase inserts a space before each upper-case letter that follows a
// lower-case letter or digit. Runs of capitals stay together, and already
// spaced text passes through unchanged.
func breakCamelCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	var prev rune
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}
