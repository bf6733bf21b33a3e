package output

import (
	"strings"
	"unicode/utf8"
)

// Marker is appended to text that was cut short by Truncate.
const Marker = "... [truncated]"

// DefaultMaxLength bounds the primary command output returned to callers.
// Output processing downstream is expensive; unbounded text is never returned.
const DefaultMaxLength = 5000

// LogPreviewMaxLength bounds the short command preview recorded in the work log.
const LogPreviewMaxLength = 300

// Truncate returns text unchanged when it fits in maxLength bytes, otherwise
// the longest prefix of at most maxLength bytes ending on a rune boundary,
// followed by Marker. Valid UTF-8 in stays valid UTF-8 out. Pure function.
func Truncate(text string, maxLength int) string {
	if len(text) <= maxLength {
		return text
	}
	cut := maxLength
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + Marker
}

// TruncateDefault truncates text to DefaultMaxLength.
func TruncateDefault(text string) string {
	return Truncate(text, DefaultMaxLength)
}

// LogPreview truncates text to LogPreviewMaxLength for work-log entries.
func LogPreview(text string) string {
	return Truncate(text, LogPreviewMaxLength)
}

// Decode converts raw command output to a string, replacing invalid UTF-8
// sequences rather than failing. Capture is byte-oriented and a kill can land
// mid-rune, so invalid sequences are expected, not exceptional.
func Decode(raw []byte) string {
	return strings.ToValidUTF8(string(raw), "�")
}
