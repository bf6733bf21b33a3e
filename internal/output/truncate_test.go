package output

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateShortTextUnchanged(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 10))
	assert.Equal(t, "hello", Truncate("hello", 5))
	assert.Equal(t, "", Truncate("", 10))
}

func TestTruncateLongTextGetsMarker(t *testing.T) {
	text := strings.Repeat("x", 100)
	result := Truncate(text, 40)

	assert.Equal(t, 40+len(Marker), len(result))
	assert.True(t, strings.HasPrefix(result, text[:40]))
	assert.True(t, strings.HasSuffix(result, Marker))
}

func TestTruncateBacksUpToRuneBoundary(t *testing.T) {
	text := strings.Repeat("日", 10) // 3 bytes per rune
	result := Truncate(text, 10)    // byte 10 is mid-rune

	assert.True(t, utf8.ValidString(result))
	assert.Equal(t, strings.Repeat("日", 3)+Marker, result)
}

func TestTruncateIsIdempotentForSameInput(t *testing.T) {
	text := strings.Repeat("y", 500)
	first := Truncate(text, 100)
	second := Truncate(text, 100)
	assert.Equal(t, first, second)
}

// Re-truncating already-truncated output only stays stable when the marker is
// shorter than what was trimmed; verify rather than assume.
func TestTruncateOfTruncatedOutput(t *testing.T) {
	text := strings.Repeat("z", 1000)
	once := Truncate(text, 100)
	twice := Truncate(once, 100+len(Marker))
	assert.Equal(t, once, twice)
}

func TestLogPreview(t *testing.T) {
	short := "echo hello"
	assert.Equal(t, short, LogPreview(short))

	long := strings.Repeat("a", LogPreviewMaxLength+50)
	preview := LogPreview(long)
	assert.Equal(t, LogPreviewMaxLength+len(Marker), len(preview))
	assert.True(t, strings.HasSuffix(preview, Marker))
}

func TestDecodeReplacesInvalidUTF8(t *testing.T) {
	raw := []byte{'o', 'k', 0xff, 0xfe, '!'}
	decoded := Decode(raw)
	assert.True(t, strings.HasPrefix(decoded, "ok"))
	assert.True(t, strings.HasSuffix(decoded, "!"))
	assert.Contains(t, decoded, "�")
}

func TestDecodePassesValidUTF8(t *testing.T) {
	assert.Equal(t, "hello\n", Decode([]byte("hello\n")))
}
