package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestPrinter(buf *bytes.Buffer) *Printer {
	return New(buf, Options{Width: 60, NoColor: true, NoMarkdown: true})
}

func TestPanelShowsTitleAndBody(t *testing.T) {
	var buf bytes.Buffer
	p := newTestPrinter(&buf)
	p.Panel("git status", PanelOpts{Title: "Shell", Border: "command"})

	out := buf.String()
	assert.Contains(t, out, "Shell")
	assert.Contains(t, out, "git status")
	// Bordered box, not bare text.
	assert.Contains(t, out, "│")
}

func TestPanelFooter(t *testing.T) {
	var buf bytes.Buffer
	p := newTestPrinter(&buf)
	p.Panel("body", PanelOpts{Footer: "exit 0"})
	assert.Contains(t, buf.String(), "exit 0")
}

func TestPanelTrimsTrailingNewlines(t *testing.T) {
	var buf bytes.Buffer
	p := newTestPrinter(&buf)
	p.Panel("hello\n\n\n", PanelOpts{})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	// Top border, content line, bottom border.
	assert.Len(t, lines, 3)
}

func TestUnattendedAck(t *testing.T) {
	var buf bytes.Buffer
	p := newTestPrinter(&buf)
	p.UnattendedAck()
	assert.Contains(t, buf.String(), "unattended mode")
}

func TestWidthDefaultsForNonTerminalWriter(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, Options{NoColor: true, NoMarkdown: true})
	assert.Equal(t, defaultWidth, p.width)
}
