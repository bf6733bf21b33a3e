// Package console is the presentation surface: bordered panels for commands,
// results, and errors, rendered to a terminal or any writer.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// defaultWidth is used when the output is not a terminal.
const defaultWidth = 80

// Printer renders panels and plain lines to a single output stream.
type Printer struct {
	out        io.Writer
	width      int
	styles     Styles
	mdRenderer *glamour.TermRenderer
}

// Options configures a Printer.
type Options struct {
	// Width forces a render width; 0 means detect from the terminal.
	Width int
	// NoColor disables all styling.
	NoColor bool
	// NoMarkdown disables markdown rendering of panel bodies.
	NoMarkdown bool
}

// New creates a Printer writing to out.
func New(out io.Writer, opts Options) *Printer {
	width := opts.Width
	if width <= 0 {
		width = defaultWidth
		if f, ok := out.(*os.File); ok {
			if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
				width = tw
			}
		}
	}

	styles := DefaultStyles()
	if opts.NoColor {
		styles = NoColorStyles()
	}

	p := &Printer{out: out, width: width, styles: styles}
	if !opts.NoMarkdown {
		md, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width-4),
		)
		if err == nil {
			p.mdRenderer = md
		}
	}
	return p
}

// PanelOpts annotates a panel with a title, footer, and border style.
type PanelOpts struct {
	Title  string
	Footer string
	// Border selects the border style: "command", "error", or "" for neutral.
	Border string
	// Markdown renders the body as markdown when the printer supports it.
	Markdown bool
}

// Panel prints body inside a bordered box. No return value; the surface is
// fire-and-forget from the caller's perspective.
func (p *Printer) Panel(body string, opts PanelOpts) {
	content := strings.TrimRight(body, "\n")
	if opts.Markdown && p.mdRenderer != nil {
		if rendered, err := p.mdRenderer.Render(content); err == nil {
			content = strings.TrimRight(rendered, "\n")
		}
	}

	border := p.styles.PanelBorder
	switch opts.Border {
	case "command":
		border = p.styles.CommandBorder
	case "error":
		border = p.styles.ErrorBorder
	}

	if opts.Title != "" {
		_, _ = fmt.Fprintln(p.out, p.styles.PanelTitle.Render(opts.Title))
	}
	_, _ = fmt.Fprintln(p.out, border.Width(p.width-2).Render(content))
	if opts.Footer != "" {
		_, _ = fmt.Fprintln(p.out, p.styles.PanelFooter.Render(opts.Footer))
	}
}

// Println writes a plain line outside any panel.
func (p *Printer) Println(a ...interface{}) {
	_, _ = fmt.Fprintln(p.out, a...)
}
