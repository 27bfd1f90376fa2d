package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"lark/internal/source"
)

// PrettyOpts controls Pretty's rendering.
type PrettyOpts struct {
	// Color enables ANSI coloring of severities, codes, and underlines.
	Color bool
	// Context is how many source lines of context to show around the
	// primary span's line (0 means just that line).
	Context int
}

// Pretty writes one human-readable block per diagnostic in bag: a
// "name:line:col: SEVERITY CODE: label" header, a slice of surrounding
// source with a gutter, and a "^~~~" underline beneath the primary
// span's line. Call bag.Sort() first for a stable reading order.
//
// Unlike the teacher's diagfmt.Pretty, underline columns are computed
// directly from byte offsets rather than a Unicode-display-width table,
// so on a line holding multi-byte characters (the lexer accepts Unicode
// letters in identifiers) the underline can sit right of the span.
func Pretty(w io.Writer, bag *Bag, m *source.Map, opts PrettyOpts) {
	errColor := color.New(color.FgRed, color.Bold)
	warnColor := color.New(color.FgYellow, color.Bold)
	infoColor := color.New(color.FgCyan, color.Bold)
	nameColor := color.New(color.FgWhite, color.Bold)
	codeColor := color.New(color.FgMagenta)
	lineNumColor := color.New(color.FgBlue)
	underlineColor := color.New(color.FgRed, color.Bold)

	prev := color.NoColor
	defer func() { color.NoColor = prev }()
	color.NoColor = !opts.Color

	context := opts.Context
	if context < 0 {
		context = 0
	}

	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}

		start, end := m.Resolve(d.Primary)
		file := m.Get(d.Primary.File)

		sevText := severityLabel(d.Severity)
		var sevColored string
		switch d.Severity {
		case SevError:
			sevColored = errColor.Sprint(sevText)
		case SevWarning:
			sevColored = warnColor.Sprint(sevText)
		default:
			sevColored = infoColor.Sprint(sevText)
		}

		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			nameColor.Sprint(file.Name), start.Line, start.Col,
			sevColored, codeColor.Sprint(d.Code.ID()), d.Label)

		total := m.LineCount(d.Primary.File)
		firstLine := start.Line
		if uint32(context) < firstLine {
			firstLine -= uint32(context)
		} else {
			firstLine = 1
		}
		lastLine := start.Line + uint32(context)
		if lastLine > total {
			lastLine = total
		}

		width := len(fmt.Sprintf("%d", lastLine))
		if width < 3 {
			width = 3
		}

		for line := firstLine; line <= lastLine; line++ {
			text := m.Line(d.Primary.File, line)
			gutter := lineNumColor.Sprintf("%*d |", width, line)
			fmt.Fprintf(w, "%s %s\n", gutter, text)
			if line != start.Line {
				continue
			}
			endCol := end.Col
			if end.Line > start.Line {
				endCol = uint32(len(text)) + 1
			}
			var u strings.Builder
			for range width + 2 {
				u.WriteByte(' ')
			}
			for i := uint32(1); i < start.Col; i++ {
				u.WriteByte(' ')
			}
			span := endCol - start.Col
			if span < 1 {
				span = 1
			}
			u.WriteByte('^')
			for i := uint32(1); i < span; i++ {
				u.WriteByte('~')
			}
			fmt.Fprintln(w, underlineColor.Sprint(u.String()))
		}

		for _, note := range d.Notes {
			nstart, _ := m.Resolve(note.Span)
			nfile := m.Get(note.Span.File)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", infoColor.Sprint("note:"), nfile.Name, nstart.Line, nstart.Col, note.Msg)
		}
	}
}
