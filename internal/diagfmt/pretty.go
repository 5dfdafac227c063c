package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"ezlatexdoc/internal/diag"
	"ezlatexdoc/internal/source"
)

type palette struct {
	err, warn, info, code, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
//
//	<path>:<line>:<col>: <sev> <CODE>: <Message>
//
// затем строку контекста с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		sev := d.Severity.String()
		header := fmt.Sprintf("%s %s", p.severity(d.Severity).Sprint(sev), p.code.Sprint(d.Code.ID()))
		f := fileOf(fs, d.Primary)
		if f == nil {
			fmt.Fprintf(w, "%s: %s\n", header, d.Message)
		} else {
			pos := f.LineCol(d.Primary.Start)
			fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", formatPath(f, fs, opts.PathMode), pos.Line, pos.Col, header, d.Message)
			writeContext(w, f, d.Primary, p)
		}
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			nf := fileOf(fs, n.Span)
			if nf == nil {
				fmt.Fprintf(w, "  %s: %s\n", p.note.Sprint("note"), n.Msg)
				continue
			}
			pos := nf.LineCol(n.Span.Start)
			fmt.Fprintf(w, "  %s: %s:%d:%d: %s\n", p.note.Sprint("note"), formatPath(nf, fs, opts.PathMode), pos.Line, pos.Col, n.Msg)
		}
	}
}

// writeContext prints the first line of sp and underlines the part of it
// covered by sp. Carets are aligned by display width.
func writeContext(w io.Writer, f *source.File, sp source.Span, p palette) {
	pos := f.LineCol(sp.Start)
	line := f.GetLine(pos.Line)
	col := int(pos.Col) - 1
	if col > len(line) {
		col = len(line)
	}
	end := col + int(sp.Len())
	if end > len(line) || sp.Len() == 0 {
		end = len(line)
	}

	num := fmt.Sprintf("%d", pos.Line)
	pad := strings.Repeat(" ", len(num))
	fmt.Fprintf(w, " %s %s %s\n", p.gutter.Sprint(num), p.gutter.Sprint("|"), line)

	var indent strings.Builder
	for _, r := range line[:col] {
		if r == '\t' {
			indent.WriteByte('\t')
			continue
		}
		indent.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	width := max(runewidth.StringWidth(line[col:end]), 1)
	marks := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, " %s %s %s%s\n", pad, p.gutter.Sprint("|"), indent.String(), p.caret.Sprint(marks))
}
