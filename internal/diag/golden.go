package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"ezlatexdoc/internal/source"
)

// goldenLine is one rendered entry: "<sev> <CODE> <path>:<line>:<col> <msg>".
type goldenLine struct {
	sev, code, path, msg string
	at                   source.LineCol
}

func (l goldenLine) String() string {
	return fmt.Sprintf("%s %s %s:%d:%d %s", l.sev, l.code, l.path, l.at.Line, l.at.Col, l.msg)
}

func compareGolden(a, b goldenLine) int {
	return cmp.Or(
		cmp.Compare(a.path, b.path),
		cmp.Compare(a.at.Line, b.at.Line),
		cmp.Compare(a.at.Col, b.at.Col),
		cmp.Compare(a.sev, b.sev),
		cmp.Compare(a.code, b.code),
		cmp.Compare(a.msg, b.msg),
	)
}

// FormatGoldenDiagnostics renders one line per located diagnostic (and per
// note when includeNotes is set), sorted by position. Spans outside fs,
// such as source.NoFile, are skipped.
func FormatGoldenDiagnostics(diags []*Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil {
		return ""
	}
	var lines []goldenLine
	add := func(sev string, code Code, sp source.Span, msg string) {
		if int(sp.File) >= fs.Len() {
			return
		}
		start, _ := fs.Resolve(sp)
		lines = append(lines, goldenLine{
			sev:  sev,
			code: code.ID(),
			path: goldenPath(fs, sp.File),
			msg:  flattenMessage(msg),
			at:   start,
		})
	}
	for _, d := range diags {
		add(d.Severity.String(), d.Code, d.Primary, d.Message)
		if includeNotes {
			for _, n := range d.Notes {
				add("note", d.Code, n.Span, n.Msg)
			}
		}
	}
	slices.SortStableFunc(lines, compareGolden)

	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return strings.Join(out, "\n")
}

func goldenPath(fs *source.FileSet, id source.FileID) string {
	p := filepath.ToSlash(fs.Get(id).FormatPath("relative", fs.BaseDir()))
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return p
}

// flattenMessage folds any line breaks into spaces.
func flattenMessage(msg string) string {
	return strings.TrimSpace(strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(msg))
}
