package lexer

import (
	"fmt"
	"strings"

	"ezlatexdoc/internal/source"
)

// maxRemainder caps how much unconsumed input an Error keeps.
const maxRemainder = 40

// Error reports input the grammar could not consume. It owns a copy of the
// offending fragment, so it stays valid after the document is released.
type Error struct {
	Path      string
	Span      source.Span
	Pos       source.LineCol
	Msg       string
	Remainder string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s (unconsumed input %q)", e.Path, e.Pos.Line, e.Pos.Col, e.Msg, e.Remainder)
}

// remainderAt copies the rest of the physical line starting at off.
func remainderAt(text string, off uint32) string {
	rest := text[off:]
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[:i]
	}
	if len(rest) > maxRemainder {
		rest = rest[:maxRemainder]
	}
	return strings.Clone(rest)
}
