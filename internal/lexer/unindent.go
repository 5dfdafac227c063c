package lexer

import (
	"github.com/lithammer/dedent"
)

// unindent removes the leading whitespace shared by every non-blank line and
// turns whitespace-only lines into empty ones. A synthetic empty first line is
// prepended and dropped afterwards so that the first line takes part in the
// margin computation exactly like the others.
func unindent(text string) string {
	if text == "" {
		return ""
	}
	return dedent.Dedent("\n" + text)[1:]
}
