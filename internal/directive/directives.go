// Package directive decodes the machine-readable `%%%` comment blocks that
// bind output destinations.
//
// A directive block is a small TOML document with at most two keys:
//
//	src_output = "pkg.sty"
//	doc_output = "pkg.doc.tex"
//
// Either key may be absent, which leaves the current binding untouched.
package directive

import (
	"strings"
)

// Directives is the decoded body of one directive block.
type Directives struct {
	SrcOutput *string `toml:"src_output"`
	DocOutput *string `toml:"doc_output"`
}

// Empty reports whether the block binds nothing.
func (d Directives) Empty() bool {
	return d.SrcOutput == nil && d.DocOutput == nil
}

func (d Directives) String() string {
	var parts []string
	if d.SrcOutput != nil {
		parts = append(parts, "src_output="+*d.SrcOutput)
	}
	if d.DocOutput != nil {
		parts = append(parts, "doc_output="+*d.DocOutput)
	}
	if len(parts) == 0 {
		return "{}"
	}
	return "{" + strings.Join(parts, " ") + "}"
}
