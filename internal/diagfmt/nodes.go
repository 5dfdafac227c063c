package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"ezlatexdoc/internal/parser"
	"ezlatexdoc/internal/source"
)

type NodeOutput struct {
	Kind      string      `json:"kind"`
	Text      string      `json:"text,omitempty"`
	SrcOutput *string     `json:"src_output,omitempty"`
	DocOutput *string     `json:"doc_output,omitempty"`
	Span      source.Span `json:"span"`
	Line      uint32      `json:"line"`
}

// FormatNodesPretty prints one node per line, directives with their bindings.
func FormatNodesPretty(w io.Writer, nodes []parser.Node, fs *source.FileSet) error {
	for i, n := range nodes {
		pos, _ := fs.Resolve(n.Span)
		var body string
		switch n.Kind {
		case parser.NodeDirectives:
			body = n.Directives.String()
		case parser.NodeComment:
			body = "-"
		default:
			body = fmt.Sprintf("%q", n.Text)
		}
		if _, err := fmt.Fprintf(w, "%3d: %-16s %s at %d:%d\n", i+1, n.Kind, body, pos.Line, pos.Col); err != nil {
			return err
		}
	}
	return nil
}

func FormatNodesJSON(w io.Writer, nodes []parser.Node, fs *source.FileSet) error {
	output := make([]NodeOutput, 0, len(nodes))
	for _, n := range nodes {
		pos, _ := fs.Resolve(n.Span)
		output = append(output, NodeOutput{
			Kind:      n.Kind.String(),
			Text:      n.Text,
			SrcOutput: n.Directives.SrcOutput,
			DocOutput: n.Directives.DocOutput,
			Span:      n.Span,
			Line:      pos.Line,
		})
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
