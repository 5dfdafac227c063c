package parser

import (
	"fmt"

	"ezlatexdoc/internal/directive"
	"ezlatexdoc/internal/source"
)

type NodeKind uint8

const (
	NodeSource NodeKind = iota
	NodeDocumentation
	NodePreservedComment
	NodeComment // выброшенный %-комментарий, текст не сохраняется
	NodeDirectives
)

func (k NodeKind) String() string {
	switch k {
	case NodeSource:
		return "Source"
	case NodeDocumentation:
		return "Documentation"
	case NodePreservedComment:
		return "PreservedComment"
	case NodeComment:
		return "Comment"
	case NodeDirectives:
		return "Directives"
	default:
		return fmt.Sprintf("NodeKind(%d)", uint8(k))
	}
}

// Node is the semantic view of one chunk.
type Node struct {
	Kind       NodeKind
	Text       string               // пусто для NodeComment и NodeDirectives
	Directives directive.Directives // только для NodeDirectives
	Span       source.Span
}

func (n Node) String() string {
	switch n.Kind {
	case NodeComment:
		return "Comment"
	case NodeDirectives:
		return "Directives" + n.Directives.String()
	default:
		return fmt.Sprintf("%s(%q)", n.Kind, n.Text)
	}
}
