// Package parser maps lexer chunks to semantic nodes, one node per chunk,
// decoding directive blocks on the way.
package parser

import (
	"fmt"

	"ezlatexdoc/internal/diag"
	"ezlatexdoc/internal/directive"
	"ezlatexdoc/internal/token"
)

type Options struct {
	Reporter diag.Reporter // может быть nil
}

// FromChunk builds the node for a single chunk.
func FromChunk(c token.Chunk) (Node, error) {
	n := Node{Span: c.Span}
	switch {
	case c.Kind == token.Source:
		n.Kind = NodeSource
		n.Text = c.Text
	case c.Comment == token.Documentation:
		n.Kind = NodeDocumentation
		n.Text = c.Text
	case c.Comment == token.Preserved:
		n.Kind = NodePreservedComment
		n.Text = c.Text
	case c.Comment == token.Eol:
		n.Kind = NodeComment
	case c.Comment == token.Directive:
		d, err := directive.Decode(c.Text, c.Span)
		if err != nil {
			return Node{}, err
		}
		n.Kind = NodeDirectives
		n.Directives = d
	default:
		return Node{}, fmt.Errorf("parser: unexpected chunk %v", c)
	}
	return n, nil
}

// Walk hands nodes to fn in chunk order. It stops at the first chunk that
// fails to build or the first error returned by fn; nodes for earlier chunks
// have already been delivered by then.
func Walk(chunks []token.Chunk, opts Options, fn func(Node) error) error {
	for _, c := range chunks {
		n, err := FromChunk(c)
		if err != nil {
			reportBuildError(opts.Reporter, err)
			return err
		}
		if err := fn(n); err != nil {
			return err
		}
	}
	return nil
}

// Build converts every chunk up front. On error no nodes are returned.
func Build(chunks []token.Chunk, opts Options) ([]Node, error) {
	nodes := make([]Node, 0, len(chunks))
	err := Walk(chunks, opts, func(n Node) error {
		nodes = append(nodes, n)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return nodes, nil
}
