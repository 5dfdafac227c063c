package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"ezlatexdoc/internal/parser"
	"ezlatexdoc/internal/source"
	"ezlatexdoc/internal/token"
)

// CheckChunkSpans runs the span invariants of a successful lex:
// 1) every chunk span is non-empty and points into sf
// 2) chunks are contiguous: each starts where the previous one ended
// 3) together they cover the whole content of sf
func CheckChunkSpans(chunks []token.Chunk, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var next uint32
	for i, c := range chunks {
		sp := c.Span
		if sp.File != sf.ID {
			return fmt.Errorf("chunk %d span file mismatch: got=%d want=%d", i, sp.File, sf.ID)
		}
		if sp.Empty() {
			return fmt.Errorf("chunk %d has an empty span: %v", i, sp)
		}
		if sp.Start != next {
			return fmt.Errorf("chunk %d starts at %d, previous chunk ended at %d", i, sp.Start, next)
		}
		if sp.End > lenContent {
			return fmt.Errorf("chunk %d span end beyond content: %d > %d", i, sp.End, lenContent)
		}
		next = sp.End
	}
	if next != lenContent {
		return fmt.Errorf("chunks cover %d of %d bytes", next, lenContent)
	}
	return nil
}

// CheckNodeSpans verifies that nodes map one to one onto chunks and keep
// their spans.
func CheckNodeSpans(nodes []parser.Node, chunks []token.Chunk) error {
	if len(nodes) != len(chunks) {
		return fmt.Errorf("%d nodes for %d chunks", len(nodes), len(chunks))
	}
	for i, n := range nodes {
		if n.Span != chunks[i].Span {
			return fmt.Errorf("node %d span %v differs from chunk span %v", i, n.Span, chunks[i].Span)
		}
		// текст несут только узлы, которые куда-то пишутся
		if (n.Kind == parser.NodeDirectives || n.Kind == parser.NodeComment) && n.Text != "" {
			return fmt.Errorf("%s node %d carries text %q", n.Kind, i, n.Text)
		}
	}
	return nil
}
