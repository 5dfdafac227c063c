package parser_test

import (
	"errors"
	"testing"

	"ezlatexdoc/internal/diag"
	"ezlatexdoc/internal/directive"
	"ezlatexdoc/internal/parser"
	"ezlatexdoc/internal/source"
	"ezlatexdoc/internal/token"
)

func span(start, end uint32) source.Span {
	return source.Span{Start: start, End: end}
}

func TestFromChunk(t *testing.T) {
	tests := []struct {
		chunk token.Chunk
		kind  parser.NodeKind
		text  string
	}{
		{token.NewSource(span(0, 3), "ab\n"), parser.NodeSource, "ab\n"},
		{token.NewComment(token.Documentation, span(0, 5), "doc\n"), parser.NodeDocumentation, "doc\n"},
		{token.NewComment(token.Preserved, span(0, 5), "keep\n"), parser.NodePreservedComment, "keep\n"},
		{token.NewComment(token.Eol, span(0, 5), "gone\n"), parser.NodeComment, ""},
	}
	for _, tt := range tests {
		n, err := parser.FromChunk(tt.chunk)
		if err != nil {
			t.Fatalf("FromChunk(%v): %v", tt.chunk, err)
		}
		if n.Kind != tt.kind || n.Text != tt.text {
			t.Errorf("FromChunk(%v) = %v, want %s(%q)", tt.chunk, n, tt.kind, tt.text)
		}
		if n.Span != tt.chunk.Span {
			t.Errorf("FromChunk(%v): span %v, want %v", tt.chunk, n.Span, tt.chunk.Span)
		}
	}
}

func TestFromChunkDecodesDirectives(t *testing.T) {
	c := token.NewComment(token.Directive, span(0, 30), "src_output = \"out.tex\"\n")
	n, err := parser.FromChunk(c)
	if err != nil {
		t.Fatalf("FromChunk: %v", err)
	}
	if n.Kind != parser.NodeDirectives {
		t.Fatalf("kind = %s", n.Kind)
	}
	if n.Directives.SrcOutput == nil || *n.Directives.SrcOutput != "out.tex" || n.Directives.DocOutput != nil {
		t.Fatalf("directives = %v", n.Directives)
	}
	if got := n.String(); got != "Directives{src_output=out.tex}" {
		t.Fatalf("String() = %q", got)
	}
}

func TestBuildIsOneToOneAndOrdered(t *testing.T) {
	chunks := []token.Chunk{
		token.NewComment(token.Directive, span(0, 10), "doc_output = \"d\"\n"),
		token.NewSource(span(10, 12), "a\n"),
		token.NewComment(token.Documentation, span(12, 20), "text\n"),
		token.NewComment(token.Eol, span(20, 24), "x\n"),
	}
	nodes, err := parser.Build(chunks, parser.Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := []parser.NodeKind{parser.NodeDirectives, parser.NodeSource, parser.NodeDocumentation, parser.NodeComment}
	if len(nodes) != len(want) {
		t.Fatalf("expected %d nodes, got %d", len(want), len(nodes))
	}
	for i, k := range want {
		if nodes[i].Kind != k {
			t.Errorf("node %d: kind %s, want %s", i, nodes[i].Kind, k)
		}
		if nodes[i].Span != chunks[i].Span {
			t.Errorf("node %d: span %v, want %v", i, nodes[i].Span, chunks[i].Span)
		}
	}
}

func TestBuildFailsWithoutPartialResult(t *testing.T) {
	chunks := []token.Chunk{
		token.NewSource(span(0, 2), "a\n"),
		token.NewComment(token.Directive, span(2, 20), "bogus = \"x\"\n"),
		token.NewSource(span(20, 22), "b\n"),
	}
	bag := diag.NewBag(10)
	nodes, err := parser.Build(chunks, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if err == nil {
		t.Fatal("expected error")
	}
	if nodes != nil {
		t.Fatalf("expected no nodes, got %v", nodes)
	}
	if !errors.Is(err, directive.ErrUnknownKey) {
		t.Fatalf("expected ErrUnknownKey, got %v", err)
	}
	items := bag.Items()
	if len(items) != 1 || items[0].Code != diag.DirUnknownKey {
		t.Fatalf("expected one DIR2002 diagnostic, got %v", items)
	}
	if items[0].Primary != chunks[1].Span {
		t.Fatalf("diagnostic span %v, want %v", items[0].Primary, chunks[1].Span)
	}
	if len(items[0].Notes) != 1 {
		t.Fatalf("expected a note, got %v", items[0].Notes)
	}
}

func TestWalkDeliversNodesBeforeFailure(t *testing.T) {
	chunks := []token.Chunk{
		token.NewSource(span(0, 2), "a\n"),
		token.NewComment(token.Preserved, span(2, 8), "p\n"),
		token.NewComment(token.Directive, span(8, 20), "src_output = \n"),
		token.NewSource(span(20, 22), "b\n"),
	}
	var seen []parser.Node
	err := parser.Walk(chunks, parser.Options{}, func(n parser.Node) error {
		seen = append(seen, n)
		return nil
	})
	var derr *directive.Error
	if !errors.As(err, &derr) || derr.Code != diag.DirMalformed {
		t.Fatalf("expected malformed directive error, got %v", err)
	}
	if len(seen) != 2 {
		t.Fatalf("expected the 2 nodes before the directive, got %v", seen)
	}
}

func TestWalkStopsOnCallbackError(t *testing.T) {
	stop := errors.New("stop")
	chunks := []token.Chunk{
		token.NewSource(span(0, 2), "a\n"),
		token.NewSource(span(2, 4), "b\n"),
	}
	calls := 0
	err := parser.Walk(chunks, parser.Options{}, func(parser.Node) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) || calls != 1 {
		t.Fatalf("err = %v, calls = %d", err, calls)
	}
}
