package driver

import (
	"testing"

	"ezlatexdoc/internal/parser"
	"ezlatexdoc/internal/token"
)

func TestInspect(t *testing.T) {
	path := writeDoc(t, t.TempDir(), "i.dtx", scenario)

	lexed, err := Lex(path, false, 10)
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	if len(lexed.Chunks) == 0 || !lexed.Chunks[0].IsComment(token.Directive) {
		t.Fatalf("chunks = %v", lexed.Chunks)
	}
	if lexed.Nodes != nil {
		t.Fatal("Lex must not build nodes")
	}

	built, err := Nodes(path, false, 10)
	if err != nil {
		t.Fatalf("Nodes: %v", err)
	}
	nodes := built.Nodes
	if len(nodes) != len(built.Chunks) {
		t.Fatalf("%d nodes for %d chunks", len(nodes), len(built.Chunks))
	}
	if nodes[0].Kind != parser.NodeDirectives || nodes[len(nodes)-1].Kind != parser.NodeComment {
		t.Fatalf("nodes = %v", nodes)
	}
	if d := nodes[0].Directives; d.SrcOutput == nil || *d.SrcOutput != "out.tex" {
		t.Fatalf("directives = %v", d)
	}
}

func TestInspectLexError(t *testing.T) {
	path := writeDoc(t, t.TempDir(), "bad.dtx", "oops\\")
	res, err := Nodes(path, false, 10)
	if err == nil {
		t.Fatal("expected lex error")
	}
	if res.Bag.Len() != 1 || res.Nodes != nil {
		t.Fatalf("bag=%d nodes=%v", res.Bag.Len(), res.Nodes)
	}
}
