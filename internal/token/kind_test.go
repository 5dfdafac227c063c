package token_test

import (
	"strings"
	"testing"

	"ezlatexdoc/internal/source"
	"ezlatexdoc/internal/token"
)

func TestTagPrecedenceOrder(t *testing.T) {
	for i := 1; i < len(token.SOLTags); i++ {
		prev, cur := token.SOLTags[i-1], token.SOLTags[i]
		if prev <= cur {
			t.Fatalf("%v must outrank %v", prev, cur)
		}
		// a longer tag has to be tried before any tag it extends
		if strings.HasPrefix(cur.Tag(), prev.Tag()) {
			t.Fatalf("%v tag %q is shadowed by %v tag %q", cur, cur.Tag(), prev, prev.Tag())
		}
	}
}

func TestInlineTagsAreNotSOLOnly(t *testing.T) {
	for _, k := range token.InlineTags {
		if k.SOLOnly() {
			t.Fatalf("%v listed as inline but SOL-only", k)
		}
	}
	if !token.Directive.SOLOnly() || !token.Documentation.SOLOnly() {
		t.Fatalf("directive and documentation tags are start-of-line only")
	}
}

func TestChunkConstructors(t *testing.T) {
	sp := source.Span{Start: 1, End: 4}
	src := token.NewSource(sp, "abc")
	if src.Kind != token.Source || src.Comment != token.NoComment {
		t.Fatalf("unexpected source chunk %+v", src)
	}
	c := token.NewComment(token.Preserved, sp, "keep")
	if !c.IsComment(token.Preserved) || c.IsComment(token.Eol) {
		t.Fatalf("unexpected comment chunk %+v", c)
	}
	if got := c.String(); got != `Comment(Preserved, "keep")` {
		t.Fatalf("String() = %s", got)
	}
}
