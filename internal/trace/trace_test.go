package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelScopes(t *testing.T) {
	tests := []struct {
		level  Level
		scope  Scope
		emit   bool
		record bool
	}{
		{LevelOff, ScopeDriver, false, false},
		{LevelError, ScopeDriver, false, true},
		{LevelError, ScopeNode, false, false},
		{LevelPhase, ScopePass, true, true},
		{LevelPhase, ScopeDocument, false, false},
		{LevelDetail, ScopeDocument, true, true},
		{LevelDetail, ScopeNode, false, false},
		{LevelDebug, ScopeNode, true, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.emit {
			t.Errorf("%s.ShouldEmit(%s) = %v", tt.level, tt.scope, got)
		}
		if got := tt.level.Captures(tt.scope); got != tt.record {
			t.Errorf("%s.Captures(%s) = %v", tt.level, tt.scope, got)
		}
	}
}

func TestParseFlags(t *testing.T) {
	if l, err := ParseLevel("DETAIL"); err != nil || l != LevelDetail {
		t.Fatalf("ParseLevel = %v, %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if m, err := ParseMode("both"); err != nil || m != ModeBoth {
		t.Fatalf("ParseMode = %v, %v", m, err)
	}
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Fatalf("ParseFormat = %v, %v", f, err)
	}
	if got := (Config{OutputPath: "run.ndjson"}).ResolveFormat(); got != FormatNDJSON {
		t.Fatalf("ResolveFormat = %v", got)
	}
	if got := (Config{OutputPath: "run.log"}).ResolveFormat(); got != FormatText {
		t.Fatalf("ResolveFormat = %v", got)
	}
}

func TestStreamTracerWritesSpans(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)

	root := Begin(tr, ScopeDriver, "strip", 0)
	pass := Begin(tr, ScopePass, "lex", root.ID())
	Point(tr, ScopeNode, "bind", "src_output=a.tex", pass.ID())
	pass.WithExtra("chunks", "3").End("")
	root.End("ok")

	out := buf.String()
	for _, want := range []string{"→ strip", "→ lex", "• bind (src_output=a.tex)", "← lex {chunks=3}", "← strip (ok)"} {
		if !strings.Contains(out, want) {
			t.Errorf("trace output missing %q:\n%s", want, out)
		}
	}
	if n := strings.Count(out, "\n"); n != 5 {
		t.Errorf("expected 5 lines, got %d:\n%s", n, out)
	}
}

func TestStreamTracerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)
	Begin(tr, ScopeDocument, "document:a.dtx", 0).End("")
	Point(tr, ScopeNode, "bind", "", 0)
	if buf.Len() != 0 {
		t.Fatalf("expected nothing at phase level, got %q", buf.String())
	}
}

func TestNDJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	Begin(tr, ScopePass, "build", 0).End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", buf.String())
	}
	var ev map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if ev["kind"] != "end" || ev["scope"] != "pass" || ev["name"] != "build" {
		t.Fatalf("unexpected event %v", ev)
	}
}

func TestRingTracerKeepsLastEvents(t *testing.T) {
	ring := NewRingTracer(2, LevelError)
	for _, name := range []string{"a", "b", "c"} {
		Begin(ring, ScopeDocument, name, 0)
	}
	snap := ring.Snapshot()
	if len(snap) != 2 || snap[0].Name != "b" || snap[1].Name != "c" {
		t.Fatalf("snapshot = %v", snap)
	}

	var buf bytes.Buffer
	if err := ring.Dump(&buf); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if strings.Contains(buf.String(), "→ a") || !strings.Contains(buf.String(), "→ c") {
		t.Fatalf("dump = %q", buf.String())
	}
}

func TestNewAndRingOf(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf, RingSize: 8})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	Begin(tr, ScopeDriver, "strip", 0).End("")
	ring := RingOf(tr)
	if ring == nil {
		t.Fatal("expected a ring in both mode")
	}
	if len(ring.Snapshot()) != 2 || buf.Len() == 0 {
		t.Fatalf("ring=%d stream=%q", len(ring.Snapshot()), buf.String())
	}

	off, err := New(Config{Level: LevelOff})
	if err != nil || off.Enabled() || RingOf(off) != nil {
		t.Fatalf("off tracer: %v %v", off, err)
	}
}

func TestContextPropagation(t *testing.T) {
	ctx := context.Background()
	if FromContext(ctx) != Nop {
		t.Fatal("expected Nop without tracer")
	}
	ring := NewRingTracer(4, LevelDebug)
	ctx = WithTracer(ctx, ring)
	if FromContext(ctx) != ring {
		t.Fatal("tracer not propagated")
	}
	span := Begin(ring, ScopeDriver, "strip", 0)
	ctx = WithParent(ctx, span)
	if ParentID(ctx) != span.ID() || span.ID() == 0 {
		t.Fatalf("ParentID = %d, span = %d", ParentID(ctx), span.ID())
	}
}
