package directive_test

import (
	"errors"
	"strings"
	"testing"

	"ezlatexdoc/internal/diag"
	"ezlatexdoc/internal/directive"
	"ezlatexdoc/internal/source"
)

func ptr(s string) *string { return &s }

func sameName(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		text string
		want directive.Directives
	}{
		{"both", "src_output = \"out.tex\"\ndoc_output = \"out.doc\"\n",
			directive.Directives{SrcOutput: ptr("out.tex"), DocOutput: ptr("out.doc")}},
		{"src only", `src_output = "a.tex"`, directive.Directives{SrcOutput: ptr("a.tex")}},
		{"doc only literal string", "doc_output = 'docs/b.tex'\n", directive.Directives{DocOutput: ptr("docs/b.tex")}},
		{"stdout", `src_output = "-"`, directive.Directives{SrcOutput: ptr("-")}},
		{"empty block", "", directive.Directives{}},
		{"only a toml comment", "# nothing to bind\n", directive.Directives{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := directive.Decode(tt.text, source.Span{})
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if !sameName(got.SrcOutput, tt.want.SrcOutput) || !sameName(got.DocOutput, tt.want.DocOutput) {
				t.Fatalf("Decode(%q) = %v, want %v", tt.text, got, tt.want)
			}
			if got.Empty() != tt.want.Empty() {
				t.Fatalf("Empty() = %v", got.Empty())
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	span := source.Span{File: 1, Start: 10, End: 40}
	tests := []struct {
		name    string
		text    string
		code    diag.Code
		key     string
		wrapped error
	}{
		{"malformed", "src_output = \n", diag.DirMalformed, "", nil},
		{"unterminated string", "src_output = \"a.tex\n", diag.DirMalformed, "", nil},
		{"wrong type", "src_output = 3\n", diag.DirMalformed, "", nil},
		{"unknown key", "src_output = \"a\"\nlog_output = \"b\"\n", diag.DirUnknownKey, "log_output", directive.ErrUnknownKey},
		{"unknown table", "[output]\nsrc = \"a\"\n", diag.DirUnknownKey, "output", directive.ErrUnknownKey},
		{"empty src", `src_output = ""`, diag.DirEmptyName, "src_output", directive.ErrEmptyName},
		{"empty doc", "src_output = \"a\"\ndoc_output = ''\n", diag.DirEmptyName, "doc_output", directive.ErrEmptyName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := directive.Decode(tt.text, span)
			if err == nil {
				t.Fatalf("expected error, got %v", got)
			}
			if !got.Empty() {
				t.Fatalf("failed decode must not return partial directives, got %v", got)
			}
			var derr *directive.Error
			if !errors.As(err, &derr) {
				t.Fatalf("expected *directive.Error, got %T", err)
			}
			if derr.Code != tt.code {
				t.Errorf("code = %s, want %s", derr.Code.ID(), tt.code.ID())
			}
			if derr.Key != tt.key {
				t.Errorf("key = %q, want %q", derr.Key, tt.key)
			}
			if derr.Span != span {
				t.Errorf("span = %v, want %v", derr.Span, span)
			}
			if tt.wrapped != nil && !errors.Is(err, tt.wrapped) {
				t.Errorf("expected error to wrap %v", tt.wrapped)
			}
		})
	}
}

func TestDecodeParseErrorCarriesLine(t *testing.T) {
	_, err := directive.Decode("src_output = \"a\"\n= \"b\"\n", source.Span{})
	var derr *directive.Error
	if !errors.As(err, &derr) {
		t.Fatalf("expected *directive.Error, got %v", err)
	}
	if derr.Line != 2 {
		t.Fatalf("line = %d, want 2", derr.Line)
	}
	if !strings.Contains(err.Error(), "directives parse error (line 2)") {
		t.Fatalf("unexpected message: %s", err)
	}
}

func TestDirectivesString(t *testing.T) {
	d := directive.Directives{SrcOutput: ptr("a.tex")}
	if got := d.String(); got != "{src_output=a.tex}" {
		t.Fatalf("String() = %q", got)
	}
	if got := (directive.Directives{}).String(); got != "{}" {
		t.Fatalf("String() = %q", got)
	}
}
