package lexer

import "testing"

func TestUnindent(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"a", "a"},
		{" a\n", "a\n"},
		{"   a\n     b\n", "a\n  b\n"},
		{"\ta\n\tb", "a\nb"},
		{"  a\n \n  b\n", "a\n\nb\n"},
		{" a\nb\n", " a\nb\n"},
		{"\n", "\n"},
	}
	for _, tt := range tests {
		if got := unindent(tt.in); got != tt.want {
			t.Errorf("unindent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
