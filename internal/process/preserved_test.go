package process

import "testing"

func TestPreservedRendering(t *testing.T) {
	tests := []struct{ in, want string }{
		{"keep\n", "% keep\n"},
		{"keep", "% keep\n"},
		{"\n", "%\n"},
		{"", "%\n"},
		{"a\n\n  b\n", "% a\n%\n%   b\n"},
	}
	for _, tt := range tests {
		if got := preserved(tt.in); got != tt.want {
			t.Errorf("preserved(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDestString(t *testing.T) {
	if DestSource.String() != "src_output" || DestDoc.String() != "doc_output" {
		t.Fatalf("unexpected names %s %s", DestSource, DestDoc)
	}
}
