package lexer

import (
	"testing"

	"ezlatexdoc/internal/source"
)

// helper function to create a file
func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.dtx", []byte(content))
	return fs.Get(id)
}

// TestSequentialReading проверяет последовательное чтение: "a\nb" → a, \n, b, EOF
func TestSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))

	for _, want := range []byte("a\nb") {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Peek(); got != want {
			t.Fatalf("Peek = %q, want %q", got, want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("Bump = %q, want %q", got, want)
		}
	}

	if !cursor.EOF() {
		t.Error("Expected EOF at end")
	}
	if cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Error("Expected zero bytes past EOF")
	}
}

func TestMarkResetAndSpan(t *testing.T) {
	cursor := NewCursor(createFile("%%% x"))
	m := cursor.Mark()
	cursor.Advance(3)
	sp := cursor.SpanFrom(m)
	if sp.Start != 0 || sp.End != 3 {
		t.Fatalf("unexpected span %v", sp)
	}
	cursor.Reset(m)
	if cursor.Off != 0 {
		t.Fatalf("Reset did not rewind, off=%d", cursor.Off)
	}
	cursor.Advance(100)
	if cursor.Off != cursor.Limit {
		t.Fatalf("Advance must clamp to limit, off=%d", cursor.Off)
	}
}

