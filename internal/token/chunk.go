package token

import (
	"fmt"

	"ezlatexdoc/internal/source"
)

// Chunk is a classified span of the input document.
type Chunk struct {
	Kind    Kind
	Comment CommentKind // NoComment для Source
	Span    source.Span
	Text    string
}

// NewSource builds a Source chunk.
func NewSource(span source.Span, text string) Chunk {
	return Chunk{Kind: Source, Span: span, Text: text}
}

// NewComment builds a Comment chunk of the given kind.
func NewComment(kind CommentKind, span source.Span, text string) Chunk {
	return Chunk{Kind: Comment, Comment: kind, Span: span, Text: text}
}

// IsComment reports whether the chunk is a comment of kind k.
func (c Chunk) IsComment(k CommentKind) bool {
	return c.Kind == Comment && c.Comment == k
}

func (c Chunk) String() string {
	if c.Kind == Comment {
		return fmt.Sprintf("Comment(%s, %q)", c.Comment, c.Text)
	}
	return fmt.Sprintf("Source(%q)", c.Text)
}
