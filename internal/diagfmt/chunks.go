package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"ezlatexdoc/internal/source"
	"ezlatexdoc/internal/token"
)

type ChunkOutput struct {
	Kind    string      `json:"kind"`
	Comment string      `json:"comment,omitempty"`
	Text    string      `json:"text"`
	Span    source.Span `json:"span"`
	Line    uint32      `json:"line"`
}

// FormatChunksPretty выводит чанки в человекочитаемом формате
func FormatChunksPretty(w io.Writer, chunks []token.Chunk, fs *source.FileSet) error {
	for i, c := range chunks {
		startPos, endPos := fs.Resolve(c.Span)
		kind := c.Kind.String()
		if c.Kind == token.Comment {
			kind = c.Comment.String()
		}
		if _, err := fmt.Fprintf(w, "%3d: %-13s %q at %d:%d-%d:%d\n",
			i+1, kind, c.Text,
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col); err != nil {
			return err
		}
	}
	return nil
}

// FormatChunksJSON выводит чанки в JSON формате
func FormatChunksJSON(w io.Writer, chunks []token.Chunk, fs *source.FileSet) error {
	output := make([]ChunkOutput, 0, len(chunks))
	for _, c := range chunks {
		out := ChunkOutput{
			Kind: c.Kind.String(),
			Text: c.Text,
			Span: c.Span,
		}
		if c.Kind == token.Comment {
			out.Comment = c.Comment.String()
		}
		start, _ := fs.Resolve(c.Span)
		out.Line = start.Line
		output = append(output, out)
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
