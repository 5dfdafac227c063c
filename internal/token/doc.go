// Package token defines the lexical units produced by the lexer.
// Invariants:
//   - Source chunk Text is a slice of the original document (no copies).
//   - Comment chunk Text is owned: the tag is stripped, same-kind start-of-line
//     lines are joined and the common indentation is removed.
//   - Chunk.Span covers the whole physical region the chunk was produced from,
//     including indentation and tags; concatenating spans in order covers the
//     input without gaps or overlaps.
package token
