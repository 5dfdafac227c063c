package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"fortio.org/safecast"

	"ezlatexdoc/internal/diag"
	"ezlatexdoc/internal/source"
	"ezlatexdoc/internal/token"
)

// Lexer splits one document into chunks. A Lexer is single-use.
type Lexer struct {
	file   *source.File
	text   string // содержимое файла; Source-чанки ссылаются на него без копий
	cursor Cursor
	opts   Options
	out    []token.Chunk
	block  pendingBlock
}

// pendingBlock collects consecutive start-of-line comment lines of one kind.
type pendingBlock struct {
	open  bool
	kind  token.CommentKind
	span  source.Span
	parts []string
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		text:   string(file.Content),
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Lex is a shortcut for New(file, opts).Lex().
func Lex(file *source.File, opts Options) ([]token.Chunk, error) {
	return New(file, opts).Lex()
}

// Lex consumes the whole document. Either every byte ends up in exactly one
// chunk or an *Error describing the unconsumed input is returned together
// with a nil slice.
func (lx *Lexer) Lex() ([]token.Chunk, error) {
	for !lx.cursor.EOF() {
		// 1) строка, начинающаяся (после отступа) с тега комментария
		if lx.scanLineComment() {
			continue
		}
		// 2) иначе блок комментариев закончился, читаем исходник до конца строки
		lx.flushBlock()
		if err := lx.scanSourceLine(); err != nil {
			return nil, err
		}
	}
	lx.flushBlock()
	return lx.out, nil
}

// scanLineComment lexes one physical line whose first non-blank byte is '%'.
func (lx *Lexer) scanLineComment() bool {
	start := lx.cursor.Mark()
	lx.skipIndent()
	if lx.cursor.Peek() != '%' {
		lx.cursor.Reset(start)
		return false
	}
	kind := lx.scanTag(token.SOLTags[:])
	body := lx.restOfLine()
	lx.extendBlock(kind, lx.cursor.SpanFrom(start), body)
	return true
}

// scanSourceLine lexes source text up to and including the line ending, or up
// to an inline comment which then runs to the end of the line.
func (lx *Lexer) scanSourceLine() error {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '\n':
			lx.cursor.Bump()
			lx.emitSource(start)
			return nil
		case '%':
			lx.emitSource(start)
			lx.scanInlineComment()
			return nil
		case '\\':
			if err := lx.scanEscape(); err != nil {
				return err
			}
		default:
			// '%', '\\' и '\n' — ASCII и не встречаются внутри многобайтовых рун
			lx.cursor.Bump()
		}
	}
	lx.emitSource(start)
	return nil
}

func (lx *Lexer) scanInlineComment() {
	start := lx.cursor.Mark()
	kind := lx.scanTag(token.InlineTags[:])
	body := lx.restOfLine()
	lx.out = append(lx.out, token.NewComment(kind, lx.cursor.SpanFrom(start), unindent(body)))
}

// scanEscape consumes a backslash and the single character it escapes.
func (lx *Lexer) scanEscape() error {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
		return lx.fail(start, "backslash with nothing to escape")
	}
	_, size := utf8.DecodeRuneInString(lx.text[lx.cursor.Off:])
	lx.cursor.Advance(uint32(size)) // не больше utf8.UTFMax
	return nil
}

// scanTag consumes the first tag from kinds that matches at the cursor.
func (lx *Lexer) scanTag(kinds []token.CommentKind) token.CommentKind {
	rest := lx.text[lx.cursor.Off:]
	for _, k := range kinds {
		tag := k.Tag()
		if strings.HasPrefix(rest, tag) {
			lx.cursor.Advance(uint32(len(tag)))
			return k
		}
	}
	return token.NoComment
}

func (lx *Lexer) skipIndent() {
	for {
		b := lx.cursor.Peek()
		if b != ' ' && b != '\t' {
			return
		}
		lx.cursor.Bump()
	}
}

// restOfLine consumes everything up to and including the next '\n' (or EOF).
func (lx *Lexer) restOfLine() string {
	start := lx.cursor.Off
	if i := strings.IndexByte(lx.text[start:], '\n'); i >= 0 {
		n, err := safecast.Conv[uint32](i + 1)
		if err != nil {
			panic(fmt.Errorf("line length overflow: %w", err))
		}
		lx.cursor.Advance(n)
	} else {
		lx.cursor.Reset(Mark(lx.cursor.Limit))
	}
	return lx.text[start:lx.cursor.Off]
}

func (lx *Lexer) emitSource(start Mark) {
	sp := lx.cursor.SpanFrom(start)
	if sp.Empty() {
		return
	}
	lx.out = append(lx.out, token.NewSource(sp, lx.text[sp.Start:sp.End]))
}

// extendBlock appends a comment line to the pending block, or closes the
// pending block and opens a new one when the kind changes.
func (lx *Lexer) extendBlock(kind token.CommentKind, sp source.Span, body string) {
	if lx.block.open && lx.block.kind == kind {
		lx.block.parts = append(lx.block.parts, body)
		lx.block.span = lx.block.span.Cover(sp)
		return
	}
	lx.flushBlock()
	lx.block = pendingBlock{
		open:  true,
		kind:  kind,
		span:  sp,
		parts: []string{body},
	}
}

func (lx *Lexer) flushBlock() {
	if !lx.block.open {
		return
	}
	text := unindent(strings.Join(lx.block.parts, ""))
	lx.out = append(lx.out, token.NewComment(lx.block.kind, lx.block.span, text))
	lx.block = pendingBlock{}
}

func (lx *Lexer) fail(start Mark, msg string) error {
	sp := lx.cursor.SpanFrom(start)
	lx.report(diag.LexDanglingEscape, sp, msg)
	return &Error{
		Path:      lx.file.Path,
		Span:      sp,
		Pos:       lx.file.LineCol(sp.Start),
		Msg:       msg,
		Remainder: remainderAt(lx.text, sp.Start),
	}
}
