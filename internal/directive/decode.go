package directive

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"

	"ezlatexdoc/internal/diag"
	"ezlatexdoc/internal/source"
)

var (
	// ErrUnknownKey is wrapped by Error when the block names a key other
	// than src_output or doc_output.
	ErrUnknownKey = errors.New("unknown directive key")
	// ErrEmptyName is wrapped by Error when a destination name is "".
	ErrEmptyName = errors.New("empty destination name")
)

// Error describes a directive block that could not be decoded.
type Error struct {
	Span source.Span // спан всего блока директив
	Line int         // строка внутри блока (1-based), 0 если неизвестна
	Key  string
	Code diag.Code
	Err  error
}

func (e *Error) Error() string {
	var where string
	if e.Line > 0 {
		where = fmt.Sprintf(" (line %d)", e.Line)
	}
	if e.Key != "" {
		return fmt.Sprintf("directives%s: %q: %v", where, e.Key, e.Err)
	}
	return fmt.Sprintf("directives parse error%s: %v", where, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Decode parses the normalised text of a directive block. span is the span
// of the whole block and is carried by the returned *Error.
func Decode(text string, span source.Span) (Directives, error) {
	var d Directives
	meta, err := toml.Decode(text, &d)
	if err != nil {
		derr := &Error{Span: span, Code: diag.DirMalformed, Err: err}
		var perr toml.ParseError
		if errors.As(err, &perr) {
			derr.Line = perr.Position.Line
			if perr.Message != "" {
				derr.Err = errors.New(perr.Message)
			}
		}
		return Directives{}, derr
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Directives{}, &Error{
			Span: span,
			Key:  undecoded[0].String(),
			Code: diag.DirUnknownKey,
			Err:  ErrUnknownKey,
		}
	}

	for _, field := range []struct {
		key   string
		value *string
	}{
		{"src_output", d.SrcOutput},
		{"doc_output", d.DocOutput},
	} {
		if field.value != nil && *field.value == "" {
			return Directives{}, &Error{
				Span: span,
				Key:  field.key,
				Code: diag.DirEmptyName,
				Err:  ErrEmptyName,
			}
		}
	}
	return d, nil
}
