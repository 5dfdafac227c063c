package process

import (
	"errors"
	"fmt"

	"ezlatexdoc/internal/parser"
	"ezlatexdoc/internal/source"
)

// ErrUnbound matches every *UnboundError via errors.Is.
var ErrUnbound = errors.New("no output destination bound")

// UnboundError reports content routed to a destination no directive bound.
type UnboundError struct {
	Dest Dest
	Node parser.NodeKind
	Span source.Span
}

func (e *UnboundError) Error() string {
	return fmt.Sprintf("%s content before any %s directive", e.Node, e.Dest)
}

func (e *UnboundError) Is(target error) bool {
	return target == ErrUnbound
}

// OpenError wraps a failure to create a destination. An existing file
// surfaces as errors.Is(err, fs.ErrExist).
type OpenError struct {
	Dest Dest
	Name string
	Span source.Span
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("cannot open %s %q: %v", e.Dest, e.Name, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// WriteError wraps an I/O failure while writing, flushing or closing a
// destination.
type WriteError struct {
	Dest Dest
	Name string
	Span source.Span
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("cannot write %s %q: %v", e.Dest, e.Name, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
