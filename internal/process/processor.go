// Package process routes nodes to the stripped-source and documentation
// destinations.
//
// The processor owns two independent slots. Each slot is unbound until a
// directive (or an initial binding) names a destination for it; rebinding
// closes the previous destination of that slot. Writes go through a
// buffered writer straight to the bound destination, so content that
// arrives while its slot is unbound fails at once with *UnboundError.
package process

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"ezlatexdoc/internal/parser"
	"ezlatexdoc/internal/sink"
	"ezlatexdoc/internal/source"
	"ezlatexdoc/internal/trace"
)

// Dest selects one of the two logical destinations.
type Dest uint8

const (
	DestSource Dest = iota
	DestDoc
	destCount
)

func (d Dest) String() string {
	switch d {
	case DestSource:
		return "src_output"
	case DestDoc:
		return "doc_output"
	default:
		return fmt.Sprintf("Dest(%d)", uint8(d))
	}
}

// placeholder replaces a discarded % comment in the stripped source.
const placeholder = "%\n"

type Options struct {
	Tracer trace.Tracer // nil — trace.Nop
	Parent uint64       // span, под которым пишутся точки bind
}

// Output describes one destination opened during the run.
type Output struct {
	Dest  Dest
	Name  string
	Bytes int64
}

type slot struct {
	name string
	file io.WriteCloser
	w    *bufio.Writer
	out  int // индекс в Processor.outputs
	// последняя запись не закончилась переводом строки
	openLine bool
}

func (s *slot) bound() bool { return s.file != nil }

// Processor is single-use: one per document.
type Processor struct {
	opener   sink.Opener
	opts     Options
	slots    [destCount]slot
	outputs  []Output
	finished bool
}

func New(opener sink.Opener, opts Options) *Processor {
	if opts.Tracer == nil {
		opts.Tracer = trace.Nop
	}
	return &Processor{opener: opener, opts: opts}
}

// Bind opens a new destination for dest, closing the previous one.
// span locates the directive responsible and may be empty.
func (p *Processor) Bind(dest Dest, name string, span source.Span) error {
	if p.finished {
		return errFinished
	}
	s := &p.slots[dest]
	if err := p.closeSlot(dest, span); err != nil {
		return err
	}
	f, err := p.opener.Create(name)
	if err != nil {
		return &OpenError{Dest: dest, Name: name, Span: span, Err: err}
	}
	*s = slot{name: name, file: f, w: bufio.NewWriter(f), out: len(p.outputs)}
	p.outputs = append(p.outputs, Output{Dest: dest, Name: name})
	trace.Point(p.opts.Tracer, trace.ScopeNode, "bind", dest.String()+"="+name, p.opts.Parent)
	return nil
}

// Bound returns the name currently bound to dest.
func (p *Processor) Bound(dest Dest) (string, bool) {
	s := &p.slots[dest]
	return s.name, s.bound()
}

// Process applies one node.
func (p *Processor) Process(n parser.Node) error {
	if p.finished {
		return errFinished
	}
	switch n.Kind {
	case parser.NodeSource:
		return p.write(DestSource, n, n.Text)
	case parser.NodePreservedComment:
		return p.write(DestSource, n, preserved(n.Text))
	case parser.NodeComment:
		return p.write(DestSource, n, placeholder)
	case parser.NodeDocumentation:
		return p.write(DestDoc, n, n.Text)
	case parser.NodeDirectives:
		if name := n.Directives.SrcOutput; name != nil {
			if err := p.Bind(DestSource, *name, n.Span); err != nil {
				return err
			}
		}
		if name := n.Directives.DocOutput; name != nil {
			if err := p.Bind(DestDoc, *name, n.Span); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("process: unexpected node %v", n)
	}
}

// Finish terminates an unfinished last line, then flushes and closes every
// bound destination. It is safe to call
// after a failed Process; later calls are no-ops.
func (p *Processor) Finish() error {
	if p.finished {
		return nil
	}
	p.finished = true
	var errs []error
	for d := range destCount {
		errs = append(errs, p.closeSlot(d, source.Span{}))
	}
	return errors.Join(errs...)
}

// Outputs lists opened destinations in binding order with their sizes.
func (p *Processor) Outputs() []Output {
	return append([]Output(nil), p.outputs...)
}

var errFinished = errors.New("process: processor already finished")

func (p *Processor) write(dest Dest, n parser.Node, text string) error {
	s := &p.slots[dest]
	if !s.bound() {
		return &UnboundError{Dest: dest, Node: n.Kind, Span: n.Span}
	}
	written, err := s.w.WriteString(text)
	p.outputs[s.out].Bytes += int64(written)
	if text != "" {
		s.openLine = !strings.HasSuffix(text, "\n")
	}
	if err != nil {
		return &WriteError{Dest: dest, Name: s.name, Span: n.Span, Err: err}
	}
	return nil
}

func (p *Processor) closeSlot(dest Dest, span source.Span) error {
	s := &p.slots[dest]
	if !s.bound() {
		return nil
	}
	name := s.name
	// вывод всегда заканчивается переводом строки
	var endErr error
	if s.openLine {
		if endErr = s.w.WriteByte('\n'); endErr == nil {
			p.outputs[s.out].Bytes++
		}
	}
	flushErr := s.w.Flush()
	closeErr := s.file.Close()
	*s = slot{}
	if err := errors.Join(endErr, flushErr, closeErr); err != nil {
		return &WriteError{Dest: dest, Name: name, Span: span, Err: err}
	}
	return nil
}

// preserved renders a %! comment as real comment lines in the stripped
// source: "% text" per line, a lone "%" for empty lines.
func preserved(text string) string {
	text = strings.TrimSuffix(text, "\n")
	var sb strings.Builder
	for line := range strings.SplitSeq(text, "\n") {
		if line == "" {
			sb.WriteString(placeholder)
			continue
		}
		sb.WriteString("% ")
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}
