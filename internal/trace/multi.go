package trace

import "errors"

// MultiTracer fans out trace events to multiple tracers.
type MultiTracer struct {
	tracers []Tracer
	level   Level
}

// NewMultiTracer creates a new MultiTracer that emits to all provided tracers.
func NewMultiTracer(level Level, tracers ...Tracer) *MultiTracer {
	return &MultiTracer{
		tracers: tracers,
		level:   level,
	}
}

// Emit sends a copy of the event to every underlying tracer, since tracers
// stamp Seq on the event they receive.
func (t *MultiTracer) Emit(ev *Event) {
	for _, tr := range t.tracers {
		cp := *ev
		tr.Emit(&cp)
	}
}

func (t *MultiTracer) Flush() error {
	var errs []error
	for _, tr := range t.tracers {
		errs = append(errs, tr.Flush())
	}
	return errors.Join(errs...)
}

func (t *MultiTracer) Close() error {
	var errs []error
	for _, tr := range t.tracers {
		errs = append(errs, tr.Close())
	}
	return errors.Join(errs...)
}

func (t *MultiTracer) Level() Level {
	return t.level
}

func (t *MultiTracer) Enabled() bool {
	return t.level > LevelOff
}

// Ring returns the first RingTracer among the fan-out targets, if any.
func (t *MultiTracer) Ring() *RingTracer {
	for _, tr := range t.tracers {
		if r, ok := tr.(*RingTracer); ok {
			return r
		}
	}
	return nil
}

// RingOf extracts the ring buffer behind t, whether t is a *RingTracer
// itself or a MultiTracer containing one.
func RingOf(t Tracer) *RingTracer {
	switch tr := t.(type) {
	case *RingTracer:
		return tr
	case *MultiTracer:
		return tr.Ring()
	default:
		return nil
	}
}
