package trace

import (
	"io"
	"sync"
)

// RingTracer remembers the most recent events so a failed document can be
// explained after the fact. Старые события затираются новыми.
type RingTracer struct {
	mu      sync.Mutex
	buf     []Event
	written uint64 // сколько событий принято всего
	level   Level
}

// NewRingTracer keeps up to size events; size <= 0 means DefaultRingSize.
func NewRingTracer(size int, level Level) *RingTracer {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &RingTracer{buf: make([]Event, size), level: level}
}

func (t *RingTracer) Emit(ev *Event) {
	if !t.level.Captures(ev.Scope) {
		return
	}
	t.mu.Lock()
	slot := t.written % uint64(len(t.buf))
	t.buf[slot] = *ev
	t.buf[slot].Seq = NextSeq()
	t.written++
	t.mu.Unlock()
}

// Snapshot copies the retained events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	size := uint64(len(t.buf))
	if t.written <= size {
		return append([]Event(nil), t.buf[:t.written]...)
	}
	oldest := t.written % size
	return append(append(make([]Event, 0, size), t.buf[oldest:]...), t.buf[:oldest]...)
}

// Dump writes the retained events as text lines.
func (t *RingTracer) Dump(w io.Writer) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(formatText(&ev)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
