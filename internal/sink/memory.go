package sink

import (
	"bytes"
	"io"
	"io/fs"
	"sync"
)

// Memory keeps destinations in memory. Used by --dry-run and tests.
type Memory struct {
	mu    sync.Mutex
	files map[string]*bytes.Buffer
	order []string
}

func NewMemory() *Memory {
	return &Memory{files: make(map[string]*bytes.Buffer)}
}

func (m *Memory) Create(name string) (io.WriteCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[name]; ok {
		return nil, &fs.PathError{Op: "create", Path: name, Err: fs.ErrExist}
	}
	buf := &bytes.Buffer{}
	m.files[name] = buf
	m.order = append(m.order, name)
	return &memFile{m: m, buf: buf}, nil
}

// Get returns the bytes written to name.
func (m *Memory) Get(name string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	buf, ok := m.files[name]
	if !ok {
		return "", false
	}
	return buf.String(), true
}

// Names lists destinations in creation order.
func (m *Memory) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.order...)
}

type memFile struct {
	m      *Memory
	buf    *bytes.Buffer
	closed bool
}

func (f *memFile) Write(p []byte) (int, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if f.closed {
		return 0, fs.ErrClosed
	}
	return f.buf.Write(p)
}

func (f *memFile) Close() error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if f.closed {
		return fs.ErrClosed
	}
	f.closed = true
	return nil
}
