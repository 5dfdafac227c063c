package sink

import (
	"io"
	"os"
	"path/filepath"
	"sync"
)

// FileOpener creates files relative to BaseDir.
type FileOpener struct {
	BaseDir string
	Stdout  io.Writer // nil — os.Stdout

	mu      sync.Mutex
	created []string
}

func NewFileOpener(baseDir string) *FileOpener {
	return &FileOpener{BaseDir: baseDir}
}

// Resolve maps a destination name to the path Create would use.
func (o *FileOpener) Resolve(name string) string {
	if name == StdoutName || filepath.IsAbs(name) || o.BaseDir == "" {
		return name
	}
	return filepath.Join(o.BaseDir, name)
}

func (o *FileOpener) Create(name string) (io.WriteCloser, error) {
	if name == StdoutName {
		w := o.Stdout
		if w == nil {
			w = os.Stdout
		}
		return nopCloser{w}, nil
	}
	path := o.Resolve(name)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, err
	}
	o.mu.Lock()
	o.created = append(o.created, path)
	o.mu.Unlock()
	return f, nil
}

// Created lists the files created so far, in creation order.
func (o *FileOpener) Created() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.created...)
}
