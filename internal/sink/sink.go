// Package sink resolves destination names to writable outputs.
//
// Destinations are created exclusively: an existing file is never truncated
// or appended to, so rerunning over stale outputs fails loudly.
package sink

import (
	"io"
)

// StdoutName binds a destination to standard output.
const StdoutName = "-"

// Opener creates a fresh destination for a name.
type Opener interface {
	Create(name string) (io.WriteCloser, error)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
