package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota // no tracing
	LevelError               // only dump the ring on failures
	LevelPhase               // driver + pass boundaries
	LevelDetail              // document-level events
	LevelDebug               // everything including node-level
)

// String returns the string representation of Level.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelError:
		return "error"
	case LevelPhase:
		return "phase"
	case LevelDetail:
		return "detail"
	case LevelDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "off":
		return LevelOff, nil
	case "error":
		return LevelError, nil
	case "phase":
		return LevelPhase, nil
	case "detail":
		return LevelDetail, nil
	case "debug":
		return LevelDebug, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|phase|detail|debug)", s)
	}
}

// ShouldEmit returns true if the given scope should emit at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelPhase:
		return scope <= ScopePass
	case LevelDetail:
		return scope <= ScopeDocument
	case LevelDebug:
		return true
	default:
		// LevelError пишет только дамп кольца при ошибке
		return false
	}
}

// Captures reports whether an event of scope is recorded at all. At
// LevelError nothing is streamed, but the ring still keeps document-level
// history so it can be dumped when a document fails.
func (l Level) Captures(scope Scope) bool {
	if l == LevelError {
		return scope <= ScopeDocument
	}
	return l.ShouldEmit(scope)
}
