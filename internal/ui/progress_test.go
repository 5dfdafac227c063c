package ui

import (
	"errors"
	"strings"
	"testing"

	"ezlatexdoc/internal/driver"
)

func newModel(files ...string) *progressModel {
	return NewProgressModel("stripping", files, nil).(*progressModel)
}

func TestApplyEventTracksStages(t *testing.T) {
	m := newModel("a.dtx", "b.dtx")

	m.applyEvent(driver.Event{File: "a.dtx", Stage: driver.StageLex, Status: driver.StatusWorking})
	if got := m.items[0].status; got != "lexing" {
		t.Fatalf("status = %q", got)
	}
	if got := m.percent(); got != 0.15 {
		t.Fatalf("percent = %v", got)
	}

	m.applyEvent(driver.Event{File: "a.dtx", Stage: driver.StageProcess, Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "b.dtx", Stage: driver.StageBuild, Status: driver.StatusError, Err: errors.New("boom")})
	if m.finished() != 2 || m.failed != 1 {
		t.Fatalf("finished=%d failed=%d", m.finished(), m.failed)
	}
	if got := m.percent(); got != 1.0 {
		t.Fatalf("percent = %v", got)
	}

	// после финального статуса строка больше не меняется
	m.applyEvent(driver.Event{File: "b.dtx", Stage: driver.StageLoad, Status: driver.StatusQueued})
	if m.items[1].status != "error" {
		t.Fatalf("final status overwritten: %q", m.items[1].status)
	}
}

func TestApplyEventIgnoresUnknownFiles(t *testing.T) {
	m := newModel("a.dtx")
	if cmd := m.applyEvent(driver.Event{File: "other.dtx", Status: driver.StatusDone}); cmd != nil {
		t.Fatal("unknown file must be ignored")
	}
	if m.items[0].status != "queued" {
		t.Fatalf("status = %q", m.items[0].status)
	}
}

func TestViewListsFiles(t *testing.T) {
	m := newModel("first.dtx", "second.dtx")
	m.applyEvent(driver.Event{File: "second.dtx", Stage: driver.StageProcess, Status: driver.StatusError})
	m.done = true
	view := m.View()
	for _, want := range []string{"first.dtx", "second.dtx", "1/2", "1 failed", "done:"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view lacks %q:\n%s", want, view)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"averyverylongname.dtx", 10, "aver..."},
		{"abcdef", 3, "abc"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
