package driver

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
)

func TestStripAllKeepsOrderAndIsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeDoc(t, dir, "a.dtx", "%%% src_output = \"a.tex\"\na\n"),
		writeDoc(t, dir, "b.dtx", "unbound\n"),
		writeDoc(t, dir, "c.dtx", "%%% src_output = \"c.tex\"\nc\n"),
	}

	ch := make(chan Event, 64)
	results, err := StripAll(context.Background(), paths, 2, StripOptions{
		MaxDiagnostics: 10,
		Progress:       ChannelSink{Ch: ch},
	})
	close(ch)
	if err != nil {
		t.Fatalf("StripAll: %v", err)
	}
	if len(results) != len(paths) {
		t.Fatalf("got %d results", len(results))
	}
	for i, r := range results {
		if r.Path != paths[i] {
			t.Fatalf("result %d is for %s, want %s", i, r.Path, paths[i])
		}
	}
	if results[0].Failed() || !results[1].Failed() || results[2].Failed() {
		t.Fatalf("failures = %v %v %v", results[0].Failed(), results[1].Failed(), results[2].Failed())
	}
	if got := readFile(t, filepath.Join(dir, "c.tex")); got != "c\n" {
		t.Fatalf("c.tex = %q", got)
	}

	final := map[string]Status{}
	queued := 0
	for ev := range ch {
		if ev.Status == StatusQueued {
			queued++
			continue
		}
		if ev.Status == StatusDone || ev.Status == StatusError {
			final[ev.File] = ev.Status
		}
	}
	if queued != len(paths) {
		t.Fatalf("queued events = %d", queued)
	}
	want := map[string]Status{paths[0]: StatusDone, paths[1]: StatusError, paths[2]: StatusDone}
	for p, st := range want {
		if final[p] != st {
			t.Fatalf("%s finished with %v, want %v", filepath.Base(p), final[p], st)
		}
	}
}

func TestStripAllCancelled(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "a.dtx", "%%% src_output = \"a.tex\"\na\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := StripAll(ctx, []string{path}, 1, StripOptions{})
	if err == nil {
		t.Fatal("expected context error")
	}
	if results[0] != nil {
		t.Fatalf("cancelled document must not run: %+v", results[0])
	}
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	s.mu.Unlock()
}

func TestStripProgressStages(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "a.dtx", "%%% src_output = \"a.tex\"\na\n")
	sink := &recordingSink{}
	if res := Strip(context.Background(), path, StripOptions{DryRun: true, Progress: sink}); res.Failed() {
		t.Fatalf("unexpected failure: %v", res.Err)
	}
	var stages []Stage
	for _, ev := range sink.events {
		if ev.Status == StatusWorking {
			stages = append(stages, ev.Stage)
		}
	}
	want := []Stage{StageLoad, StageLex, StageBuild, StageProcess}
	if len(stages) != len(want) {
		t.Fatalf("stages = %v", stages)
	}
	for i := range want {
		if stages[i] != want[i] {
			t.Fatalf("stages = %v, want %v", stages, want)
		}
	}
	if last := sink.events[len(sink.events)-1]; last.Status != StatusDone {
		t.Fatalf("last event = %+v", last)
	}
}
