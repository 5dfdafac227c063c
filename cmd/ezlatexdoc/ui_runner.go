package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"ezlatexdoc/internal/driver"
	"ezlatexdoc/internal/ui"
)

type stripOutcome struct {
	results []*driver.StripResult
	err     error
}

// heldOutput collects stdout destinations while the progress view owns the terminal.
type heldOutput struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (h *heldOutput) Write(p []byte) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.buf.Write(p)
}

func (h *heldOutput) release(w io.Writer) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.buf.WriteTo(w)
	return err
}

func runStripWithUI(ctx context.Context, title string, paths []string, jobs int, opts driver.StripOptions, stdout io.Writer) ([]*driver.StripResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan stripOutcome, 1)
	held := &heldOutput{}

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		optsCopy.Stdout = held
		res, err := driver.StripAll(ctx, paths, jobs, optsCopy)
		outcomeCh <- stripOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, paths, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	releaseErr := held.release(stdout)
	if uiErr != nil {
		return outcome.results, errors.Join(uiErr, releaseErr)
	}
	return outcome.results, errors.Join(outcome.err, releaseErr)
}
