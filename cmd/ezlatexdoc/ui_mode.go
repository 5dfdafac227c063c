package main

import (
	"fmt"
	"strings"
)

// progressView selects whether strip draws the bubbletea progress view.
// Вид рисуется в stderr; destination "-" придерживается до его закрытия.
type progressView int

const (
	progressAuto progressView = iota
	progressAlways
	progressNever
)

var progressViewNames = map[string]progressView{
	"":     progressAuto,
	"auto": progressAuto,
	"on":   progressAlways,
	"off":  progressNever,
}

func parseProgressView(value string) (progressView, error) {
	mode, ok := progressViewNames[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return 0, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
	return mode, nil
}

// enabled reports whether the view is drawn for a batch of n documents.
// stderrTTY matters only in auto mode.
func (v progressView) enabled(n int, stderrTTY bool) bool {
	// один документ проходит быстрее, чем вид успевает отрисоваться
	if n < 2 {
		return false
	}
	switch v {
	case progressAlways:
		return true
	case progressNever:
		return false
	default:
		return stderrTTY
	}
}
