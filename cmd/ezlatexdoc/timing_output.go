package main

import (
	"fmt"
	"io"

	"ezlatexdoc/internal/driver"
)

func printTimings(out io.Writer, results []*driver.StripResult) {
	if out == nil {
		return
	}
	for _, res := range results {
		if res == nil || res.Timer == nil {
			continue
		}
		if _, err := fmt.Fprint(out, res.Timer.Summary(res.Path)); err != nil {
			panic(err)
		}
	}
}
