package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"ezlatexdoc/internal/diag"
	"ezlatexdoc/internal/diagfmt"
	"ezlatexdoc/internal/source"
)

type diagFormat string

const (
	diagFormatPretty diagFormat = "pretty"
	diagFormatJSON   diagFormat = "json"
)

func readDiagFormat(value string) (diagFormat, error) {
	switch diagFormat(value) {
	case diagFormatPretty, diagFormatJSON:
		return diagFormat(value), nil
	default:
		return "", fmt.Errorf("unknown format: %s (expected pretty|json)", value)
	}
}

// useColor resolves --color against the terminal state of f.
func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}

func printDiagnostics(cmd *cobra.Command, w io.Writer, bag *diag.Bag, fs *source.FileSet, format diagFormat) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	bag.Sort()
	if format == diagFormatJSON {
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeRelative,
			IncludeNotes:     true,
		})
	}
	diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
		Color:     useColor(cmd, os.Stderr),
		PathMode:  diagfmt.PathModeAuto,
		ShowNotes: true,
	})
	return nil
}
