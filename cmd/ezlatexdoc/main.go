// Package main implements the ezlatexdoc CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ezlatexdoc/internal/version"
)

var rootCmd = &cobra.Command{
	Use:               "ezlatexdoc",
	Short:             "Split annotated TeX sources into code and documentation",
	Long:              `ezlatexdoc reads annotated .dtx-style documents and routes source lines and documentation comments to the outputs named by in-document directives`,
	SilenceUsage:      true,
	PersistentPreRunE: startProfiling,
}

// main registers subcommands and persistent flags and executes the root command.
// If command execution returns an error, the process exits with status code 1.
func main() {
	// версия для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(stripCmd)
	rootCmd.AddCommand(lexCmd)
	rootCmd.AddCommand(nodesCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	// Трассировка
	rootCmd.PersistentFlags().String("trace", "", "write trace events to a file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "ring", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "events kept by the ring tracer")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace output format (auto|text|ndjson)")

	// Профилирование
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")

	err := rootCmd.Execute()
	stopProfiling()
	if err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
