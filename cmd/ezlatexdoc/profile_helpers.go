package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ezlatexdoc/internal/prof"
)

var profiling *prof.Session

// startProfiling reads the persistent profiling flags and starts the
// requested profilers before any subcommand runs.
func startProfiling(cmd *cobra.Command, _ []string) error {
	root := cmd.Root()
	cpuProfile, err := root.PersistentFlags().GetString("cpu-profile")
	if err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	memProfile, err := root.PersistentFlags().GetString("mem-profile")
	if err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	tracePath, err := root.PersistentFlags().GetString("runtime-trace")
	if err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if cpuProfile == "" && memProfile == "" && tracePath == "" {
		return nil
	}
	profiling, err = prof.Start(prof.Options{CPU: cpuProfile, Mem: memProfile, Trace: tracePath})
	return err
}

func stopProfiling() {
	if err := profiling.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "profiling: %v\n", err)
	}
}
