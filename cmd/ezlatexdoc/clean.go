package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"ezlatexdoc/internal/driver"
	"ezlatexdoc/internal/project"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [file.dtx...]",
	Short: "Remove the outputs recorded for documents",
	Long: `Clean removes the files a previous strip run created for each document, so
that the next run can create them again. Without arguments the inputs of
` + project.ManifestName + ` are cleaned.`,
	RunE: runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	inputs := args
	if len(inputs) == 0 {
		manifest, _, loadErr := project.Load(".")
		if loadErr != nil {
			return loadErr
		}
		inputs = manifest.InputPaths()
	}
	if len(inputs) == 0 {
		return fmt.Errorf("%s", noInputsMessage)
	}

	store, err := driver.OpenRecordStore("ezlatexdoc")
	if err != nil {
		return fmt.Errorf("cannot open output records: %w", err)
	}

	out := cmd.OutOrStdout()
	var failed []string
	for _, input := range inputs {
		removed, cleanErr := store.Clean(input)
		for _, path := range removed {
			if !quiet {
				fmt.Fprintf(out, "removed %s\n", formatPathForOutput(".", path))
			}
		}
		if cleanErr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", input, cleanErr)
			failed = append(failed, input)
			continue
		}
		if len(removed) == 0 && !quiet {
			fmt.Fprintf(out, "%s: nothing recorded\n", input)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("clean failed for %s", strings.Join(failed, ", "))
	}
	return nil
}

func formatPathForOutput(root, path string) string {
	if root == "" || path == "" {
		return path
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(absRoot, path)
	if err != nil {
		return path
	}
	if strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
