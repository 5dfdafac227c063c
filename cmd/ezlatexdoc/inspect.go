package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ezlatexdoc/internal/diagfmt"
	"ezlatexdoc/internal/driver"
)

var lexCmd = &cobra.Command{
	Use:   "lex [flags] file.dtx",
	Short: "Dump the chunks of a document",
	Long:  `Lex splits a document into source and comment chunks and prints them; no output is opened`,
	Args:  cobra.ExactArgs(1),
	RunE:  runLex,
}

var nodesCmd = &cobra.Command{
	Use:   "nodes [flags] file.dtx",
	Short: "Dump the nodes of a document",
	Long:  `Nodes classifies every chunk and decodes directive blocks; no output is opened`,
	Args:  cobra.ExactArgs(1),
	RunE:  runNodes,
}

func init() {
	for _, cmd := range []*cobra.Command{lexCmd, nodesCmd} {
		cmd.Flags().String("format", "pretty", "output format (pretty|json)")
		cmd.Flags().Bool("nfc", false, "normalize input to Unicode NFC")
	}
}

func runLex(cmd *cobra.Command, args []string) error {
	return runInspect(cmd, args[0], false)
}

func runNodes(cmd *cobra.Command, args []string) error {
	return runInspect(cmd, args[0], true)
}

func runInspect(cmd *cobra.Command, path string, withNodes bool) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	nfc, err := cmd.Flags().GetBool("nfc")
	if err != nil {
		return fmt.Errorf("failed to get nfc flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	inspect := driver.Lex
	if withNodes {
		inspect = driver.Nodes
	}
	result, runErr := inspect(path, nfc, maxDiagnostics)
	if result == nil {
		return fmt.Errorf("cannot read %s: %w", path, runErr)
	}

	// Выводим диагностику в stderr, если есть
	if err := printDiagnostics(cmd, os.Stderr, result.Bag, result.FileSet, diagFormatPretty); err != nil {
		return err
	}
	if runErr != nil {
		return fmt.Errorf("%s: %w", path, runErr)
	}

	switch {
	case withNodes && format == "json":
		return diagfmt.FormatNodesJSON(os.Stdout, result.Nodes, result.FileSet)
	case withNodes:
		return diagfmt.FormatNodesPretty(os.Stdout, result.Nodes, result.FileSet)
	case format == "json":
		return diagfmt.FormatChunksJSON(os.Stdout, result.Chunks, result.FileSet)
	default:
		return diagfmt.FormatChunksPretty(os.Stdout, result.Chunks, result.FileSet)
	}
}
