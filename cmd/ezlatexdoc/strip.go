package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"ezlatexdoc/internal/driver"
	"ezlatexdoc/internal/project"
	"ezlatexdoc/internal/trace"
)

// stdinDocName names the document read from standard input in diagnostics.
const stdinDocName = "<stdin>"

const noInputsMessage = "no input documents: pass FILE arguments or list them under [run].inputs in " + project.ManifestName

var stripCmd = &cobra.Command{
	Use:   "strip [flags] [file.dtx... | -]",
	Short: "Route source and documentation of annotated documents to their outputs",
	Long: `Strip reads each document, follows its src_output / doc_output directives and
writes source lines and documentation comments to the named files.
Existing files are never overwritten. A single "-" reads the document from
standard input; its relative destinations resolve against --base-dir or the
working directory.`,
	RunE: runStrip,
}

func init() {
	registerStripFlags(stripCmd)
}

func registerStripFlags(cmd *cobra.Command) {
	cmd.Flags().String("src-output", "", "initial source destination (- for stdout)")
	cmd.Flags().String("doc-output", "", "initial documentation destination (- for stdout)")
	cmd.Flags().String("base-dir", "", "directory for relative destination names")
	cmd.Flags().Int("jobs", 0, "documents processed in parallel (0 = GOMAXPROCS)")
	cmd.Flags().String("ui", "auto", "user interface (auto|on|off)")
	cmd.Flags().Bool("nfc", false, "normalize input to Unicode NFC")
	cmd.Flags().Bool("dry-run", false, "keep outputs in memory and only report them")
	cmd.Flags().String("format", "pretty", "diagnostics format (pretty|json)")
	cmd.Flags().Bool("no-record", false, "do not remember created files for clean")
}

// stripSettings is the merge of flags and the project manifest.
type stripSettings struct {
	inputs    []string
	srcOutput string
	docOutput string
	baseDir   string
	jobs      int
	nfc       bool
}

func runStrip(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return err
	}
	formatValue, err := flags.GetString("format")
	if err != nil {
		return err
	}
	dryRun, err := flags.GetBool("dry-run")
	if err != nil {
		return err
	}
	noRecord, err := flags.GetBool("no-record")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	view, err := parseProgressView(uiValue)
	if err != nil {
		return err
	}
	format, err := readDiagFormat(formatValue)
	if err != nil {
		return err
	}

	manifest, _, err := project.Load(".")
	if err != nil {
		return err
	}
	settings, err := mergeStripSettings(cmd, args, manifest)
	if err != nil {
		return err
	}

	tracer, cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	opts := driver.StripOptions{
		BaseDir:        settings.baseDir,
		SrcOutput:      settings.srcOutput,
		DocOutput:      settings.docOutput,
		NFC:            settings.nfc,
		DryRun:         dryRun,
		MaxDiagnostics: maxDiagnostics,
	}

	var results []*driver.StripResult
	switch {
	case settings.fromStdin():
		results = []*driver.StripResult{driver.StripReader(cmd.Context(), stdinDocName, cmd.InOrStdin(), opts)}
	case view.enabled(len(settings.inputs), isTerminal(os.Stderr)):
		results, err = runStripWithUI(cmd.Context(), "ezlatexdoc strip", settings.inputs, settings.jobs, opts, os.Stdout)
	default:
		results, err = driver.StripAll(cmd.Context(), settings.inputs, settings.jobs, opts)
	}
	if err != nil {
		return err
	}

	report := reportStrip(cmd, results, format, dryRun, quiet)
	if timings {
		printTimings(os.Stderr, results)
	}
	if !dryRun && !noRecord {
		recordOutputs(cmd.ErrOrStderr(), results, quiet)
	}
	if report.failed > 0 {
		if ring := trace.RingOf(tracer); ring != nil {
			fmt.Fprintln(os.Stderr, "trace (last events):")
			if dumpErr := ring.Dump(os.Stderr); dumpErr != nil {
				fmt.Fprintf(os.Stderr, "trace: dump error: %v\n", dumpErr)
			}
		}
		return fmt.Errorf("%d of %d documents failed", report.failed, len(results))
	}
	return nil
}

func mergeStripSettings(cmd *cobra.Command, args []string, manifest *project.Manifest) (stripSettings, error) {
	flags := cmd.Flags()
	var s stripSettings
	var err error
	if s.srcOutput, err = flags.GetString("src-output"); err != nil {
		return s, err
	}
	if s.docOutput, err = flags.GetString("doc-output"); err != nil {
		return s, err
	}
	if s.baseDir, err = flags.GetString("base-dir"); err != nil {
		return s, err
	}
	if s.jobs, err = flags.GetInt("jobs"); err != nil {
		return s, err
	}
	if s.nfc, err = flags.GetBool("nfc"); err != nil {
		return s, err
	}
	s.inputs = args

	if manifest != nil {
		cfg := manifest.Config
		if !flags.Changed("src-output") {
			s.srcOutput = cfg.Output.Src
		}
		if !flags.Changed("doc-output") {
			s.docOutput = cfg.Output.Doc
		}
		if !flags.Changed("base-dir") {
			s.baseDir = manifest.OutputDir()
		}
		if !flags.Changed("jobs") {
			s.jobs = cfg.Run.Jobs
		}
		if !flags.Changed("nfc") && manifest.HasNFC {
			s.nfc = cfg.Output.NFC
		}
		if len(s.inputs) == 0 {
			s.inputs = manifest.InputPaths()
		}
	}
	if len(s.inputs) == 0 {
		return s, errors.New(noInputsMessage)
	}
	if s.jobs < 0 {
		return s, fmt.Errorf("--jobs must not be negative, got %d", s.jobs)
	}
	if len(s.inputs) > 1 && slices.Contains(s.inputs, driver.StdinName) {
		return s, errors.New("standard input (-) cannot be combined with other documents")
	}
	return s, nil
}

func (s stripSettings) fromStdin() bool {
	return len(s.inputs) == 1 && s.inputs[0] == driver.StdinName
}

type stripReport struct {
	failed int
}

func reportStrip(cmd *cobra.Command, results []*driver.StripResult, format diagFormat, dryRun, quiet bool) stripReport {
	var report stripReport
	diagOut := io.Writer(os.Stderr)
	if format == diagFormatJSON {
		diagOut = os.Stdout
	}
	for _, res := range results {
		if res == nil {
			report.failed++
			continue
		}
		if err := printDiagnostics(cmd, diagOut, res.Bag, res.FileSet, format); err != nil {
			fmt.Fprintf(os.Stderr, "%s: cannot print diagnostics: %v\n", res.Path, err)
		}
		if res.Failed() {
			report.failed++
		}
		if quiet {
			continue
		}
		for _, out := range res.Outputs {
			verb := "wrote"
			if dryRun {
				verb = "would write"
			}
			fmt.Fprintf(os.Stderr, "%s: %s %s %s (%d bytes)\n", res.Path, verb, out.Dest, out.Name, out.Bytes)
		}
	}
	return report
}

func recordOutputs(errOut io.Writer, results []*driver.StripResult, quiet bool) {
	store, err := driver.OpenRecordStore("ezlatexdoc")
	if err != nil {
		if !quiet {
			fmt.Fprintf(errOut, "warning: output record disabled: %v\n", err)
		}
		return
	}
	for _, res := range results {
		// у stdin нет пути, по которому clean нашёл бы запись
		if res == nil || len(res.Created) == 0 || res.Path == stdinDocName {
			continue
		}
		if err := store.Remember(res.Path, res.Created, res.Failed()); err != nil && !quiet {
			fmt.Fprintf(errOut, "warning: %s: cannot record outputs: %v\n", res.Path, err)
		}
	}
}
