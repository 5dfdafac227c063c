package driver

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"ezlatexdoc/internal/diag"
	"ezlatexdoc/internal/lexer"
	"ezlatexdoc/internal/observ"
	"ezlatexdoc/internal/parser"
	"ezlatexdoc/internal/process"
	"ezlatexdoc/internal/sink"
	"ezlatexdoc/internal/source"
	"ezlatexdoc/internal/trace"
)

// StripOptions configures one run of the pipeline.
type StripOptions struct {
	// BaseDir resolves relative destination names; "" means the directory
	// of the input document.
	BaseDir string
	// SrcOutput and DocOutput are bound before the first node, as if the
	// document started with a directive naming them. Empty means unbound.
	SrcOutput string
	DocOutput string

	NFC            bool
	DryRun         bool // destinations go to memory
	MaxDiagnostics int
	Stdout         io.Writer // куда пишет destination "-", nil — os.Stdout

	// Opener overrides destination resolution entirely (tests).
	Opener   sink.Opener
	Progress ProgressSink
}

// StripResult is the outcome of one document.
type StripResult struct {
	Path    string
	FileSet *source.FileSet
	File    *source.File // nil when loading failed
	Bag     *diag.Bag
	Outputs []process.Output
	Created []string     // files created on disk
	Memory  *sink.Memory // non-nil for dry runs
	Timer   *observ.Timer
	Err     error // terminal error, also present in Bag
}

// Failed reports whether the document produced an error.
func (r *StripResult) Failed() bool {
	return r.Err != nil || r.Bag.HasErrors()
}

// Strip loads path and runs it through lex → build → process.
func Strip(ctx context.Context, path string, opts StripOptions) *StripResult {
	fs := source.NewFileSetWithBase(filepath.Dir(path))
	res := &StripResult{
		Path:    path,
		FileSet: fs,
		Bag:     diag.NewBag(opts.MaxDiagnostics),
		Timer:   observ.NewTimer(),
	}

	emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusWorking})
	idx := res.Timer.Begin(string(StageLoad))
	fileID, err := fs.LoadWith(path, source.LoadOptions{NFC: opts.NFC})
	res.Timer.End(idx, "")
	if err != nil {
		res.Err = fmt.Errorf("load %s: %w", path, err)
		res.Bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: source.NoFile}, res.Err.Error()))
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: res.Err})
		return res
	}
	res.File = fs.Get(fileID)
	runDocument(ctx, res, opts)
	return res
}

// StripSource runs the pipeline over a document that is already loaded
// (stdin, tests). Relative destinations resolve against opts.BaseDir.
func StripSource(ctx context.Context, fs *source.FileSet, file *source.File, opts StripOptions) *StripResult {
	res := &StripResult{
		Path:    file.Path,
		FileSet: fs,
		File:    file,
		Bag:     diag.NewBag(opts.MaxDiagnostics),
		Timer:   observ.NewTimer(),
	}
	runDocument(ctx, res, opts)
	return res
}

// StdinName is the input argument that reads a document from standard input.
const StdinName = "-"

// StripReader reads a whole document from r, registers it as a virtual file
// called name and runs it through StripSource. Without opts.BaseDir relative
// destinations resolve against the working directory.
func StripReader(ctx context.Context, name string, r io.Reader, opts StripOptions) *StripResult {
	fs := source.NewFileSetWithBase(opts.BaseDir)
	data, err := io.ReadAll(r)
	if err != nil {
		res := &StripResult{
			Path:    name,
			FileSet: fs,
			Bag:     diag.NewBag(opts.MaxDiagnostics),
			Timer:   observ.NewTimer(),
			Err:     fmt.Errorf("read %s: %w", name, err),
		}
		res.Bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: source.NoFile}, res.Err.Error()))
		emit(opts.Progress, Event{File: name, Stage: StageLoad, Status: StatusError, Err: res.Err})
		return res
	}
	if opts.BaseDir == "" {
		if opts.BaseDir, err = os.Getwd(); err != nil {
			opts.BaseDir = "."
		}
	}
	id := fs.AddVirtualWith(name, data, source.LoadOptions{NFC: opts.NFC})
	return StripSource(ctx, fs, fs.Get(id), opts)
}

func runDocument(ctx context.Context, res *StripResult, opts StripOptions) {
	tracer := trace.FromContext(ctx)
	docSpan := trace.Begin(tracer, trace.ScopeDocument, "document:"+res.File.Path, trace.ParentID(ctx))
	started := time.Now()

	opener, fileOpener := chooseOpener(res, opts)
	stage, err := pipeline(res, opener, tracer, docSpan.ID(), opts)
	if fileOpener != nil {
		res.Created = fileOpener.Created()
	}

	if err != nil {
		res.Err = err
		if d := errorDiagnostic(err); d != nil {
			res.Bag.Add(d)
		}
		docSpan.WithExtra("stage", string(stage)).End(err.Error())
		emit(opts.Progress, Event{File: res.Path, Stage: stage, Status: StatusError, Err: err, Elapsed: time.Since(started)})
		return
	}
	docSpan.End("")
	emit(opts.Progress, Event{File: res.Path, Stage: StageProcess, Status: StatusDone, Elapsed: time.Since(started)})
}

func chooseOpener(res *StripResult, opts StripOptions) (sink.Opener, *sink.FileOpener) {
	switch {
	case opts.Opener != nil:
		return opts.Opener, nil
	case opts.DryRun:
		res.Memory = sink.NewMemory()
		return res.Memory, nil
	}
	base := opts.BaseDir
	if base == "" {
		base = filepath.Dir(res.Path)
	}
	fo := &sink.FileOpener{BaseDir: base, Stdout: opts.Stdout}
	return fo, fo
}

// pipeline returns the stage that failed together with the error.
func pipeline(res *StripResult, opener sink.Opener, tracer trace.Tracer, parent uint64, opts StripOptions) (Stage, error) {
	reporter := (&lexer.ReporterAdapter{Bag: res.Bag}).Reporter()

	// lex
	emit(opts.Progress, Event{File: res.Path, Stage: StageLex, Status: StatusWorking})
	span := trace.Begin(tracer, trace.ScopePass, string(StageLex), parent)
	idx := res.Timer.Begin(string(StageLex))
	chunks, err := lexer.Lex(res.File, lexer.Options{Reporter: reporter})
	res.Timer.End(idx, fmt.Sprintf("%d chunks", len(chunks)))
	span.End("")
	if err != nil {
		return StageLex, err
	}

	// build
	emit(opts.Progress, Event{File: res.Path, Stage: StageBuild, Status: StatusWorking})
	span = trace.Begin(tracer, trace.ScopePass, string(StageBuild), parent)
	idx = res.Timer.Begin(string(StageBuild))
	nodes, err := parser.Build(chunks, parser.Options{Reporter: reporter})
	res.Timer.End(idx, fmt.Sprintf("%d nodes", len(nodes)))
	span.End("")
	if err != nil {
		return StageBuild, err
	}

	// process
	emit(opts.Progress, Event{File: res.Path, Stage: StageProcess, Status: StatusWorking})
	span = trace.Begin(tracer, trace.ScopePass, string(StageProcess), parent)
	idx = res.Timer.Begin(string(StageProcess))
	p := process.New(opener, process.Options{Tracer: tracer, Parent: span.ID()})
	err = processNodes(p, nodes, opts)
	res.Outputs = p.Outputs()
	res.Timer.End(idx, fmt.Sprintf("%d outputs", len(res.Outputs)))
	span.End("")
	if err != nil {
		return StageProcess, err
	}
	return StageProcess, nil
}

// processNodes applies initial bindings and nodes, then always finishes
// the processor so every opened destination is closed. The first error wins.
func processNodes(p *process.Processor, nodes []parser.Node, opts StripOptions) error {
	err := bindInitial(p, opts)
	if err == nil {
		for _, n := range nodes {
			if err = p.Process(n); err != nil {
				break
			}
		}
	}
	if finishErr := p.Finish(); err == nil {
		err = finishErr
	}
	return err
}

func bindInitial(p *process.Processor, opts StripOptions) error {
	if opts.SrcOutput != "" {
		if err := p.Bind(process.DestSource, opts.SrcOutput, source.Span{}); err != nil {
			return err
		}
	}
	if opts.DocOutput != "" {
		if err := p.Bind(process.DestDoc, opts.DocOutput, source.Span{}); err != nil {
			return err
		}
	}
	return nil
}
