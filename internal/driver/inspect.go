package driver

import (
	"ezlatexdoc/internal/diag"
	"ezlatexdoc/internal/lexer"
	"ezlatexdoc/internal/parser"
	"ezlatexdoc/internal/source"
	"ezlatexdoc/internal/token"
)

// InspectResult holds the chunks (and nodes, for Nodes) of one document.
// Nothing is opened or written.
type InspectResult struct {
	FileSet *source.FileSet
	File    *source.File
	Chunks  []token.Chunk
	Nodes   []parser.Node
	Bag     *diag.Bag
}

// Lex loads path and splits it into chunks. Lex errors land in the Bag and
// are returned as well; I/O errors are only returned.
func Lex(path string, nfc bool, maxDiagnostics int) (*InspectResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.LoadWith(path, source.LoadOptions{NFC: nfc})
	if err != nil {
		return nil, err
	}
	res := &InspectResult{
		FileSet: fs,
		File:    fs.Get(fileID),
		Bag:     diag.NewBag(maxDiagnostics),
	}
	reporterAdapter := &lexer.ReporterAdapter{Bag: res.Bag}
	res.Chunks, err = lexer.Lex(res.File, lexer.Options{Reporter: reporterAdapter.Reporter()})
	return res, err
}

// Nodes is Lex followed by the node builder.
func Nodes(path string, nfc bool, maxDiagnostics int) (*InspectResult, error) {
	res, err := Lex(path, nfc, maxDiagnostics)
	if err != nil {
		return res, err
	}
	reporterAdapter := &lexer.ReporterAdapter{Bag: res.Bag}
	res.Nodes, err = parser.Build(res.Chunks, parser.Options{Reporter: reporterAdapter.Reporter()})
	return res, err
}
