package driver

import (
	"errors"
	"io/fs"

	"ezlatexdoc/internal/diag"
	"ezlatexdoc/internal/directive"
	"ezlatexdoc/internal/lexer"
	"ezlatexdoc/internal/process"
	"ezlatexdoc/internal/source"
)

// errorDiagnostic turns a terminal pipeline error into a diagnostic.
// Lexer and directive errors are reported by their passes already and map
// to nil here.
func errorDiagnostic(err error) *diag.Diagnostic {
	var (
		lexErr   *lexer.Error
		dirErr   *directive.Error
		unbound  *process.UnboundError
		openErr  *process.OpenError
		writeErr *process.WriteError
	)
	noSpan := source.Span{File: source.NoFile}
	switch {
	case err == nil, errors.As(err, &lexErr), errors.As(err, &dirErr):
		return nil

	case errors.As(err, &unbound):
		code := diag.OutUnboundSource
		if unbound.Dest == process.DestDoc {
			code = diag.OutUnboundDoc
		}
		return diag.NewError(code, unbound.Span, err.Error()).
			WithNote(noSpan, "bind it first, e.g. `%%% "+unbound.Dest.String()+" = \"out.tex\"` or --"+flagFor(unbound.Dest))

	case errors.As(err, &openErr):
		sp := spanOrNone(openErr.Span)
		if errors.Is(err, fs.ErrExist) {
			return diag.NewError(diag.IOOutputExists, sp, err.Error()).
				WithNote(noSpan, "outputs are never overwritten; remove it or run `ezlatexdoc clean`")
		}
		return diag.NewError(diag.IOOpenOutput, sp, err.Error())

	case errors.As(err, &writeErr):
		return diag.NewError(diag.IOWriteOutput, spanOrNone(writeErr.Span), err.Error())

	default:
		return diag.NewError(diag.UnknownCode, noSpan, err.Error())
	}
}

func flagFor(d process.Dest) string {
	if d == process.DestDoc {
		return "doc-output"
	}
	return "src-output"
}

// spanOrNone hides the zero span used for initial bindings and Finish.
func spanOrNone(sp source.Span) source.Span {
	if sp == (source.Span{}) {
		return source.Span{File: source.NoFile}
	}
	return sp
}
