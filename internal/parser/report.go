package parser

import (
	"errors"

	"ezlatexdoc/internal/diag"
	"ezlatexdoc/internal/directive"
)

func reportBuildError(r diag.Reporter, err error) {
	if r == nil {
		return
	}
	var derr *directive.Error
	if !errors.As(err, &derr) {
		return
	}
	b := diag.ReportError(r, derr.Code, derr.Span, derr.Error())
	if derr.Code == diag.DirUnknownKey {
		b.WithNote(derr.Span, "only src_output and doc_output are recognised")
	}
	b.Emit()
}
