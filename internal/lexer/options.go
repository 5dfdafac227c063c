package lexer

import (
	"ezlatexdoc/internal/diag"
	"ezlatexdoc/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil — тогда ошибка только возвращается из Lex
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
	}
}
