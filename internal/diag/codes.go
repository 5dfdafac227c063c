package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo           Code = 1000
	LexDanglingEscape Code = 1001

	// Директивы
	DirInfo       Code = 2000
	DirMalformed  Code = 2001
	DirUnknownKey Code = 2002
	DirEmptyName  Code = 2003

	// Маршрутизация вывода
	OutInfo          Code = 3000
	OutUnboundSource Code = 3001
	OutUnboundDoc    Code = 3002

	// Ввод-вывод
	IOInfo          Code = 4000
	IOLoadFileError Code = 4001
	IOOpenOutput    Code = 4002
	IOOutputExists  Code = 4003
	IOWriteOutput   Code = 4004
)

var codeDescription = map[Code]string{
	UnknownCode:       "Unknown error",
	LexInfo:           "Lexical information",
	LexDanglingEscape: "Backslash with nothing to escape",
	DirInfo:           "Directive information",
	DirMalformed:      "Malformed directive block",
	DirUnknownKey:     "Unknown directive key",
	DirEmptyName:      "Empty destination name",
	OutInfo:           "Output information",
	OutUnboundSource:  "Source destination is not bound",
	OutUnboundDoc:     "Documentation destination is not bound",
	IOInfo:            "I/O information",
	IOLoadFileError:   "I/O load file error",
	IOOpenOutput:      "Cannot open output destination",
	IOOutputExists:    "Output destination already exists",
	IOWriteOutput:     "Cannot write output destination",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("DIR%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("OUT%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
