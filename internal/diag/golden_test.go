package diag

import (
	"testing"

	"ezlatexdoc/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSetWithBase("/workspace")

	doc := fs.AddVirtual("pkg.dtx", []byte("a\nb\n"))

	diags := []*Diagnostic{
		{
			Severity: SevWarning,
			Code:     DirUnknownKey,
			Message:  "another",
			Primary:  source.Span{File: doc, Start: 2, End: 3},
		},
		{
			Severity: SevError,
			Code:     OutUnboundSource,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: doc, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: doc, Start: 2, End: 3}, Msg: "note line"},
				{Span: source.Span{File: 42}, Msg: "dangling file id"},
			},
		},
	}

	expected := "error OUT3001 pkg.dtx:1:1 first line second\n" +
		"note OUT3001 pkg.dtx:2:1 note line\n" +
		"warning DIR2002 pkg.dtx:2:1 another"

	if got := FormatGoldenDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}

	if got := FormatGoldenDiagnostics(nil, fs, true); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestBagLimitAndSort(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(NewError(IOWriteOutput, source.Span{Start: 9}, "late")) {
		t.Fatal("first Add must succeed")
	}
	bag.Add(New(SevWarning, DirInfo, source.Span{Start: 1}, "early"))
	if bag.Add(NewError(LexDanglingEscape, source.Span{}, "overflow")) {
		t.Fatal("Add beyond limit must fail")
	}
	if bag.Len() != 2 || !bag.HasErrors() {
		t.Fatalf("unexpected bag state: len=%d", bag.Len())
	}

	bag.Sort()
	if bag.Items()[0].Message != "early" {
		t.Fatalf("expected sorted by start offset, got %q first", bag.Items()[0].Message)
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(10)
	b := ReportError(BagReporter{Bag: bag}, DirMalformed, source.Span{Start: 3, End: 4}, "bad").
		WithNote(source.Span{Start: 0, End: 1}, "block starts here")
	b.Emit()
	b.Emit()

	if bag.Len() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if d.Code != DirMalformed || len(d.Notes) != 1 {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
}

func TestCodeIDs(t *testing.T) {
	tests := map[Code]string{
		LexDanglingEscape: "LEX1001",
		DirMalformed:      "DIR2001",
		OutUnboundDoc:     "OUT3002",
		IOOutputExists:    "IO4003",
		UnknownCode:       "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %s, want %s", code, got, want)
		}
	}
	if Code(1999).Title() != "Unknown error" {
		t.Errorf("unknown code must fall back to the default title")
	}
}
