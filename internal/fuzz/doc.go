// Package fuzztests houses Go fuzz harnesses that push arbitrary bytes
// through the document pipeline (source -> lexer -> node builder ->
// processor). Its goal is to smoke test robustness and guard against panics
// and broken span invariants on arbitrary inputs.
//
// Назначение: загружать байты в FileSet и прогонять их через лексер,
// построитель узлов и процессор с выходами в памяти.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser,
// internal/process, internal/sink, internal/testkit.

package fuzztests
