// Package diag defines the diagnostic model shared by all pipeline phases.
//
// # Purpose
//
//   - Provide deterministic data structures that capture failures produced by
//     the lexer, the directive decoder, the node builder and the processor.
//   - Offer light-weight utilities (Reporter, Bag, ReportBuilder) that let
//     producers emit diagnostics without coupling to storage or formatting.
//
// # Scope
//
// Package diag does not perform any IO or terminal formatting. Rendering lives
// in internal/diagfmt; the driver decides which errors become diagnostics.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form
//     such as LEX1001 or OUT3001.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the source.Span pointing to the offending region.
//   - Notes – optional secondary spans/messages for additional context.
//
// Every error that aborts a document maps to exactly one error diagnostic, so a
// Bag for a failed document is never empty.
package diag
