// Package trace provides structured tracing for ezlatexdoc runs.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	ezlatexdoc strip --trace=- --trace-level=detail pkg.dtx
//
// # Architecture
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: immediate write to output (file/stderr)
//   - RingTracer: circular buffer, dumped when a document fails
//   - MultiTracer: combines several tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: ring dumps only
//   - LevelPhase: driver and pass boundaries (lex, build, process)
//   - LevelDetail: adds one span per document
//   - LevelDebug: everything, including per-node points such as rebinding
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "lex", parentID)
//	defer span.End("")
package trace
