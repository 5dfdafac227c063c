package trace

import "context"

type ctxKey struct{}

// FromContext extracts the Tracer from context.
// If not found, returns Nop tracer.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(ctxKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer attaches a Tracer to context.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, t)
}

type parentKey struct{}

// WithParent records span as the parent for spans started further down
// the call chain.
func WithParent(ctx context.Context, span *Span) context.Context {
	return context.WithValue(ctx, parentKey{}, span.ID())
}

// ParentID returns the span ID stored by WithParent, or 0.
func ParentID(ctx context.Context) uint64 {
	if ctx == nil {
		return 0
	}
	id, _ := ctx.Value(parentKey{}).(uint64)
	return id
}
