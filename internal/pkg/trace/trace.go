package trace

import "context"

type ctxKey struct{}

// WithID attaches a request trace id to the context. The id is carried
// explicitly through every service call rather than via ambient globals.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// ID returns the trace id attached to ctx, or "-" when none is set.
func ID(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKey{}).(string); ok && v != "" {
		return v
	}
	return "-"
}
