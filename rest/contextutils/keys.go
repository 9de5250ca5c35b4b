package contextutils

import (
	"context"
)

// contextKey is the wrapper we use for the names of the keys we store in Contexts
type contextKey struct {
	name string
}

var contextKeyRequestId = &contextKey{"requestId"}

// WithRequestId adds the request id to the context
func WithRequestId(ctx context.Context, requestId string) context.Context {
	return withContextKeyVal(ctx, contextKeyRequestId, requestId)
}

func withContextKeyVal(ctx context.Context, key *contextKey, val string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, key, val)
}

// GetRequestId returns the request id stored in the context, or an empty string.
func GetRequestId(ctx context.Context) string {
	return getContextKey(ctx, contextKeyRequestId)
}

func getContextKey(ctx context.Context, key *contextKey) string {
	if ctx == nil {
		return ""
	}
	val, _ := ctx.Value(key).(string)
	return val
}
