package logging

import (
	"context"
	"strings"
)

// Redacted replaces the value of sensitive keys.
const Redacted = "[REDACTED]"

var sensitiveKeys = map[string]struct{}{
	"password":      {},
	"password_hash": {},
	"passwordhash":  {},
	"token":         {},
	"authorization": {},
	"secret":        {},
	"secret_key":    {},
}

// redact masks the values of sensitive keys in a key-value list. The input
// is not modified.
func redact(args []any) []any {
	var out []any
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		if _, bad := sensitiveKeys[strings.ToLower(key)]; !bad {
			continue
		}
		if out == nil {
			out = make([]any, len(args))
			copy(out, args)
		}
		out[i+1] = Redacted
	}
	if out == nil {
		return args
	}
	return out
}

type requestIDKey struct{}

// WithRequestID returns a copy of ctx whose log lines carry request_id.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id stored by WithRequestID.
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// contextArgs appends request-scoped fields from ctx to args.
func contextArgs(ctx context.Context, args []any) []any {
	args = redact(args)
	if id := RequestID(ctx); id != "" {
		args = append(args[:len(args):len(args)], "request_id", id)
	}
	return args
}
