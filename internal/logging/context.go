package logging

import "context"

type contextKey string

const contextFieldsKey contextKey = "blogfront.logging.fields"

// FieldRequestID is the context field carrying the HTTP request identifier.
const FieldRequestID = "request_id"

// ContextWithFields returns a context carrying structured fields that loggers
// merge into every entry written with that context. Fields already present
// on ctx are kept unless overridden.
func ContextWithFields(ctx context.Context, fields map[string]any) context.Context {
	if ctx == nil || len(fields) == 0 {
		return ctx
	}

	existing := ContextFields(ctx)
	merged := make(map[string]any, len(existing)+len(fields))
	for key, value := range existing {
		merged[key] = value
	}
	for key, value := range fields {
		merged[key] = value
	}
	return context.WithValue(ctx, contextFieldsKey, merged)
}

// ContextWithRequestID annotates ctx with the request identifier field.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return ContextWithFields(ctx, map[string]any{FieldRequestID: id})
}

// RequestID returns the request identifier stored on ctx, if any.
func RequestID(ctx context.Context) string {
	value, _ := ContextFields(ctx)[FieldRequestID].(string)
	return value
}

// ContextFields returns a copy of the fields attached to ctx.
func ContextFields(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}
	fields, ok := ctx.Value(contextFieldsKey).(map[string]any)
	if !ok || len(fields) == 0 {
		return nil
	}

	copied := make(map[string]any, len(fields))
	for key, val := range fields {
		copied[key] = val
	}
	return copied
}
