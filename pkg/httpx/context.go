package httpx

import "context"

type ctxKey string

// CtxKeySubject carries the authenticated principal id for downstream
// handlers and per-user rate limiting.
const CtxKeySubject ctxKey = "subject"

// ContextWithSubject records the authenticated subject on the context.
func ContextWithSubject(ctx context.Context, sub string) context.Context {
	return context.WithValue(ctx, CtxKeySubject, sub)
}

// SubjectFromContext returns the authenticated subject, or "" when the
// request is unauthenticated.
func SubjectFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeySubject).(string); ok {
		return v
	}
	return ""
}
