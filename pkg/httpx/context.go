package httpx

import "context"

type ctxKey string

// CtxKeySubject carries the authenticated subject (normalized email)
// through the request context.
const CtxKeySubject ctxKey = "subject"

// ContextWithSubject attaches the authenticated subject to ctx.
func ContextWithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, CtxKeySubject, subject)
}

// SubjectFromContext returns the authenticated subject, or "" when the
// request did not pass authentication middleware.
func SubjectFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeySubject).(string); ok {
		return v
	}
	return ""
}
