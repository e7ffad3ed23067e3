package internal

import (
	"context"
	"time"
)

type ctxKey string

const (
	contextUserKey ctxKey = "userID"
	contextMetaKey ctxKey = "requestMeta"
)

// RequestMeta carries per-request client metadata used by audit records.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	userID, ok := ctx.Value(contextUserKey).(string)
	return userID, ok && userID != ""
}

func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, contextUserKey, userID)
}

func RequestMetaFromContext(ctx context.Context) RequestMeta {
	if ctx == nil {
		return RequestMeta{}
	}
	if meta, ok := ctx.Value(contextMetaKey).(RequestMeta); ok {
		return meta
	}
	return RequestMeta{}
}

func ContextWithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, contextMetaKey, meta)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
