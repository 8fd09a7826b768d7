package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type ridCtxKey int

const ridKey ridCtxKey = 2

// RequestID assigns each request an identifier, honoring an inbound
// X-Request-Id so upstream proxies can correlate, and echoes it back on the
// response. The id ends up in log lines and in error envelopes.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get("X-Request-Id")
		if rid == "" {
			rid = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", rid)
		ctx := context.WithValue(r.Context(), ridKey, rid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func RequestIDFromContext(ctx context.Context) string {
	if rid, ok := ctx.Value(ridKey).(string); ok {
		return rid
	}
	return ""
}
