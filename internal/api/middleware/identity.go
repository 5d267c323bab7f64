package middleware

import (
	"context"
	"net/http"

	"course_exchange/internal/common"
)

type contextKey string

const CallerIDCtxKey contextKey = "callerID"

// Identity extracts the caller-supplied `user` parameter and threads it
// through the request context. The id is trusted verbatim; the exchange
// protocol carries no credentials, which is a known weakness of the upstream
// design rather than an oversight here.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callerID := r.URL.Query().Get("user")
		if callerID == "" {
			common.RespondWithError(w, common.Invalidf("Please supply user"))
			return
		}
		ctx := context.WithValue(r.Context(), CallerIDCtxKey, callerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetCallerIDFromContext returns the caller id set by Identity.
func GetCallerIDFromContext(ctx context.Context) (string, bool) {
	callerID, ok := ctx.Value(CallerIDCtxKey).(string)
	return callerID, ok
}
