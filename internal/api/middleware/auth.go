package middleware

import (
	"context"
	"net/http"

	"github.com/villidata/newfork/internal/api/handlers"
)

type contextKey string

const userIDKey contextKey = "userID"

// HeaderUserID carries the authenticated admin identity. The gateway in
// front of this service validates the credential; here the header just has
// to be present.
const HeaderUserID = "X-User-ID"

// Auth rejects requests without the X-User-ID header
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(HeaderUserID)
		if userID == "" {
			handlers.RespondUnauthorized(w, "missing X-User-ID header")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext returns the admin identity set by Auth
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok
}
