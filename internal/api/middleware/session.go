package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

const SessionHeader = "X-Session-ID"

type sessionContextKey string

const SessionKey = sessionContextKey("session")

const maxSessionIDLength = 128

// Session resolves the cart session of the caller from the X-Session-ID
// header, issuing a new one when the header is absent or unusable. The id in
// use is always echoed back.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.Header.Get(SessionHeader)
		if sessionID == "" || len(sessionID) > maxSessionIDLength {
			sessionID = uuid.NewString()
		}

		w.Header().Set(SessionHeader, sessionID)

		ctx := WithSession(r.Context(), sessionID)
		logger := LoggerFromContext(ctx).With(slog.String("session_id", sessionID))
		ctx = WithLogger(ctx, logger)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func WithSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, SessionKey, sessionID)
}

func SessionFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(SessionKey).(string)

	return sessionID, ok && sessionID != ""
}

// MustSession panics when the request did not pass through Session; that is
// a wiring bug, not a client error.
func MustSession(ctx context.Context) string {
	sessionID, ok := SessionFromContext(ctx)
	if !ok {
		panic("middleware: no session in context, Session middleware is not installed")
	}

	return sessionID
}
