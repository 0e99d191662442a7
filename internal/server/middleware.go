package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/meltforce/gkmanager/internal/auth"
)

type contextKey int

const accountKey contextKey = iota

// accountFromContext returns the account set by AccountAuth. Handlers behind
// the middleware can rely on it being non-empty.
func accountFromContext(r *http.Request) string {
	if account, ok := r.Context().Value(accountKey).(string); ok {
		return account
	}
	return ""
}

// AccountAuth returns middleware that validates Basic credentials against
// the account directory and stores the account name in the request context.
func AccountAuth(dir *auth.Directory) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok {
				w.Header().Set("WWW-Authenticate", `Basic realm="gkmanager"`)
				http.Error(w, `{"error":"missing credentials"}`, http.StatusUnauthorized)
				return
			}
			if !dir.Verify(r.Context(), username, password) {
				http.Error(w, `{"error":"invalid credentials"}`, http.StatusForbidden)
				return
			}
			ctx := context.WithValue(r.Context(), accountKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestLogging returns middleware that logs each request.
func RequestLogging(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration", time.Since(start).String(),
			)
		})
	}
}

// CORS adds permissive CORS headers for local development.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusWriter wraps ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
