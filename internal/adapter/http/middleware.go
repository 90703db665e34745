package adapthttp

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/WTomoharu/db-final-project/internal/app"
	"github.com/WTomoharu/db-final-project/internal/domain"
)

type contextKey string

const userContextKey contextKey = "user"

// requireAuth resolves the session cookie to a user before calling next.
// Missing or unknown tokens fail with 401; a stale session whose user row
// is gone fails with 404, matching the gate's two failure kinds.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.sessionUser(r)
		if errors.Is(err, app.ErrNotAuthenticated) {
			writeError(w, http.StatusUnauthorized, err)
			return
		}
		if errors.Is(err, app.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

// sessionUser resolves the request's session cookie, if any.
func (s *Server) sessionUser(r *http.Request) (*domain.User, error) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil, app.ErrNotAuthenticated
	}
	return s.auth.ResolveSession(r.Context(), cookie.Value)
}

func userFrom(r *http.Request) *domain.User {
	user, _ := r.Context().Value(userContextKey).(*domain.User)
	return user
}

// withLogging wraps a handler with request logging.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
