package api

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/lucasb/storyquest/internal/errors"
	"github.com/lucasb/storyquest/internal/logger"
	"github.com/lucasb/storyquest/internal/models"
)

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

type contextKey string

const (
	profileContextKey contextKey = "profile"
	profileCookieName            = "profile_id"
)

func profileFromContext(ctx context.Context) *models.Profile {
	if v := ctx.Value(profileContextKey); v != nil {
		if p, ok := v.(*models.Profile); ok {
			return p
		}
	}
	return nil
}

// profileMiddleware resolves the active kid profile from the cookie. Profile
// management and health probes work without one.
func (s *Server) profileMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if strings.HasPrefix(path, "/api/profiles") || strings.HasPrefix(path, "/healthz") || strings.HasPrefix(path, "/readyz") {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromContext(r.Context())
		cookie, err := r.Cookie(profileCookieName)
		if err != nil || cookie.Value == "" {
			handleError(w, r, errors.NewUnauthorizedError("no profile selected"))
			return
		}

		profileID, err := strconv.ParseInt(cookie.Value, 10, 64)
		if err != nil {
			log.Warn("invalid profile cookie, clearing")
			clearProfileCookie(w)
			handleError(w, r, errors.NewUnauthorizedError("invalid profile cookie"))
			return
		}

		profile, err := s.Profiles.Get(r.Context(), profileID)
		if err != nil {
			clearProfileCookie(w)
			handleError(w, r, errors.NewUnauthorizedError("profile no longer exists"))
			return
		}

		ctx := context.WithValue(r.Context(), profileContextKey, profile)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func clearProfileCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:    profileCookieName,
		Value:   "",
		Path:    "/",
		Expires: time.Unix(0, 0),
		MaxAge:  -1,
	})
}

func setProfileCookie(w http.ResponseWriter, id int64) {
	http.SetCookie(w, &http.Cookie{
		Name:     profileCookieName,
		Value:    strconv.FormatInt(id, 10),
		Path:     "/",
		Expires:  time.Now().Add(30 * 24 * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// generateRequestID creates a random request ID.
func generateRequestID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// loggingMiddleware logs HTTP requests with timing, status codes, and request IDs.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = generateRequestID()
		}

		log := logger.Default().WithFields(map[string]any{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
		})

		ctx := logger.NewContext(r.Context(), log)
		r = r.WithContext(ctx)

		w.Header().Set("X-Request-ID", requestID)

		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		log = log.WithFields(map[string]any{
			"status":      wrapped.status,
			"size":        wrapped.size,
			"duration_ms": duration.Milliseconds(),
		})

		if wrapped.status >= 500 {
			log.Error("request completed with server error")
		} else if wrapped.status >= 400 {
			log.Warn("request completed with client error")
		} else {
			log.Info("request completed")
		}
	})
}

// recoveryMiddleware recovers from panics and logs them.
func recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log := logger.FromContext(r.Context())
				log.Error("panic recovered: %v", rec)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
