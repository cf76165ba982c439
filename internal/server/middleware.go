package server

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/mmynk/planboard/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const claimsKey contextKey = "claims"

// sessionClaims extracts the validated session claims from the context.
// Returns nil outside of authenticated routes.
func sessionClaims(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey).(*auth.Claims)
	return claims
}

// requireAuth validates the bearer token and stores the session claims in
// the request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			s.writeError(w, http.StatusUnauthorized, auth.ErrMissingToken.Error())
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			s.writeError(w, http.StatusUnauthorized, auth.ErrInvalidToken.Error())
			return
		}

		claims, err := s.jwt.Validate(parts[1])
		if err != nil {
			s.writeError(w, http.StatusUnauthorized, auth.ErrInvalidToken.Error())
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin rejects sessions without the admin claim. Must run after
// requireAuth.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := sessionClaims(r.Context())
		if claims == nil || !claims.IsAdmin {
			s.writeError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs every request with its status and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.LogAttrs(r.Context(), slog.LevelInfo, "Request completed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
	})
}
