package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"mdvault/internal/auth"
	"mdvault/internal/httputil"
)

// Auth resolves the caller from the Authorization bearer token and stores the
// user ID and raw token in the request context. With a nil verifier every
// request runs as devUserID; the token, if any, is still forwarded.
func Auth(verifier auth.TokenVerifier, devUserID string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Health and metrics stay public for probes and scrapers
			if r.URL.Path == "/health" || r.URL.Path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r)

			if verifier == nil {
				r = httputil.WithToken(httputil.WithUserID(r, devUserID), token)
				next.ServeHTTP(w, r)
				return
			}

			if token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				logger.Debug("authentication failed", "path", r.URL.Path, "error", err)
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			r = httputil.WithToken(httputil.WithUserID(r, claims.GetUserID()), token)
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
