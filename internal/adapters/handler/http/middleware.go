package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/vncsmyrnk/bookclub/internal/core/domain"
)

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	identityKey contextKey = "identity"
	logInfoKey  contextKey = "log_info"
)

const accessTokenCookie = "access_token"

// Authenticator verifies an access token.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.Identity, error)
}

type requestLogInfo struct {
	username string
}

// RequestLogger writes one line per request with the caller's username.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		info := &requestLogInfo{}
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), logInfoKey, info)))

		username := info.username
		if username == "" {
			username = "unauthenticated"
		}
		slog.InfoContext(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"user", username,
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// RequireAuth resolves the caller from a bearer token or the access token
// cookie.
func RequireAuth(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := auth.Authenticate(r.Context(), tokenFromRequest(r))
			if err != nil {
				ErrorResponse(w, r, err)
				return
			}

			if info, ok := r.Context().Value(logInfoKey).(*requestLogInfo); ok {
				info.username = identity.Username
			}

			ctx := context.WithValue(r.Context(), UserIDKey, identity.UserID)
			ctx = context.WithValue(ctx, identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := r.Context().Value(identityKey).(*domain.Identity)
		if !ok {
			ErrorResponse(w, r, domain.ErrMissingToken)
			return
		}
		if !identity.IsAdmin {
			ErrorResponse(w, r, domain.ErrAdminRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if cookie, err := r.Cookie(accessTokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}

func userIDFrom(r *http.Request) (uuid.UUID, error) {
	userID, ok := r.Context().Value(UserIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, domain.ErrMissingToken
	}
	return userID, nil
}
