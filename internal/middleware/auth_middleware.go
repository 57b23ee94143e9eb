package middleware

import (
	"DonaTalkAPI/internal/config"
	"DonaTalkAPI/internal/helper"
	"DonaTalkAPI/internal/model"
	"context"
	"net/http"
	"strings"
)

type contextKey string

const UserContextKey contextKey = "userContext"

type UserVerifier interface {
	VerifyUser(ctx context.Context, token string) (*model.UserDTO, error)
}

type AuthMiddleware struct {
	verifier   UserVerifier
	cookieName string
}

func NewAuthMiddleware(verifier UserVerifier, cfg *config.AppConfig) *AuthMiddleware {
	return &AuthMiddleware{
		verifier:   verifier,
		cookieName: cfg.JWTCookieName,
	}
}

// VerifyToken accepts the identity cookie or a bearer token, cookie first.
func (m *AuthMiddleware) VerifyToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := m.tokenFromRequest(r)
		if tokenString == "" {
			helper.WriteError(w, helper.NewUnauthorizedError("not authorized, no token"))
			return
		}

		userContext, err := m.verifier.VerifyUser(r.Context(), tokenString)
		if err != nil {
			helper.WriteError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, userContext)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(m.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return strings.TrimSpace(parts[1])
	}

	return ""
}

func UserFromContext(ctx context.Context) (*model.UserDTO, bool) {
	user, ok := ctx.Value(UserContextKey).(*model.UserDTO)
	return user, ok && user != nil
}

func WithUser(ctx context.Context, user *model.UserDTO) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}
