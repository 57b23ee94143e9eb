package middleware

import (
	"DonaTalkAPI/internal/config"
	"DonaTalkAPI/internal/helper"
	"DonaTalkAPI/internal/model"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type tokenTable map[string]*model.UserDTO

func (t tokenTable) VerifyUser(_ context.Context, token string) (*model.UserDTO, error) {
	if user, ok := t[token]; ok {
		return user, nil
	}
	return nil, helper.NewUnauthorizedError("not authorized, token failed")
}

func TestVerifyToken(t *testing.T) {
	alice := &model.UserDTO{ID: primitive.NewObjectID(), Name: "alice"}
	bob := &model.UserDTO{ID: primitive.NewObjectID(), Name: "bob"}
	m := NewAuthMiddleware(tokenTable{"alice-token": alice, "bob-token": bob}, &config.AppConfig{JWTCookieName: "jwt"})

	var seen *model.UserDTO
	handler := m.VerifyToken(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		require.True(t, ok)
		seen = user
		w.WriteHeader(http.StatusNoContent)
	}))

	serve := func(req *http.Request) *httptest.ResponseRecorder {
		seen = nil
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	t.Run("Bearer Header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer alice-token")

		rec := serve(req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, alice, seen)
	})

	t.Run("Cookie Wins Over Header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "jwt", Value: "bob-token"})
		req.Header.Set("Authorization", "Bearer alice-token")

		rec := serve(req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, bob, seen)
	})

	t.Run("Missing Token", func(t *testing.T) {
		rec := serve(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "not authorized, no token")
		assert.Nil(t, seen)
	})

	t.Run("Non Bearer Scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic alice-token")

		rec := serve(req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Nil(t, seen)
	})

	t.Run("Rejected Token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer stolen")

		rec := serve(req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "token failed")
	})
}

func TestUserFromContext(t *testing.T) {
	_, ok := UserFromContext(context.Background())
	assert.False(t, ok)

	_, ok = UserFromContext(WithUser(context.Background(), nil))
	assert.False(t, ok)

	user := &model.UserDTO{ID: primitive.NewObjectID()}
	got, ok := UserFromContext(WithUser(context.Background(), user))
	assert.True(t, ok)
	assert.Equal(t, user, got)
}
