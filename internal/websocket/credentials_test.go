package websocket

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type mapVerifier map[string]string

func (m mapVerifier) VerifyToken(_ context.Context, token string) (string, error) {
	if id, ok := m[token]; ok {
		return id, nil
	}
	return "", errors.New("token failed")
}

func TestCredentialStrategies(t *testing.T) {
	t.Run("Query", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/ws?token=abc", nil)
		token, ok := QueryTokenStrategy{Param: "token"}.Extract(r)
		assert.True(t, ok)
		assert.Equal(t, "abc", token)

		_, ok = QueryTokenStrategy{Param: "token"}.Extract(httptest.NewRequest(http.MethodGet, "/ws", nil))
		assert.False(t, ok)
	})

	t.Run("Header Strips Bearer", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/ws", nil)
		r.Header.Set("Authorization", "bearer  xyz ")
		token, ok := HeaderTokenStrategy{}.Extract(r)
		assert.True(t, ok)
		assert.Equal(t, "xyz", token)

		r.Header.Set("Authorization", "raw-token")
		token, _ = HeaderTokenStrategy{}.Extract(r)
		assert.Equal(t, "raw-token", token)
	})

	t.Run("Cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/ws", nil)
		r.AddCookie(&http.Cookie{Name: "jwt", Value: "cookie-token"})
		token, ok := CookieTokenStrategy{Cookie: "jwt"}.Extract(r)
		assert.True(t, ok)
		assert.Equal(t, "cookie-token", token)

		_, ok = CookieTokenStrategy{Cookie: "other"}.Extract(r)
		assert.False(t, ok)
	})
}

func TestCredentialChain(t *testing.T) {
	verifier := mapVerifier{"good-query": "u-query", "good-header": "u-header", "good-cookie": "u-cookie"}
	chain := NewCredentialChain(verifier, DefaultStrategies("jwt")...)

	t.Run("Query Wins", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/ws?token=good-query", nil)
		r.Header.Set("Authorization", "Bearer good-header")
		assert.Equal(t, "u-query", chain.Authenticate(r))
	})

	t.Run("Failed Strategy Falls Through", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/ws?token=expired", nil)
		r.AddCookie(&http.Cookie{Name: "jwt", Value: "good-cookie"})
		assert.Equal(t, "u-cookie", chain.Authenticate(r))
	})

	t.Run("Anonymous When Exhausted", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/ws?token=bad", nil)
		r.Header.Set("Authorization", "Bearer also-bad")
		assert.Empty(t, chain.Authenticate(r))

		assert.Empty(t, chain.Authenticate(httptest.NewRequest(http.MethodGet, "/ws", nil)))
	})

	t.Run("Nil Chain Is Anonymous", func(t *testing.T) {
		var nilChain *CredentialChain
		assert.Empty(t, nilChain.Authenticate(httptest.NewRequest(http.MethodGet, "/ws?token=good-query", nil)))
	})
}
