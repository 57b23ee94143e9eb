package websocket

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

// TokenVerifier turns an identity token into the user id it was issued for.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

// CredentialStrategy extracts a raw token from a handshake request.
// ok is false when the request carries no credential of that kind.
type CredentialStrategy interface {
	Name() string
	Extract(r *http.Request) (token string, ok bool)
}

type QueryTokenStrategy struct {
	Param string
}

func (s QueryTokenStrategy) Name() string { return "query" }

func (s QueryTokenStrategy) Extract(r *http.Request) (string, bool) {
	token := strings.TrimSpace(r.URL.Query().Get(s.Param))
	return token, token != ""
}

type HeaderTokenStrategy struct{}

func (HeaderTokenStrategy) Name() string { return "header" }

func (HeaderTokenStrategy) Extract(r *http.Request) (string, bool) {
	token := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(token) >= 7 && strings.EqualFold(token[:7], "Bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	return token, token != ""
}

type CookieTokenStrategy struct {
	Cookie string
}

func (s CookieTokenStrategy) Name() string { return "cookie" }

func (s CookieTokenStrategy) Extract(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(s.Cookie)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func DefaultStrategies(cookieName string) []CredentialStrategy {
	return []CredentialStrategy{
		QueryTokenStrategy{Param: "token"},
		HeaderTokenStrategy{},
		CookieTokenStrategy{Cookie: cookieName},
	}
}

// CredentialChain resolves the identity of a handshake. It never rejects:
// a request with no verifiable credential is anonymous.
type CredentialChain struct {
	verifier   TokenVerifier
	strategies []CredentialStrategy
}

func NewCredentialChain(verifier TokenVerifier, strategies ...CredentialStrategy) *CredentialChain {
	return &CredentialChain{
		verifier:   verifier,
		strategies: strategies,
	}
}

// Authenticate returns the user id of the first strategy whose token verifies, or "".
func (c *CredentialChain) Authenticate(r *http.Request) string {
	if c == nil || c.verifier == nil {
		return ""
	}

	for _, strategy := range c.strategies {
		token, ok := strategy.Extract(r)
		if !ok {
			continue
		}

		userID, err := c.verifier.VerifyToken(r.Context(), token)
		if err != nil {
			slog.Debug("Websocket credential rejected", "strategy", strategy.Name(), "error", err)
			continue
		}
		if userID != "" {
			return userID
		}
	}

	return ""
}
