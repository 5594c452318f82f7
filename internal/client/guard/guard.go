// Package guard decides whether navigation to a destination may proceed.
package guard

import (
	"context"
	"strings"
)

// LoginRoute is where denied navigation is sent.
const LoginRoute = "/login"

// DefaultProtected are the destinations that need a session.
var DefaultProtected = []string{"/perfil", "/registro-emprendimiento", "/mis-documentos"}

// TokenSource reports the current session token, "" when logged out.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type Decision struct {
	Allowed  bool
	Redirect string
}

type Guard struct {
	tokens    TokenSource
	protected map[string]struct{}
}

// New builds a guard over tokens. With no paths, DefaultProtected is used.
func New(tokens TokenSource, protected ...string) *Guard {
	if len(protected) == 0 {
		protected = DefaultProtected
	}
	g := &Guard{tokens: tokens, protected: make(map[string]struct{}, len(protected))}
	for _, p := range protected {
		g.protected[normalize(p)] = struct{}{}
	}
	return g
}

// Protected reports whether dest needs a session.
func (g *Guard) Protected(dest string) bool {
	_, ok := g.protected[normalize(dest)]
	return ok
}

// Allow reads the token on every call. A storage failure denies access.
func (g *Guard) Allow(ctx context.Context, dest string) (Decision, error) {
	if !g.Protected(dest) {
		return Decision{Allowed: true}, nil
	}

	token, err := g.tokens.Token(ctx)
	if err != nil {
		return Decision{Redirect: LoginRoute}, err
	}
	if token == "" {
		return Decision{Redirect: LoginRoute}, nil
	}
	return Decision{Allowed: true}, nil
}

func normalize(p string) string {
	p, _, _ = strings.Cut(p, "?")
	p = strings.TrimRight(p, "/")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}
