package client

import (
	"context"

	"github.com/dmitrijs2005/emprende/internal/client/models"
)

// Client is the backend contract used by the services. Every method makes a
// single attempt and returns either a result or an *AuthError.
type Client interface {
	Login(ctx context.Context, identifier, password string) (LoginResult, error)
	RequestEmailRecovery(ctx context.Context, email string) (string, error)
	ValidateRecoveryCode(ctx context.Context, code, recoveryUUID string) (string, error)
	ResetPassword(ctx context.Context, validatedID, newPassword string) error

	WhoAmI(ctx context.Context) (models.Profile, error)
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.Profile, error)
	GetDocument(ctx context.Context, kind models.DocumentKind) ([]byte, error)
	Register(ctx context.Context, reg models.Registration) error
}

// TokenSource supplies the bearer token for authenticated calls. An empty
// token means the request goes out without an Authorization header.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// LoginResult is a successful login: the session token plus the full
// response body kept as the profile snapshot.
type LoginResult struct {
	Token   string
	Profile models.Profile
}
