package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/emprende/internal/client/client"
	"github.com/dmitrijs2005/emprende/internal/client/guard"
	"github.com/dmitrijs2005/emprende/internal/client/models"
	"github.com/dmitrijs2005/emprende/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/emprende/internal/client/session"
)

// fakeClient implements client.Client for the service tests.
type fakeClient struct {
	LoginRet client.LoginResult
	LoginErr error
	// runs inside Login, e.g. to cancel the caller's context
	LoginHook func()

	EmailUUID string
	EmailErr  error

	ValidatedID string
	CodeErr     error

	ResetErr error

	WhoAmIRet models.Profile
	WhoAmIErr error

	UpdateRet models.Profile
	UpdateErr error

	DocumentRet []byte
	DocumentErr error

	RegisterErr error

	// for argument checks
	LoginCalls     int
	LastIdentifier string
	LastPassword   string
	LastUpdate     *models.ProfileUpdate
	LastDocument   models.DocumentKind
	LastRegister   *models.Registration
}

func (f *fakeClient) Login(ctx context.Context, identifier, password string) (client.LoginResult, error) {
	f.LoginCalls++
	f.LastIdentifier = identifier
	f.LastPassword = password
	if f.LoginHook != nil {
		f.LoginHook()
	}
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) RequestEmailRecovery(ctx context.Context, email string) (string, error) {
	return f.EmailUUID, f.EmailErr
}

func (f *fakeClient) ValidateRecoveryCode(ctx context.Context, code, recoveryUUID string) (string, error) {
	return f.ValidatedID, f.CodeErr
}

func (f *fakeClient) ResetPassword(ctx context.Context, validatedID, newPassword string) error {
	return f.ResetErr
}

func (f *fakeClient) WhoAmI(ctx context.Context) (models.Profile, error) {
	return f.WhoAmIRet, f.WhoAmIErr
}

func (f *fakeClient) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.Profile, error) {
	f.LastUpdate = &update
	return f.UpdateRet, f.UpdateErr
}

func (f *fakeClient) GetDocument(ctx context.Context, kind models.DocumentKind) ([]byte, error) {
	f.LastDocument = kind
	return f.DocumentRet, f.DocumentErr
}

func (f *fakeClient) Register(ctx context.Context, reg models.Registration) error {
	f.LastRegister = &reg
	return f.RegisterErr
}

func newSessionStore(t *testing.T) *session.Store {
	t.Helper()
	s, err := session.Open(context.Background(), metadata.NewMemoryRepository(), nil)
	require.NoError(t, err)
	return s
}

func newLoginService(t *testing.T, fc *fakeClient) (LoginService, *session.Store) {
	t.Helper()
	store := newSessionStore(t)
	return NewLoginService(fc, store, guard.New(store), nil), store
}
