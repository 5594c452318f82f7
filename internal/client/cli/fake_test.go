package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/emprende/internal/client/client"
	"github.com/dmitrijs2005/emprende/internal/client/config"
	"github.com/dmitrijs2005/emprende/internal/client/guard"
	"github.com/dmitrijs2005/emprende/internal/client/models"
	"github.com/dmitrijs2005/emprende/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/emprende/internal/client/services"
	"github.com/dmitrijs2005/emprende/internal/client/session"
	"github.com/dmitrijs2005/emprende/internal/logging"
)

// fakeAPI implements client.Client with canned answers.
type fakeAPI struct {
	token    string
	profile  models.Profile
	loginErr error

	uuid      string
	validated string
	codeErr   error

	resetID string
	resetPW string

	whoami    models.Profile
	whoamiErr error

	lastUpdate *models.ProfileUpdate

	document []byte

	lastRegister *models.Registration
}

func (f *fakeAPI) Login(context.Context, string, string) (client.LoginResult, error) {
	if f.loginErr != nil {
		return client.LoginResult{}, f.loginErr
	}
	return client.LoginResult{Token: f.token, Profile: f.profile}, nil
}

func (f *fakeAPI) RequestEmailRecovery(context.Context, string) (string, error) {
	return f.uuid, nil
}

func (f *fakeAPI) ValidateRecoveryCode(context.Context, string, string) (string, error) {
	return f.validated, f.codeErr
}

func (f *fakeAPI) ResetPassword(_ context.Context, id, pw string) error {
	f.resetID, f.resetPW = id, pw
	return nil
}

func (f *fakeAPI) WhoAmI(context.Context) (models.Profile, error) {
	return f.whoami, f.whoamiErr
}

func (f *fakeAPI) UpdateProfile(_ context.Context, u models.ProfileUpdate) (models.Profile, error) {
	f.lastUpdate = &u
	return models.Profile{}, nil
}

func (f *fakeAPI) GetDocument(context.Context, models.DocumentKind) ([]byte, error) {
	return f.document, nil
}

func (f *fakeAPI) Register(_ context.Context, r models.Registration) error {
	f.lastRegister = &r
	return nil
}

func newTestApp(t *testing.T, api *fakeAPI) (*App, *bytes.Buffer) {
	t.Helper()
	store, err := session.Open(context.Background(), metadata.NewMemoryRepository(), nil)
	require.NoError(t, err)

	g := guard.New(store)
	out := &bytes.Buffer{}
	return &App{
		config:              &config.Config{DocumentsDir: t.TempDir()},
		log:                 logging.Discard(),
		store:               store,
		guard:               g,
		loginService:        services.NewLoginService(api, store, g, nil),
		profileService:      services.NewProfileService(api, store, nil),
		documentService:     services.NewDocumentService(api, nil),
		registrationService: services.NewRegistrationService(api, nil),
		route:               services.HomeRoute,
		out:                 out,
	}, out
}

// stubInputs feeds answers to the text and password prompts in order.
// An exhausted queue behaves like a closed terminal.
func stubInputs(t *testing.T, texts []string, passwords []string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(texts) == 0 {
			return "", io.EOF
		}
		v := texts[0]
		texts = texts[1:]
		return v, nil
	}
	getPassword = func(_ io.Writer, _ string) ([]byte, error) {
		if len(passwords) == 0 {
			return nil, io.EOF
		}
		v := passwords[0]
		passwords = passwords[1:]
		return []byte(v), nil
	}
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func loggedInAPI() *fakeAPI {
	return &fakeAPI{
		token:   "T1",
		profile: models.Profile{"email": "ana@example.com", "name": "Ana"},
		whoami:  models.Profile{"email": "ana@example.com", "name": "Ana", "phone": "0999"},
	}
}
