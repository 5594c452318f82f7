package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/emprende/internal/client/client"
	"github.com/dmitrijs2005/emprende/internal/client/forms"
	"github.com/dmitrijs2005/emprende/internal/client/guard"
	"github.com/dmitrijs2005/emprende/internal/client/models"
	"github.com/dmitrijs2005/emprende/internal/client/recovery"
	"github.com/dmitrijs2005/emprende/internal/logging"
)

// HomeRoute is where a page login lands when nothing was pending.
const HomeRoute = "/home"

// Mode selects how a successful login hands control back.
type Mode int

const (
	// ModePage navigates to the pending destination or home.
	ModePage Mode = iota
	// ModeModal closes the dialog and lets the caller stay where it is.
	ModeModal
)

// NavResult is where navigation actually goes.
type NavResult struct {
	Destination string
	Redirected  bool
}

// Outcome of a successful login. In page mode Destination is set; in modal
// mode Close is true.
type Outcome struct {
	Destination string
	Close       bool
	Profile     models.Profile
}

// LoginService defines the login controller.
//
// Contract:
//   - Navigate: consult the guard; a denied destination is remembered and
//     the login route returned instead.
//   - Login: validate, authenticate, persist the session, then resume.
//   - Logout: clear the session and return the login route.
//   - Recovery: the forgotten-password flow.
type LoginService interface {
	Navigate(ctx context.Context, dest string) (NavResult, error)
	Login(ctx context.Context, identifier, password string, mode Mode) (Outcome, error)
	Logout(ctx context.Context) (string, error)
	Recovery() *recovery.Machine
}

type loginService struct {
	client   client.Client
	store    SessionStore
	guard    *guard.Guard
	recovery *recovery.Machine
	log      logging.Logger
}

// NewLoginService constructs a LoginService. The recovery flow is created
// over the same client.
func NewLoginService(c client.Client, store SessionStore, g *guard.Guard, log logging.Logger) LoginService {
	if log == nil {
		log = logging.Discard()
	}
	return &loginService{
		client:   c,
		store:    store,
		guard:    g,
		recovery: recovery.New(c, log.With("component", "recovery")),
		log:      log,
	}
}

func (s *loginService) Navigate(ctx context.Context, dest string) (NavResult, error) {
	d, err := s.guard.Allow(ctx, dest)
	if err != nil {
		return NavResult{Destination: guard.LoginRoute, Redirected: true}, fmt.Errorf("check access to %s: %w", dest, err)
	}
	if d.Allowed {
		return NavResult{Destination: dest}, nil
	}

	if err := s.store.SetPendingDestination(ctx, dest); err != nil {
		return NavResult{Destination: d.Redirect, Redirected: true}, err
	}
	s.log.Debug(ctx, "navigation denied, login required", "destination", dest)
	return NavResult{Destination: d.Redirect, Redirected: true}, nil
}

// Login returns the gateway's AuthError untouched on failure; the store is
// only written after the server accepted the credentials.
func (s *loginService) Login(ctx context.Context, identifier, password string, mode Mode) (Outcome, error) {
	if err := forms.Check(forms.Login{Identifier: identifier, Password: password}); err != nil {
		return Outcome{}, err
	}

	res, err := s.client.Login(ctx, identifier, password)
	if err != nil {
		s.log.Warn(ctx, "login failed", "kind", client.KindOf(err).String())
		return Outcome{}, err
	}

	// the server already issued the token; keep it even if the caller has
	// given up waiting
	ctx = context.WithoutCancel(ctx)

	if err := s.store.Save(ctx, res.Token, res.Profile); err != nil {
		return Outcome{}, fmt.Errorf("save session: %w", err)
	}
	s.log.Info(ctx, "logged in", "user", res.Profile.DisplayName())

	if mode == ModeModal {
		return Outcome{Close: true, Profile: res.Profile}, nil
	}

	dest, err := s.store.TakePendingDestination(ctx)
	if err != nil {
		s.log.Warn(ctx, "pending destination unavailable", "error", err.Error())
		dest = ""
	}
	if dest == "" {
		dest = HomeRoute
	}
	return Outcome{Destination: dest, Profile: res.Profile}, nil
}

func (s *loginService) Logout(ctx context.Context) (string, error) {
	if err := s.store.Clear(ctx); err != nil {
		return "", fmt.Errorf("logout: %w", err)
	}
	s.log.Info(ctx, "logged out")
	return guard.LoginRoute, nil
}

func (s *loginService) Recovery() *recovery.Machine {
	return s.recovery
}
