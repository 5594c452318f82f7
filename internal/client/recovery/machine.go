// Package recovery drives the forgotten-password flow: request a code by
// email, validate the code, then set a new password.
package recovery

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/dmitrijs2005/emprende/internal/client/client"
	"github.com/dmitrijs2005/emprende/internal/client/forms"
	"github.com/dmitrijs2005/emprende/internal/logging"
)

type State int

const (
	StateLogin State = iota
	StateForgotPassword
	StateEnterOtp
	StateNewPassword
	StateSuccess
)

func (s State) String() string {
	switch s {
	case StateLogin:
		return "Login"
	case StateForgotPassword:
		return "ForgotPassword"
	case StateEnterOtp:
		return "EnterOtp"
	case StateNewPassword:
		return "NewPassword"
	case StateSuccess:
		return "Success"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

var (
	// ErrInvalidTransition is returned when an action is not allowed in the
	// current state.
	ErrInvalidTransition = errors.New("action not allowed in current recovery step")
	// ErrAbandoned is returned when the flow was cancelled or moved back
	// while a request was in flight; the response is discarded.
	ErrAbandoned = errors.New("recovery step was abandoned")
)

// Gateway is the part of client.Client the flow needs.
type Gateway interface {
	RequestEmailRecovery(ctx context.Context, email string) (string, error)
	ValidateRecoveryCode(ctx context.Context, code, recoveryUUID string) (string, error)
	ResetPassword(ctx context.Context, validatedID, newPassword string) error
}

// Session is the data collected so far. It is discarded on cancel and on
// success.
type Session struct {
	Email       string
	UUID        string
	ValidatedID string
}

// Machine is safe for concurrent use. Network calls run without the lock
// held; a result that arrives after Back or Cancel is dropped.
type Machine struct {
	gw  Gateway
	log logging.Logger

	mu    sync.Mutex
	state State
	sess  Session
	gen   uint64
}

func New(gw Gateway, log logging.Logger) *Machine {
	if log == nil {
		log = logging.Discard()
	}
	return &Machine{gw: gw, log: log}
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Session returns a copy of the collected data.
func (m *Machine) Session() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sess
}

// Start opens the flow with email prefilled, which may be empty.
func (m *Machine) Start(email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateLogin && m.state != StateSuccess {
		return m.transitionErr("start")
	}
	m.reset()
	m.sess.Email = email
	m.state = StateForgotPassword
	return nil
}

// SubmitEmail requests a recovery code for email and moves to EnterOtp.
func (m *Machine) SubmitEmail(ctx context.Context, email string) error {
	if err := forms.Check(forms.Email{Email: email}); err != nil {
		return err
	}

	gen, err := m.begin(StateForgotPassword, "submit email")
	if err != nil {
		return err
	}

	id, err := m.gw.RequestEmailRecovery(ctx, email)
	if err != nil {
		m.log.Info(ctx, "email recovery failed", "kind", client.KindOf(err).String())
		return err
	}
	if id == "" {
		return client.NewError(client.KindUnknown, "the server did not return a recovery id")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != gen {
		return ErrAbandoned
	}
	m.sess.Email = email
	m.sess.UUID = id
	m.state = StateEnterOtp
	return nil
}

// Resend requests a fresh code for the stored email. The new recovery id
// replaces the old one only on success.
func (m *Machine) Resend(ctx context.Context) error {
	m.mu.Lock()
	if m.state != StateEnterOtp {
		defer m.mu.Unlock()
		return m.transitionErr("resend code")
	}
	email, gen := m.sess.Email, m.gen
	m.mu.Unlock()

	id, err := m.gw.RequestEmailRecovery(ctx, email)
	if err != nil {
		return err
	}
	if id == "" {
		return client.NewError(client.KindUnknown, "the server did not return a recovery id")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != gen {
		return ErrAbandoned
	}
	m.sess.UUID = id
	return nil
}

// SubmitCode validates the six digits and moves to NewPassword.
func (m *Machine) SubmitCode(ctx context.Context, digits [6]string) error {
	code := forms.Code{Digits: digits}
	if err := forms.Check(code); err != nil {
		return err
	}

	m.mu.Lock()
	if m.state != StateEnterOtp {
		defer m.mu.Unlock()
		return m.transitionErr("submit code")
	}
	id, gen := m.sess.UUID, m.gen
	m.mu.Unlock()

	validated, err := m.gw.ValidateRecoveryCode(ctx, code.Value(), id)
	if err != nil {
		m.log.Info(ctx, "code validation failed", "kind", client.KindOf(err).String())
		return err
	}
	if isPlaceholder(validated) {
		return client.NewError(client.KindUnknown, "missing valid identifier")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != gen {
		return ErrAbandoned
	}
	m.sess.ValidatedID = validated
	m.state = StateNewPassword
	return nil
}

// SubmitNewPassword resets the password and finishes the flow.
func (m *Machine) SubmitNewPassword(ctx context.Context, password, confirm string) error {
	if err := forms.Check(forms.NewPassword{Password: password, Confirm: confirm}); err != nil {
		return err
	}

	m.mu.Lock()
	if m.state != StateNewPassword {
		defer m.mu.Unlock()
		return m.transitionErr("submit new password")
	}
	id, gen := m.sess.ValidatedID, m.gen
	m.mu.Unlock()

	// the reset endpoint takes the numeric user id; a recovery uuid that
	// stood in for it cannot be used here
	if _, err := strconv.ParseInt(id, 10, 64); err != nil {
		return client.NewError(client.KindUnknown, "invalid user identifier, restart recovery")
	}

	if err := m.gw.ResetPassword(ctx, id, password); err != nil {
		m.log.Info(ctx, "password reset failed", "kind", client.KindOf(err).String())
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != gen {
		return ErrAbandoned
	}
	m.reset()
	m.state = StateSuccess
	return nil
}

// Back steps from EnterOtp to ForgotPassword or from NewPassword to
// EnterOtp, dropping the data the left step produced.
func (m *Machine) Back() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state {
	case StateEnterOtp:
		m.sess.UUID = ""
		m.sess.ValidatedID = ""
		m.state = StateForgotPassword
	case StateNewPassword:
		m.sess.ValidatedID = ""
		m.state = StateEnterOtp
	default:
		return m.transitionErr("go back")
	}
	m.gen++
	return nil
}

// Cancel returns to Login from any state and discards everything.
func (m *Machine) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset()
	m.state = StateLogin
}

func (m *Machine) begin(want State, action string) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != want {
		return 0, m.transitionErr(action)
	}
	return m.gen, nil
}

// reset must be called with m.mu held.
func (m *Machine) reset() {
	m.sess = Session{}
	m.gen++
}

func (m *Machine) transitionErr(action string) error {
	return fmt.Errorf("%w: cannot %s in %s", ErrInvalidTransition, action, m.state)
}

func isPlaceholder(id string) bool {
	switch id {
	case "", "undefined", "null":
		return true
	}
	return false
}
