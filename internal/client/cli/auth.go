package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/emprende/internal/client/client"
	"github.com/dmitrijs2005/emprende/internal/client/guard"
	"github.com/dmitrijs2005/emprende/internal/client/recovery"
	"github.com/dmitrijs2005/emprende/internal/client/services"
	"github.com/dmitrijs2005/emprende/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials. On the login route it behaves like the
// login page and moves on to the pending destination or home; anywhere else
// it behaves like a dialog and the route does not change.
func (a *App) Login(ctx context.Context) error {
	mode := services.ModeModal
	if a.currentRoute() == guard.LoginRoute {
		mode = services.ModePage
	}
	return a.login(ctx, mode)
}

func (a *App) login(ctx context.Context, mode services.Mode) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	out, err := a.loginService.Login(ctx, email, string(password), mode)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", out.Profile.DisplayName())
	if !out.Close {
		a.setRoute(out.Destination)
	}
	return nil
}

// Logout clears the session and returns to the login route.
func (a *App) Logout(ctx context.Context) error {
	next, err := a.loginService.Logout(ctx)
	if err != nil {
		return err
	}
	a.setRoute(next)
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Recover walks through the forgotten-password steps. An empty answer
// cancels; "b" goes one step back and "r" resends the code.
func (a *App) Recover(ctx context.Context) error {
	m := a.loginService.Recovery()
	m.Cancel()
	if err := m.Start(""); err != nil {
		return err
	}

	for {
		var err error
		switch m.State() {
		case recovery.StateLogin:
			fmt.Fprintln(a.out, "Recovery cancelled")
			return nil

		case recovery.StateForgotPassword:
			err = a.recoverEmail(ctx, m)

		case recovery.StateEnterOtp:
			err = a.recoverCode(ctx, m)

		case recovery.StateNewPassword:
			err = a.recoverPassword(ctx, m)

		case recovery.StateSuccess:
			m.Cancel()
			a.setRoute(guard.LoginRoute)
			fmt.Fprintln(a.out, "Password updated. Log in with your new password.")
			return nil
		}

		if err == nil {
			continue
		}
		var ie inputError
		if errors.As(err, &ie) {
			m.Cancel()
			return ie.err
		}
		fmt.Fprintln(a.out, "Error:", err)
	}
}

// inputError marks a failure to read from the terminal, which ends the flow.
type inputError struct{ err error }

func (e inputError) Error() string { return e.err.Error() }

func (a *App) recoverEmail(ctx context.Context, m *recovery.Machine) error {
	email, err := getSimpleText(a.reader, "Enter your account email (empty to cancel)", a.out)
	if err != nil {
		return inputError{err}
	}
	if email == "" {
		m.Cancel()
		return nil
	}
	if err := m.SubmitEmail(ctx, email); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "A 6-digit code was sent to %s\n", email)
	return nil
}

func (a *App) recoverCode(ctx context.Context, m *recovery.Machine) error {
	answer, err := getSimpleText(a.reader, "Enter the 6-digit code (r: resend, b: back, empty: cancel)", a.out)
	if err != nil {
		return inputError{err}
	}

	switch answer {
	case "":
		m.Cancel()
		return nil
	case "b":
		return m.Back()
	case "r":
		if err := m.Resend(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "A new code was sent")
		return nil
	}

	digits, ok := splitCode(answer)
	if !ok {
		return client.NewError(client.KindInvalidFormat, "the code has exactly 6 digits")
	}
	return m.SubmitCode(ctx, digits)
}

func (a *App) recoverPassword(ctx context.Context, m *recovery.Machine) error {
	password, err := getPassword(a.out, "New password (empty to go back): ")
	if err != nil {
		return inputError{err}
	}
	defer common.WipeByteArray(password)
	if len(password) == 0 {
		return m.Back()
	}

	confirm, err := getPassword(a.out, "Repeat new password: ")
	if err != nil {
		return inputError{err}
	}
	defer common.WipeByteArray(confirm)

	return m.SubmitNewPassword(ctx, string(password), string(confirm))
}
