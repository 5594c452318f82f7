package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/emprende/internal/client/models"
	"github.com/dmitrijs2005/emprende/internal/client/services"
)

const (
	profileRoute   = "/perfil"
	documentsRoute = "/mis-documentos"
)

// nowFn is a test seam for token expiry checks.
var nowFn = time.Now

// Open navigates to route and shows it. A protected route asks for login
// first and is resumed afterwards.
func (a *App) Open(ctx context.Context, route string) error {
	if err := a.enter(ctx, route); err != nil {
		return err
	}
	return a.render(ctx)
}

func (a *App) enter(ctx context.Context, route string) error {
	nav, err := a.loginService.Navigate(ctx, route)
	if err != nil {
		a.setRoute(nav.Destination)
		return err
	}
	if !nav.Redirected {
		a.setRoute(route)
		return nil
	}

	a.setRoute(nav.Destination)
	fmt.Fprintf(a.out, "%s requires login\n", route)
	return a.login(ctx, services.ModePage)
}

func (a *App) render(ctx context.Context) error {
	switch route := a.currentRoute(); route {
	case services.HomeRoute:
		name := "guest"
		if a.isLoggedIn() {
			sess, err := a.store.Load(ctx)
			if err != nil {
				return err
			}
			name = sess.Profile.DisplayName()
		}
		fmt.Fprintf(a.out, "Hello, %s!\n", name)
	case profileRoute:
		return a.showProfile(ctx)
	case documentsRoute:
		fmt.Fprintln(a.out, "Documents: identity, certificate, signed (use: documents <kind>)")
	default:
		fmt.Fprintln(a.out, "Now at", route)
	}
	return nil
}

// Profile opens the profile route.
func (a *App) Profile(ctx context.Context) error {
	return a.Open(ctx, profileRoute)
}

func (a *App) showProfile(ctx context.Context) error {
	p, err := a.profileService.Load(ctx)
	if err != nil {
		if p == nil {
			return err
		}
		fmt.Fprintln(a.out, "Showing saved profile:", err)
	}
	a.printProfile(p)
	return nil
}

func (a *App) printProfile(p models.Profile) {
	for _, f := range models.KnownProfileFields {
		v := p.String(f)
		if v == "" {
			v = "-"
		}
		fmt.Fprintf(a.out, "  %-9s %s\n", f+":", v)
	}
}

// EditProfile shows the profile and asks for new values; empty answers
// keep the current value.
func (a *App) EditProfile(ctx context.Context) error {
	if err := a.Open(ctx, profileRoute); err != nil {
		return err
	}

	var u models.ProfileUpdate
	for _, f := range []struct {
		prompt string
		dst    *string
	}{
		{"New phone (empty to keep)", &u.Phone},
		{"New email (empty to keep)", &u.Email},
		{"New address (empty to keep)", &u.Address},
		{"New username (empty to keep)", &u.Username},
	} {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	if u.Empty() {
		fmt.Fprintln(a.out, "Nothing changed")
		return nil
	}

	p, err := a.profileService.Update(ctx, u)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Profile updated")
	a.printProfile(p)
	return nil
}

// Documents downloads one of the user's PDFs into the configured directory.
func (a *App) Documents(ctx context.Context, kind string) error {
	k, err := models.ParseDocumentKind(kind)
	if err != nil {
		return err
	}
	if err := a.enter(ctx, documentsRoute); err != nil {
		return err
	}

	path, err := a.documentService.Fetch(ctx, k, a.config.DocumentsDir)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Saved", path)
	return nil
}

// Status prints where the user is and what the session looks like.
func (a *App) Status(ctx context.Context) error {
	fmt.Fprintln(a.out, "Route:", a.currentRoute())
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}

	sess, err := a.store.Load(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged in as", sess.Profile.DisplayName())

	claims, err := a.store.Claims(ctx)
	if err != nil {
		a.log.Debug(ctx, "token claims unavailable", "error", err.Error())
		return nil
	}
	if claims.ExpiresAt.IsZero() {
		return nil
	}
	exp := claims.ExpiresAt.Local().Format(time.DateTime)
	if claims.Expired(nowFn()) {
		fmt.Fprintf(a.out, "Session token expired at %s, log in again\n", exp)
	} else {
		fmt.Fprintf(a.out, "Session token valid until %s\n", exp)
	}
	return nil
}
