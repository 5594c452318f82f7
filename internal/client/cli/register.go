package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/emprende/internal/client/models"
	"github.com/dmitrijs2005/emprende/internal/common"
)

// readFile is a test seam for os.ReadFile.
var readFile = os.ReadFile

// Register prompts for the sign-up form and the three document files, then
// submits the registration.
func (a *App) Register(ctx context.Context) error {
	var r models.Registration
	for _, f := range []struct {
		prompt string
		dst    *string
	}{
		{"Enter email", &r.Email},
		{"Enter first name", &r.Name},
		{"Enter last name", &r.Lastname},
		{"Enter identification number", &r.Identification},
		{"Enter phone", &r.Phone},
		{"Enter address", &r.Address},
		{"Choose a username", &r.Username},
	} {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	password, err := getPassword(a.out, "Choose a password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	r.Password = string(password)

	for _, f := range []struct {
		prompt string
		dst    *models.Attachment
	}{
		{"Path to identity document (pdf, jpg, png)", &r.IdentityDocument},
		{"Path to municipal certificate (pdf, jpg, png)", &r.Certificate},
		{"Path to signed agreement (pdf, jpg, png)", &r.SignedDocument},
	} {
		path, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		if path == "" {
			continue
		}
		data, err := readFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		*f.dst = models.Attachment{Filename: filepath.Base(path), Content: data}
	}

	if err := a.registrationService.Register(ctx, r); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Registration submitted. You will receive an email once it is reviewed.")
	return nil
}
