package services

import (
	"context"

	"github.com/dmitrijs2005/emprende/internal/client/client"
	"github.com/dmitrijs2005/emprende/internal/client/forms"
	"github.com/dmitrijs2005/emprende/internal/client/models"
	"github.com/dmitrijs2005/emprende/internal/logging"
)

// RegistrationService creates a new entrepreneur account.
type RegistrationService interface {
	Register(ctx context.Context, reg models.Registration) error
}

type registrationService struct {
	client client.Client
	log    logging.Logger
}

func NewRegistrationService(c client.Client, log logging.Logger) RegistrationService {
	if log == nil {
		log = logging.Discard()
	}
	return &registrationService{client: c, log: log}
}

// Register checks the form and the attachments locally before uploading.
func (s *registrationService) Register(ctx context.Context, reg models.Registration) error {
	if err := forms.Check(reg); err != nil {
		return err
	}
	if err := forms.CheckAttachments(reg.Parts()); err != nil {
		return err
	}

	if err := s.client.Register(ctx, reg); err != nil {
		s.log.Warn(ctx, "registration failed", "kind", client.KindOf(err).String())
		return err
	}
	s.log.Info(ctx, "registration submitted", "username", reg.Username)
	return nil
}
