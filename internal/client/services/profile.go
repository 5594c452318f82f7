package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/emprende/internal/client/client"
	"github.com/dmitrijs2005/emprende/internal/client/forms"
	"github.com/dmitrijs2005/emprende/internal/client/models"
	"github.com/dmitrijs2005/emprende/internal/client/session"
	"github.com/dmitrijs2005/emprende/internal/logging"
)

// ProfileService reads and edits the signed-in user's profile.
type ProfileService interface {
	// Load fetches a fresh profile and caches it. When the server cannot be
	// reached the cached snapshot is returned together with the error.
	Load(ctx context.Context) (models.Profile, error)
	// Update sends the non-empty fields and merges them into the cache.
	Update(ctx context.Context, update models.ProfileUpdate) (models.Profile, error)
}

type profileService struct {
	client client.Client
	store  SessionStore
	log    logging.Logger
}

func NewProfileService(c client.Client, store SessionStore, log logging.Logger) ProfileService {
	if log == nil {
		log = logging.Discard()
	}
	return &profileService{client: c, store: store, log: log}
}

func (s *profileService) Load(ctx context.Context) (models.Profile, error) {
	sess, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !sess.Authenticated() {
		return nil, session.ErrNotAuthenticated
	}

	fresh, err := s.client.WhoAmI(ctx)
	if err != nil {
		s.log.Warn(ctx, "profile refresh failed, using cached copy", "kind", client.KindOf(err).String())
		return sess.Profile, err
	}

	if err := s.store.ReplaceProfile(ctx, fresh); err != nil {
		return fresh, fmt.Errorf("cache profile: %w", err)
	}
	return fresh, nil
}

func (s *profileService) Update(ctx context.Context, update models.ProfileUpdate) (models.Profile, error) {
	if update.Empty() {
		return nil, client.NewError(client.KindInvalidFormat, "nothing to update")
	}
	if err := forms.Check(update); err != nil {
		return nil, err
	}

	echo, err := s.client.UpdateProfile(ctx, update)
	if err != nil {
		return nil, err
	}

	merged, err := s.store.MergeProfile(ctx, update.Fields().Merge(echo))
	if err != nil {
		return nil, fmt.Errorf("cache profile: %w", err)
	}
	return merged, nil
}
