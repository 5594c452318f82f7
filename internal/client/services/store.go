package services

import (
	"context"

	"github.com/dmitrijs2005/emprende/internal/client/models"
)

// SessionStore is the subset of session.Store the services use.
type SessionStore interface {
	Save(ctx context.Context, token string, profile models.Profile) error
	Load(ctx context.Context) (models.Session, error)
	MergeProfile(ctx context.Context, partial models.Profile) (models.Profile, error)
	ReplaceProfile(ctx context.Context, profile models.Profile) error
	Clear(ctx context.Context) error
	SetPendingDestination(ctx context.Context, path string) error
	TakePendingDestination(ctx context.Context) (string, error)
}
