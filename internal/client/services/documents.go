package services

import (
	"context"

	"github.com/dmitrijs2005/emprende/internal/client/client"
	"github.com/dmitrijs2005/emprende/internal/client/models"
	"github.com/dmitrijs2005/emprende/internal/filex"
	"github.com/dmitrijs2005/emprende/internal/logging"
)

// DocumentService downloads the PDFs the backend issues to a user.
type DocumentService interface {
	// Fetch saves the document as <kind>.pdf under dir and returns its path.
	Fetch(ctx context.Context, kind models.DocumentKind, dir string) (string, error)
}

type documentService struct {
	client client.Client
	log    logging.Logger
}

func NewDocumentService(c client.Client, log logging.Logger) DocumentService {
	if log == nil {
		log = logging.Discard()
	}
	return &documentService{client: c, log: log}
}

func (s *documentService) Fetch(ctx context.Context, kind models.DocumentKind, dir string) (string, error) {
	data, err := s.client.GetDocument(ctx, kind)
	if err != nil {
		return "", err
	}

	dir, err = filex.EnsureDir(dir)
	if err != nil {
		return "", err
	}

	path, err := filex.WriteFile(dir, kind.FileName(), data)
	if err != nil {
		return "", err
	}
	s.log.Info(ctx, "document saved", "kind", string(kind), "path", path, "bytes", len(data))
	return path, nil
}
