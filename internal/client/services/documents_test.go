package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/emprende/internal/client/client"
	"github.com/dmitrijs2005/emprende/internal/client/models"
)

func TestFetchDocument_WritesPDF(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "docs")
	fc := &fakeClient{DocumentRet: []byte("%PDF-1.4")}
	svc := NewDocumentService(fc, nil)

	path, err := svc.Fetch(context.Background(), models.DocumentCertificate, dir)
	require.NoError(t, err)
	assert.Equal(t, "certificate.pdf", filepath.Base(path))
	assert.Equal(t, models.DocumentCertificate, fc.LastDocument)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), got)
}

func TestFetchDocument_ErrorWritesNothing(t *testing.T) {
	dir := t.TempDir()
	fc := &fakeClient{DocumentErr: client.NewError(client.KindUserNotFound, "")}
	svc := NewDocumentService(fc, nil)

	_, err := svc.Fetch(context.Background(), models.DocumentIdentity, dir)
	require.ErrorIs(t, err, client.ErrUserNotFound)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
