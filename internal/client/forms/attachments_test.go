package forms

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/emprende/internal/client/client"
	"github.com/dmitrijs2005/emprende/internal/client/models"
)

func part(name string, size int) models.NamedAttachment {
	return models.NamedAttachment{
		Field:      "identityDocument",
		Label:      "identity document",
		Attachment: models.Attachment{Filename: name, Content: bytes.Repeat([]byte{'x'}, size)},
	}
}

func TestCheckAttachments(t *testing.T) {
	tests := []struct {
		name    string
		part    models.NamedAttachment
		wantErr string
	}{
		{"pdf", part("id.pdf", 10), ""},
		{"upper case jpeg", part("ID.JPEG", 10), ""},
		{"png at limit", part("id.png", MaxAttachmentSize), ""},
		{"missing", part("", 0), "identity document is required"},
		{"too large", part("id.pdf", MaxAttachmentSize+1), "identity document exceeds the 2 MB limit"},
		{"wrong type", part("id.docx", 10), "identity document must be a PDF, JPG or PNG file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckAttachments([]models.NamedAttachment{tt.part})
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, client.ErrInvalidFormat)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestCheckAttachments_ReportsAll(t *testing.T) {
	err := CheckAttachments(models.Registration{}.Parts())
	require.Error(t, err)
	assert.Equal(t, "identity document is required; municipal certificate is required; signed agreement is required", err.Error())
}
