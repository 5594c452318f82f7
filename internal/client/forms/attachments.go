package forms

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/emprende/internal/client/client"
	"github.com/dmitrijs2005/emprende/internal/client/models"
)

// MaxAttachmentSize is the per-file upload limit.
const MaxAttachmentSize = 2 << 20

var allowedExtensions = map[string]struct{}{
	".pdf": {}, ".jpg": {}, ".jpeg": {}, ".png": {},
}

// CheckAttachments verifies that every part is present, small enough and of
// an accepted type. Problems with all parts are reported together.
func CheckAttachments(parts []models.NamedAttachment) error {
	var msgs []string
	for _, p := range parts {
		if msg := attachmentProblem(p); msg != "" {
			msgs = append(msgs, msg)
		}
	}
	if len(msgs) == 0 {
		return nil
	}
	return client.NewError(client.KindInvalidFormat, strings.Join(msgs, "; "))
}

func attachmentProblem(p models.NamedAttachment) string {
	if p.Filename == "" || len(p.Content) == 0 {
		return p.Label + " is required"
	}
	if len(p.Content) > MaxAttachmentSize {
		return fmt.Sprintf("%s exceeds the %d MB limit", p.Label, MaxAttachmentSize>>20)
	}
	ext := strings.ToLower(filepath.Ext(p.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return p.Label + " must be a PDF, JPG or PNG file"
	}
	return ""
}
