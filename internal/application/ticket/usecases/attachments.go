package usecases

import (
	"fmt"
	"io"
	"path"
	"slices"
	"strings"

	"github.com/helpdesk-inc/helpdesk/internal/domain/ticket"
	"github.com/helpdesk-inc/helpdesk/internal/infrastructure/storage"
	"github.com/helpdesk-inc/helpdesk/internal/shared/errors"
)

// BlobStore is satisfied by *storage.LocalStore.
type BlobStore interface {
	Save(ticketID uint, name string, r io.Reader) (storage.SavedBlob, error)
	Discard(saved storage.SavedBlob)
	Open(ticketID uint, name string) (*storage.Blob, error)
}

// Attachment is one uploaded part. Open is called once, inside the create
// transaction; multipart.FileHeader.Open fits directly.
type Attachment struct {
	Filename string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

// AttachmentPolicy holds the upload limits. An empty allow-list accepts any
// extension and a non-positive MaxFileSize disables the size check.
type AttachmentPolicy struct {
	allowed     map[string]bool
	maxFileSize int64
}

func NewAttachmentPolicy(allowedExtensions []string, maxFileSize int64) AttachmentPolicy {
	allowed := make(map[string]bool, len(allowedExtensions))
	for _, ext := range allowedExtensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			allowed[ext] = true
		}
	}
	return AttachmentPolicy{allowed: allowed, maxFileSize: maxFileSize}
}

// Check returns the sanitized file name to store under.
func (p AttachmentPolicy) Check(a Attachment) (string, error) {
	name, err := ticket.SanitizeFilename(a.Filename)
	if err != nil {
		return "", err
	}

	if len(p.allowed) > 0 {
		ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
		if !p.allowed[ext] {
			return "", errors.NewValidationError(
				fmt.Sprintf("file type not allowed: %s", name),
				"allowed: "+p.allowedList(),
			)
		}
	}

	if p.maxFileSize > 0 && a.Size > p.maxFileSize {
		return "", errors.NewValidationError(
			fmt.Sprintf("file too large: %s", name),
			fmt.Sprintf("max %d bytes", p.maxFileSize),
		)
	}

	return name, nil
}

func (p AttachmentPolicy) allowedList() string {
	exts := make([]string, 0, len(p.allowed))
	for ext := range p.allowed {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return strings.Join(exts, ", ")
}

