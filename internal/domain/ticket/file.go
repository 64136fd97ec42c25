package ticket

import (
	"fmt"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/helpdesk-inc/helpdesk/internal/shared/errors"
)

// File records an attachment stored under the ticket's upload namespace.
type File struct {
	id       uint
	ticketID uint
	filename string
}

func NewFile(ticketID uint, filename string) (*File, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	name, err := SanitizeFilename(filename)
	if err != nil {
		return nil, err
	}
	return &File{
		ticketID: ticketID,
		filename: name,
	}, nil
}

func ReconstructFile(id, ticketID uint, filename string) (*File, error) {
	if id == 0 {
		return nil, fmt.Errorf("file ID cannot be zero")
	}
	return &File{
		id:       id,
		ticketID: ticketID,
		filename: filename,
	}, nil
}

func (f *File) ID() uint {
	return f.id
}

func (f *File) TicketID() uint {
	return f.ticketID
}

func (f *File) Filename() string {
	return f.filename
}

func (f *File) SetID(id uint) error {
	if f.id != 0 {
		return fmt.Errorf("file ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("file ID cannot be zero")
	}
	f.id = id
	return nil
}

// maxFilenameBytes matches NAME_MAX on common filesystems.
const maxFilenameBytes = 255

// reservedFilenameChars cannot appear in a Windows file name.
const reservedFilenameChars = `<>:"|?*`

// SanitizeFilename reduces a client-supplied name to its base component so it
// cannot escape the ticket's upload directory. Names the filesystem would
// refuse are rejected here rather than failing at write time.
func SanitizeFilename(filename string) (string, error) {
	name := strings.ReplaceAll(strings.TrimSpace(filename), "\\", "/")
	name = path.Base(name)
	if name == "." || name == "/" || name == ".." || name == "" {
		return "", errors.NewValidationError("invalid file name", filename)
	}
	if len(name) > maxFilenameBytes {
		return "", errors.NewValidationError("file name too long", fmt.Sprintf("max %d bytes", maxFilenameBytes))
	}
	if !utf8.ValidString(name) {
		return "", errors.NewValidationError("invalid file name", "file name is not valid UTF-8")
	}
	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			return "", errors.NewValidationError("invalid file name", "file name contains control characters")
		}
		if strings.ContainsRune(reservedFilenameChars, r) {
			return "", errors.NewValidationError("invalid file name", fmt.Sprintf("file name contains %q", r))
		}
	}
	if strings.HasSuffix(name, ".") || strings.HasSuffix(name, " ") {
		return "", errors.NewValidationError("invalid file name", "file name cannot end with a dot or space")
	}
	return name, nil
}
