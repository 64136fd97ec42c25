// Package storage keeps ticket attachments on the local filesystem under
// {root}/{ticket_id}/{filename}.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/helpdesk-inc/helpdesk/internal/shared/errors"
	"github.com/helpdesk-inc/helpdesk/internal/shared/logger"
)

// CollisionPolicy decides what happens when a ticket already has a file
// with the uploaded name.
type CollisionPolicy string

const (
	// CollisionOverwrite replaces the stored bytes; last write wins.
	CollisionOverwrite CollisionPolicy = "overwrite"
	// CollisionSuffix stores name-1.ext, name-2.ext, ...
	CollisionSuffix CollisionPolicy = "suffix"

	maxSuffixAttempts = 1000
)

func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	switch CollisionPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", CollisionOverwrite:
		return CollisionOverwrite, nil
	case CollisionSuffix:
		return CollisionSuffix, nil
	default:
		return "", fmt.Errorf("unknown collision policy: %q", s)
	}
}

// SavedBlob describes one write, enough to undo it.
type SavedBlob struct {
	TicketID   uint
	Name       string
	Replaced   bool
	CreatedDir bool
}

// Blob is an open attachment for download.
type Blob struct {
	io.ReadSeekCloser
	Name    string
	Size    int64
	ModTime time.Time
}

type LocalStore struct {
	root   string
	policy CollisionPolicy
	logger logger.Interface
}

func NewLocalStore(root string, policy CollisionPolicy, log logger.Interface) *LocalStore {
	return &LocalStore{
		root:   root,
		policy: policy,
		logger: log,
	}
}

func (s *LocalStore) dir(ticketID uint) string {
	return filepath.Join(s.root, strconv.FormatUint(uint64(ticketID), 10))
}

// Save writes r under the ticket's directory, creating it if needed. name
// must already be a bare file name.
func (s *LocalStore) Save(ticketID uint, name string, r io.Reader) (SavedBlob, error) {
	if name != filepath.Base(name) || name == "." || name == ".." {
		return SavedBlob{}, apperrors.NewValidationError("invalid file name", name)
	}

	dir := s.dir(ticketID)
	createdDir := false
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		createdDir = true
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return SavedBlob{}, fmt.Errorf("failed to create upload directory: %w", err)
	}

	f, storedName, replaced, err := s.create(dir, name)
	if err != nil {
		if createdDir {
			_ = os.Remove(dir)
		}
		return SavedBlob{}, err
	}

	saved := SavedBlob{TicketID: ticketID, Name: storedName, Replaced: replaced, CreatedDir: createdDir}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		s.Discard(saved)
		return SavedBlob{}, fmt.Errorf("failed to write attachment: %w", err)
	}
	if err := f.Close(); err != nil {
		s.Discard(saved)
		return SavedBlob{}, fmt.Errorf("failed to close attachment: %w", err)
	}

	s.logger.Debugw("attachment stored", "ticket_id", ticketID, "filename", storedName, "replaced", replaced)
	return saved, nil
}

func (s *LocalStore) create(dir, name string) (*os.File, string, bool, error) {
	path := filepath.Join(dir, name)

	if s.policy == CollisionOverwrite {
		_, statErr := os.Stat(path)
		replaced := statErr == nil
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			return nil, "", false, fmt.Errorf("failed to create attachment: %w", err)
		}
		return f, name, replaced, nil
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	candidate := name
	for i := 1; i <= maxSuffixAttempts; i++ {
		f, err := os.OpenFile(filepath.Join(dir, candidate), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, candidate, false, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", false, fmt.Errorf("failed to create attachment: %w", err)
		}
		candidate = fmt.Sprintf("%s-%d%s", stem, i, ext)
	}
	return nil, "", false, fmt.Errorf("too many attachments named %q", name)
}

// Discard undoes a Save. Files that replaced earlier bytes are left in place
// since the previous content is gone either way. Errors are logged.
func (s *LocalStore) Discard(saved SavedBlob) {
	if saved.Name == "" {
		return
	}
	dir := s.dir(saved.TicketID)

	if !saved.Replaced {
		if err := os.Remove(filepath.Join(dir, saved.Name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.logger.Warnw("failed to remove orphaned attachment", "ticket_id", saved.TicketID, "filename", saved.Name, "error", err)
		}
	}
	if saved.CreatedDir {
		// only succeeds once the directory is empty
		_ = os.Remove(dir)
	}
}

// Open returns the stored attachment or a NotFound error.
func (s *LocalStore) Open(ticketID uint, name string) (*Blob, error) {
	if name != filepath.Base(name) || name == "." || name == ".." {
		return nil, apperrors.NewNotFoundError("file not found")
	}

	f, err := os.Open(filepath.Join(s.dir(ticketID), name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperrors.NewNotFoundError("file not found")
		}
		return nil, fmt.Errorf("failed to open attachment: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to stat attachment: %w", err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, apperrors.NewNotFoundError("file not found")
	}

	return &Blob{
		ReadSeekCloser: f,
		Name:           name,
		Size:           info.Size(),
		ModTime:        info.ModTime(),
	}, nil
}
