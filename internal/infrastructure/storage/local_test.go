package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/helpdesk-inc/helpdesk/internal/shared/errors"
	"github.com/helpdesk-inc/helpdesk/internal/shared/logger"
)

func readBlob(t *testing.T, s *LocalStore, ticketID uint, name string) string {
	t.Helper()
	b, err := s.Open(ticketID, name)
	require.NoError(t, err)
	defer b.Close()
	data, err := io.ReadAll(b)
	require.NoError(t, err)
	return string(data)
}

func TestParseCollisionPolicy(t *testing.T) {
	p, err := ParseCollisionPolicy("")
	require.NoError(t, err)
	assert.Equal(t, CollisionOverwrite, p)

	p, err = ParseCollisionPolicy("Suffix")
	require.NoError(t, err)
	assert.Equal(t, CollisionSuffix, p)

	_, err = ParseCollisionPolicy("rename")
	assert.Error(t, err)
}

func TestLocalStore_SaveAndOpen(t *testing.T) {
	root := t.TempDir()
	s := NewLocalStore(root, CollisionOverwrite, logger.NewNopLogger())

	saved, err := s.Save(7, "scan.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "scan.png", saved.Name)
	assert.True(t, saved.CreatedDir)
	assert.False(t, saved.Replaced)

	assert.FileExists(t, filepath.Join(root, "7", "scan.png"))
	assert.Equal(t, "png-bytes", readBlob(t, s, 7, "scan.png"))

	b, err := s.Open(7, "scan.png")
	require.NoError(t, err)
	assert.Equal(t, int64(9), b.Size)
	require.NoError(t, b.Close())
}

func TestLocalStore_OverwriteLastWriteWins(t *testing.T) {
	s := NewLocalStore(t.TempDir(), CollisionOverwrite, logger.NewNopLogger())

	_, err := s.Save(1, "log.txt", strings.NewReader("first"))
	require.NoError(t, err)
	second, err := s.Save(1, "log.txt", strings.NewReader("second"))
	require.NoError(t, err)

	assert.Equal(t, "log.txt", second.Name)
	assert.True(t, second.Replaced)
	assert.False(t, second.CreatedDir)
	assert.Equal(t, "second", readBlob(t, s, 1, "log.txt"))
}

func TestLocalStore_SuffixKeepsBoth(t *testing.T) {
	s := NewLocalStore(t.TempDir(), CollisionSuffix, logger.NewNopLogger())

	a, err := s.Save(1, "log.txt", strings.NewReader("a"))
	require.NoError(t, err)
	b, err := s.Save(1, "log.txt", strings.NewReader("b"))
	require.NoError(t, err)
	c, err := s.Save(1, "log.txt", strings.NewReader("c"))
	require.NoError(t, err)

	assert.Equal(t, "log.txt", a.Name)
	assert.Equal(t, "log-1.txt", b.Name)
	assert.Equal(t, "log-2.txt", c.Name)
	assert.Equal(t, "a", readBlob(t, s, 1, "log.txt"))
	assert.Equal(t, "b", readBlob(t, s, 1, "log-1.txt"))
}

func TestLocalStore_DiscardRemovesFileAndDir(t *testing.T) {
	root := t.TempDir()
	s := NewLocalStore(root, CollisionOverwrite, logger.NewNopLogger())

	a, err := s.Save(3, "a.txt", strings.NewReader("a"))
	require.NoError(t, err)
	b, err := s.Save(3, "b.txt", strings.NewReader("b"))
	require.NoError(t, err)

	s.Discard(b)
	s.Discard(a)

	_, err = os.Stat(filepath.Join(root, "3"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStore_DiscardKeepsPreexistingDir(t *testing.T) {
	root := t.TempDir()
	s := NewLocalStore(root, CollisionOverwrite, logger.NewNopLogger())

	_, err := s.Save(3, "keep.txt", strings.NewReader("k"))
	require.NoError(t, err)
	tmp, err := s.Save(3, "tmp.txt", strings.NewReader("t"))
	require.NoError(t, err)

	s.Discard(tmp)
	assert.NoFileExists(t, filepath.Join(root, "3", "tmp.txt"))
	assert.FileExists(t, filepath.Join(root, "3", "keep.txt"))
}

func TestLocalStore_Open_NotFound(t *testing.T) {
	s := NewLocalStore(t.TempDir(), CollisionOverwrite, logger.NewNopLogger())

	_, err := s.Open(1, "missing.txt")
	assert.True(t, apperrors.IsNotFoundError(err))

	_, err = s.Open(1, "../secret.txt")
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestLocalStore_Save_RejectsPaths(t *testing.T) {
	s := NewLocalStore(t.TempDir(), CollisionOverwrite, logger.NewNopLogger())

	_, err := s.Save(1, "../escape.txt", strings.NewReader("x"))
	assert.True(t, apperrors.IsValidationError(err))
}
