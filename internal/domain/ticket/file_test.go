package ticket

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdesk-inc/helpdesk/internal/shared/errors"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"report.pdf", "report.pdf"},
		{"../../etc/passwd.txt", "passwd.txt"},
		{`C:\Users\ivanov\scan.png`, "scan.png"},
		{"/abs/path/log.txt", "log.txt"},
	}

	for _, tt := range tests {
		got, err := SanitizeFilename(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestSanitizeFilename_Rejects(t *testing.T) {
	for _, input := range []string{"", "  ", "..", "/", "a/.."} {
		_, err := SanitizeFilename(input)
		assert.True(t, errors.IsValidationError(err), "input %q", input)
	}
}

func TestSanitizeFilename_RejectsUnstorableNames(t *testing.T) {
	inputs := []string{
		"scan\x00.png",
		"line\nbreak.txt",
		"tab\there.txt",
		"del\x7f.txt",
		"what?.txt",
		"a|b.txt",
		"<tag>.txt",
		`quote".txt`,
		"star*.txt",
		"ads:stream.txt",
		"bad\xff\xfe.txt",
		"trailing.",
		strings.Repeat("n", 252) + ".txt",
	}
	for _, input := range inputs {
		_, err := SanitizeFilename(input)
		assert.True(t, errors.IsValidationError(err), "input %q", input)
	}
}

func TestNewFile(t *testing.T) {
	f, err := NewFile(4, "dir/screen.png")
	require.NoError(t, err)
	assert.Equal(t, uint(4), f.TicketID())
	assert.Equal(t, "screen.png", f.Filename())

	_, err = NewFile(0, "x.png")
	assert.Error(t, err)
}
