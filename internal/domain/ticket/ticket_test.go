package ticket

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/helpdesk-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdesk-inc/helpdesk/internal/shared/errors"
)

var testOwner = vo.NewOwnerIdentity("10.0.0.5", "ivanov")

func newValidTicket(t *testing.T) *Ticket {
	t.Helper()
	tk, err := NewTicket("Printer jammed", "Second floor printer jams on every page", testOwner)
	require.NoError(t, err)
	require.NoError(t, tk.SetID(1))
	return tk
}

func TestNewTicket(t *testing.T) {
	before := time.Now().UTC()
	tk, err := NewTicket("  Printer jammed ", "desc", testOwner)
	require.NoError(t, err)

	assert.Equal(t, "Printer jammed", tk.Title())
	assert.Equal(t, vo.StatusOpen, tk.Status())
	assert.True(t, tk.IsNew())
	assert.True(t, tk.IsOwnedBy(testOwner))
	assert.Nil(t, tk.ReceivedAt())
	assert.Nil(t, tk.ClosedAt())
	assert.False(t, tk.CreatedAt().Before(before))
}

func TestNewTicket_Validation(t *testing.T) {
	tests := []struct {
		name  string
		title string
		desc  string
	}{
		{"empty title", "", "desc"},
		{"blank title", "   ", "desc"},
		{"empty description", "title", ""},
		{"blank description", "title", "\n\t"},
		{"title too long", strings.Repeat("я", 151), "desc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk, err := NewTicket(tt.title, tt.desc, testOwner)
			assert.Nil(t, tk)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestNewTicket_TitleAtLimit(t *testing.T) {
	_, err := NewTicket(strings.Repeat("я", 150), "desc", testOwner)
	assert.NoError(t, err)
}

func TestChangeStatus_InProgressStampsReceived(t *testing.T) {
	tk := newValidTicket(t)

	require.NoError(t, tk.ChangeStatus(vo.StatusInProgress))
	assert.Equal(t, vo.StatusInProgress, tk.Status())
	require.NotNil(t, tk.ReceivedAt())
	assert.Nil(t, tk.ClosedAt())
}

func TestChangeStatus_CloseFromOpenStampsBoth(t *testing.T) {
	tk := newValidTicket(t)

	require.NoError(t, tk.ChangeStatus(vo.StatusClosed))
	require.NotNil(t, tk.ReceivedAt())
	require.NotNil(t, tk.ClosedAt())
	assert.False(t, tk.ClosedAt().Before(*tk.ReceivedAt()))
}

func TestChangeStatus_TimestampsNeverOverwritten(t *testing.T) {
	tk := newValidTicket(t)

	require.NoError(t, tk.ChangeStatus(vo.StatusInProgress))
	received := *tk.ReceivedAt()

	require.NoError(t, tk.ChangeStatus(vo.StatusClosed))
	closed := *tk.ClosedAt()
	assert.Equal(t, received, *tk.ReceivedAt())

	time.Sleep(time.Millisecond)
	require.NoError(t, tk.ChangeStatus(vo.StatusClosed))
	assert.Equal(t, closed, *tk.ClosedAt(), "repeated close is idempotent")
}

func TestChangeStatus_ReopenKeepsTimestamps(t *testing.T) {
	tk := newValidTicket(t)
	require.NoError(t, tk.ChangeStatus(vo.StatusClosed))
	received, closed := *tk.ReceivedAt(), *tk.ClosedAt()

	require.NoError(t, tk.ChangeStatus(vo.StatusOpen))
	assert.Equal(t, vo.StatusOpen, tk.Status())
	assert.Equal(t, received, *tk.ReceivedAt())
	assert.Equal(t, closed, *tk.ClosedAt())

	require.NoError(t, tk.ChangeStatus(vo.StatusInProgress))
	assert.Equal(t, received, *tk.ReceivedAt())
}

func TestChangeStatus_BackToOpenDoesNotStamp(t *testing.T) {
	tk := newValidTicket(t)
	require.NoError(t, tk.ChangeStatus(vo.StatusOpen))
	assert.Nil(t, tk.ReceivedAt())
}

func TestChangeStatus_Invalid(t *testing.T) {
	tk := newValidTicket(t)

	err := tk.ChangeStatus(vo.TicketStatus("archived"))
	assert.True(t, errors.IsValidationError(err))
	assert.Equal(t, vo.StatusOpen, tk.Status())
	assert.Nil(t, tk.ReceivedAt())
}

func TestMarkSeen_Monotone(t *testing.T) {
	tk := newValidTicket(t)

	assert.True(t, tk.MarkSeen())
	assert.False(t, tk.IsNew())
	assert.False(t, tk.MarkSeen())
	assert.False(t, tk.IsNew())
}

func TestEdit(t *testing.T) {
	tk := newValidTicket(t)
	require.NoError(t, tk.ChangeStatus(vo.StatusInProgress))

	require.NoError(t, tk.Edit("New title", "New description"))
	assert.Equal(t, "New title", tk.Title())
	assert.Equal(t, "New description", tk.Description())
	assert.Equal(t, vo.StatusInProgress, tk.Status())

	err := tk.Edit("", "x")
	assert.True(t, errors.IsValidationError(err))
	assert.Equal(t, "New title", tk.Title())
}

func TestSetID(t *testing.T) {
	tk, err := NewTicket("t", "d", testOwner)
	require.NoError(t, err)

	assert.Error(t, tk.SetID(0))
	require.NoError(t, tk.SetID(5))
	assert.Error(t, tk.SetID(6))
	assert.Equal(t, uint(5), tk.ID())
}

func TestReconstructTicket(t *testing.T) {
	now := time.Now().UTC()

	tk, err := ReconstructTicket(3, "t", "d", vo.StatusClosed, testOwner, false, now, &now, &now, 4)
	require.NoError(t, err)
	assert.Equal(t, uint(3), tk.ID())
	assert.Equal(t, 4, tk.Version())
	assert.False(t, tk.IsNew())

	_, err = ReconstructTicket(0, "t", "d", vo.StatusOpen, testOwner, true, now, nil, nil, 1)
	assert.Error(t, err)

	_, err = ReconstructTicket(3, "t", "d", vo.TicketStatus("bogus"), testOwner, true, now, nil, nil, 1)
	assert.Error(t, err)
}
