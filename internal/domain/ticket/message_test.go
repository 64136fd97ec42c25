package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/helpdesk-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdesk-inc/helpdesk/internal/shared/errors"
)

func TestNewMessage(t *testing.T) {
	tk := newValidTicket(t)
	author := vo.NewOwnerIdentity("10.0.0.9", "admin-pc")

	msg, err := NewMessage(tk, author, "  Looking into it ")
	require.NoError(t, err)
	assert.Equal(t, tk.ID(), msg.TicketID())
	assert.Equal(t, "Looking into it", msg.Content())
	assert.True(t, msg.Author().Equals(author))
	assert.False(t, msg.CreatedAt().IsZero())

	assert.Equal(t, vo.StatusOpen, tk.Status(), "no status side effect")
	assert.Nil(t, tk.ReceivedAt())
}

func TestNewMessage_EmptyContent(t *testing.T) {
	tk := newValidTicket(t)

	_, err := NewMessage(tk, testOwner, "   ")
	assert.True(t, errors.IsValidationError(err))
}

func TestNewMessage_UnsavedTicket(t *testing.T) {
	tk, err := NewTicket("t", "d", testOwner)
	require.NoError(t, err)

	_, err = NewMessage(tk, testOwner, "hi")
	assert.Error(t, err)
}
