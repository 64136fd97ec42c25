package ticket

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/helpdesk-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdesk-inc/helpdesk/internal/shared/biztime"
	"github.com/helpdesk-inc/helpdesk/internal/shared/errors"
)

// Message is an append-only reply on a ticket, attributed to the identity
// that posted it.
type Message struct {
	id        uint
	ticketID  uint
	author    vo.OwnerIdentity
	content   string
	createdAt time.Time
}

// NewMessage builds a reply on t. Posting a message has no effect on the
// ticket's status or timestamps.
func NewMessage(t *Ticket, author vo.OwnerIdentity, content string) (*Message, error) {
	if t == nil || t.ID() == 0 {
		return nil, fmt.Errorf("message requires a persisted ticket")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.NewValidationError("message content is required")
	}

	return &Message{
		ticketID:  t.ID(),
		author:    author,
		content:   content,
		createdAt: biztime.NowUTC(),
	}, nil
}

func ReconstructMessage(
	id uint,
	ticketID uint,
	author vo.OwnerIdentity,
	content string,
	createdAt time.Time,
) (*Message, error) {
	if id == 0 {
		return nil, fmt.Errorf("message ID cannot be zero")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}

	return &Message{
		id:        id,
		ticketID:  ticketID,
		author:    author,
		content:   content,
		createdAt: createdAt,
	}, nil
}

func (m *Message) ID() uint {
	return m.id
}

func (m *Message) TicketID() uint {
	return m.ticketID
}

func (m *Message) Author() vo.OwnerIdentity {
	return m.author
}

func (m *Message) Content() string {
	return m.content
}

func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}

func (m *Message) SetID(id uint) error {
	if m.id != 0 {
		return fmt.Errorf("message ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("message ID cannot be zero")
	}
	m.id = id
	return nil
}
