package ticket

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	vo "github.com/helpdesk-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdesk-inc/helpdesk/internal/shared/biztime"
	"github.com/helpdesk-inc/helpdesk/internal/shared/constants"
	"github.com/helpdesk-inc/helpdesk/internal/shared/errors"
)

// Ticket is a support request filed by an anonymous caller.
//
// receivedAt is stamped on the first move out of Open and closedAt on the
// first close. Once set, neither is cleared or overwritten, including on
// reopen. isNew only ever goes from true to false. version is the stored row
// version this copy was loaded at; writes from an older copy are rejected.
type Ticket struct {
	id          uint
	title       string
	description string
	status      vo.TicketStatus
	owner       vo.OwnerIdentity
	isNew       bool
	createdAt   time.Time
	receivedAt  *time.Time
	closedAt    *time.Time
	version     int
}

func NewTicket(title, description string, owner vo.OwnerIdentity) (*Ticket, error) {
	title, description, err := normalizeContent(title, description)
	if err != nil {
		return nil, err
	}

	return &Ticket{
		title:       title,
		description: description,
		status:      vo.StatusOpen,
		owner:       owner,
		isNew:       true,
		createdAt:   biztime.NowUTC(),
		version:     1,
	}, nil
}

func ReconstructTicket(
	id uint,
	title string,
	description string,
	status vo.TicketStatus,
	owner vo.OwnerIdentity,
	isNew bool,
	createdAt time.Time,
	receivedAt *time.Time,
	closedAt *time.Time,
	version int,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}

	return &Ticket{
		id:          id,
		title:       title,
		description: description,
		status:      status,
		owner:       owner,
		isNew:       isNew,
		createdAt:   createdAt,
		receivedAt:  receivedAt,
		closedAt:    closedAt,
		version:     version,
	}, nil
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) Title() string {
	return t.title
}

func (t *Ticket) Description() string {
	return t.description
}

func (t *Ticket) Status() vo.TicketStatus {
	return t.status
}

func (t *Ticket) Owner() vo.OwnerIdentity {
	return t.owner
}

func (t *Ticket) IsNew() bool {
	return t.isNew
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) ReceivedAt() *time.Time {
	return t.receivedAt
}

func (t *Ticket) ClosedAt() *time.Time {
	return t.closedAt
}

func (t *Ticket) Version() int {
	return t.version
}

// SetVersion records the row version after a successful write.
func (t *Ticket) SetVersion(version int) {
	t.version = version
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

// IsOwnedBy reports whether caller is the identity that filed the ticket.
func (t *Ticket) IsOwnedBy(caller vo.OwnerIdentity) bool {
	return t.owner.Equals(caller)
}

// ChangeStatus moves the ticket to newStatus. Any move between the three
// statuses is allowed, including reopening a closed ticket.
func (t *Ticket) ChangeStatus(newStatus vo.TicketStatus) error {
	if !newStatus.IsValid() {
		return errors.NewValidationError("invalid ticket status", string(newStatus))
	}

	now := biztime.NowUTC()
	switch newStatus {
	case vo.StatusInProgress:
		t.markReceived(now)
	case vo.StatusClosed:
		t.markReceived(now)
		if t.closedAt == nil {
			t.closedAt = &now
		}
	}

	t.status = newStatus
	return nil
}

func (t *Ticket) markReceived(now time.Time) {
	if t.receivedAt == nil {
		t.receivedAt = &now
	}
}

// MarkSeen clears the new-ticket flag. Returns true if the flag changed.
func (t *Ticket) MarkSeen() bool {
	if !t.isNew {
		return false
	}
	t.isNew = false
	return true
}

// Edit replaces title and description under the same rules as creation.
func (t *Ticket) Edit(title, description string) error {
	title, description, err := normalizeContent(title, description)
	if err != nil {
		return err
	}
	t.title = title
	t.description = description
	return nil
}

func normalizeContent(title, description string) (string, string, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	if title == "" {
		return "", "", errors.NewValidationError("title is required")
	}
	if utf8.RuneCountInString(title) > constants.MaxTitleLength {
		return "", "", errors.NewValidationError(
			fmt.Sprintf("title exceeds maximum length of %d characters", constants.MaxTitleLength))
	}
	if description == "" {
		return "", "", errors.NewValidationError("description is required")
	}
	return title, description, nil
}
