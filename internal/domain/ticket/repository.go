package ticket

import (
	"context"

	vo "github.com/helpdesk-inc/helpdesk/internal/domain/ticket/valueobjects"
)

type TicketRepository interface {
	Create(ctx context.Context, ticket *Ticket) error
	// UpdateContent persists title and description. UpdateStatus persists the
	// status with its lifecycle timestamps. Both fail with a conflict when the
	// stored row changed since the ticket was loaded.
	UpdateContent(ctx context.Context, ticket *Ticket) error
	UpdateStatus(ctx context.Context, ticket *Ticket) error
	GetByID(ctx context.Context, ticketID uint) (*Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]*Ticket, int64, error)
	ListNew(ctx context.Context) ([]*Ticket, error)
	MarkSeen(ctx context.Context, ticketIDs []uint) error
}

// TicketFilter selects tickets newest first. A nil Owner lists every ticket.
type TicketFilter struct {
	Owner    *vo.OwnerIdentity
	Page     int
	PageSize int
}

type MessageRepository interface {
	Create(ctx context.Context, message *Message) error
	ListByTicketID(ctx context.Context, ticketID uint) ([]*Message, error)
}

type FileRepository interface {
	Create(ctx context.Context, file *File) error
	ListByTicketID(ctx context.Context, ticketID uint) ([]*File, error)
	GetByTicketAndName(ctx context.Context, ticketID uint, filename string) (*File, error)
}
