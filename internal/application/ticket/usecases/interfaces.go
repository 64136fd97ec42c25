package usecases

import (
	"context"

	"github.com/helpdesk-inc/helpdesk/internal/application/ticket/dto"
	"github.com/helpdesk-inc/helpdesk/internal/domain/ticket"
	vo "github.com/helpdesk-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdesk-inc/helpdesk/internal/infrastructure/storage"
	"github.com/helpdesk-inc/helpdesk/internal/shared/authorization"
)

// AccessGate is satisfied by *access.Gate.
type AccessGate interface {
	CanView(auth authorization.AuthContext, caller vo.OwnerIdentity, t *ticket.Ticket) error
	CanRespond(auth authorization.AuthContext, caller vo.OwnerIdentity, t *ticket.Ticket) error
	CanEdit(caller vo.OwnerIdentity, t *ticket.Ticket) error
	CanListAll(auth authorization.AuthContext) error
	CanChangeStatus(auth authorization.AuthContext) error
	CanViewNewCount(auth authorization.AuthContext) error
	IsAdminViewer(auth authorization.AuthContext) bool
}

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error)
}

type AddMessageExecutor interface {
	Execute(ctx context.Context, cmd AddMessageCommand) (*AddMessageResult, error)
}

type ChangeStatusExecutor interface {
	Execute(ctx context.Context, cmd ChangeStatusCommand) (*ChangeStatusResult, error)
}

type GetEditTicketExecutor interface {
	Execute(ctx context.Context, query GetEditTicketQuery) (*dto.EditTicketDTO, error)
}

type UpdateTicketExecutor interface {
	Execute(ctx context.Context, cmd UpdateTicketCommand) (*UpdateTicketResult, error)
}

type ListAdminTicketsExecutor interface {
	Execute(ctx context.Context, query ListAdminTicketsQuery) (*ListTicketsResult, error)
}

type ListMyTicketsExecutor interface {
	Execute(ctx context.Context, query ListMyTicketsQuery) (*ListTicketsResult, error)
}

type CheckNewTicketsExecutor interface {
	Execute(ctx context.Context, query CheckNewTicketsQuery) ([]dto.NewTicketDTO, error)
}

type DownloadAttachmentExecutor interface {
	Execute(ctx context.Context, query DownloadAttachmentQuery) (*storage.Blob, error)
}
