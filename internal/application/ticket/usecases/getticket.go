package usecases

import (
	"context"
	"fmt"

	"github.com/helpdesk-inc/helpdesk/internal/application/ticket/dto"
	"github.com/helpdesk-inc/helpdesk/internal/domain/ticket"
	vo "github.com/helpdesk-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdesk-inc/helpdesk/internal/shared/authorization"
	"github.com/helpdesk-inc/helpdesk/internal/shared/db"
	"github.com/helpdesk-inc/helpdesk/internal/shared/logger"
)

type GetTicketQuery struct {
	TicketID uint
	Auth     authorization.AuthContext
	Caller   vo.OwnerIdentity
}

type GetTicketUseCase struct {
	txManager   db.TxRunner
	ticketRepo  ticket.TicketRepository
	messageRepo ticket.MessageRepository
	fileRepo    ticket.FileRepository
	gate        AccessGate
	presenter   *dto.Presenter
	logger      logger.Interface
}

func NewGetTicketUseCase(
	txManager db.TxRunner,
	ticketRepo ticket.TicketRepository,
	messageRepo ticket.MessageRepository,
	fileRepo ticket.FileRepository,
	gate AccessGate,
	presenter *dto.Presenter,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		txManager:   txManager,
		ticketRepo:  ticketRepo,
		messageRepo: messageRepo,
		fileRepo:    fileRepo,
		gate:        gate,
		presenter:   presenter,
		logger:      logger,
	}
}

// Execute loads a ticket with its conversation. An admin opening the ticket
// clears its new flag.
func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error) {
	var (
		t        *ticket.Ticket
		messages []*ticket.Message
		files    []*ticket.File
	)

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		t, err = uc.ticketRepo.GetByID(txCtx, query.TicketID)
		if err != nil {
			return err
		}

		if err := uc.gate.CanView(query.Auth, query.Caller, t); err != nil {
			return err
		}

		if uc.gate.IsAdminViewer(query.Auth) && t.MarkSeen() {
			if err := uc.ticketRepo.MarkSeen(txCtx, []uint{t.ID()}); err != nil {
				return fmt.Errorf("failed to mark ticket seen: %w", err)
			}
			uc.logger.Debugw("ticket marked seen", "ticket_id", t.ID(), "user_id", query.Auth.UserID)
		}

		if messages, err = uc.messageRepo.ListByTicketID(txCtx, t.ID()); err != nil {
			return fmt.Errorf("failed to load messages: %w", err)
		}
		if files, err = uc.fileRepo.ListByTicketID(txCtx, t.ID()); err != nil {
			return fmt.Errorf("failed to load files: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Warnw("failed to get ticket", "ticket_id", query.TicketID, "error", err)
		return nil, err
	}

	return uc.presenter.ToTicketDTO(t, messages, files), nil
}
