package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/helpdesk-inc/helpdesk/internal/domain/ticket"
	vo "github.com/helpdesk-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdesk-inc/helpdesk/internal/shared/authorization"
	"github.com/helpdesk-inc/helpdesk/internal/shared/db"
	"github.com/helpdesk-inc/helpdesk/internal/shared/logger"
)

type AddMessageCommand struct {
	TicketID uint
	Auth     authorization.AuthContext
	Caller   vo.OwnerIdentity
	Content  string
}

type AddMessageResult struct {
	MessageID uint
	TicketID  uint
	CreatedAt time.Time
}

type AddMessageUseCase struct {
	txManager   db.TxRunner
	ticketRepo  ticket.TicketRepository
	messageRepo ticket.MessageRepository
	gate        AccessGate
	logger      logger.Interface
}

func NewAddMessageUseCase(
	txManager db.TxRunner,
	ticketRepo ticket.TicketRepository,
	messageRepo ticket.MessageRepository,
	gate AccessGate,
	logger logger.Interface,
) *AddMessageUseCase {
	return &AddMessageUseCase{
		txManager:   txManager,
		ticketRepo:  ticketRepo,
		messageRepo: messageRepo,
		gate:        gate,
		logger:      logger,
	}
}

// Execute appends a message authored by the caller's identity. The ticket's
// status is left alone.
func (uc *AddMessageUseCase) Execute(ctx context.Context, cmd AddMessageCommand) (*AddMessageResult, error) {
	uc.logger.Infow("executing add message use case", "ticket_id", cmd.TicketID, "caller", cmd.Caller.String())

	var msg *ticket.Message
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		t, err := uc.ticketRepo.GetByID(txCtx, cmd.TicketID)
		if err != nil {
			return err
		}

		if err := uc.gate.CanRespond(cmd.Auth, cmd.Caller, t); err != nil {
			return err
		}

		msg, err = ticket.NewMessage(t, cmd.Caller, cmd.Content)
		if err != nil {
			return err
		}

		if err := uc.messageRepo.Create(txCtx, msg); err != nil {
			return fmt.Errorf("failed to save message: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Warnw("failed to add message", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	uc.logger.Infow("message added successfully", "ticket_id", cmd.TicketID, "message_id", msg.ID())

	return &AddMessageResult{
		MessageID: msg.ID(),
		TicketID:  msg.TicketID(),
		CreatedAt: msg.CreatedAt(),
	}, nil
}
