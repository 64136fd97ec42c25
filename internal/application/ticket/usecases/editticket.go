package usecases

import (
	"context"
	"fmt"

	"github.com/helpdesk-inc/helpdesk/internal/application/ticket/dto"
	"github.com/helpdesk-inc/helpdesk/internal/domain/ticket"
	vo "github.com/helpdesk-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdesk-inc/helpdesk/internal/shared/db"
	"github.com/helpdesk-inc/helpdesk/internal/shared/logger"
)

// Editing is restricted to the ticket's own identity; console sessions play
// no part in it.

type GetEditTicketQuery struct {
	TicketID uint
	Caller   vo.OwnerIdentity
}

type GetEditTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	gate       AccessGate
	logger     logger.Interface
}

func NewGetEditTicketUseCase(
	ticketRepo ticket.TicketRepository,
	gate AccessGate,
	logger logger.Interface,
) *GetEditTicketUseCase {
	return &GetEditTicketUseCase{
		ticketRepo: ticketRepo,
		gate:       gate,
		logger:     logger,
	}
}

func (uc *GetEditTicketUseCase) Execute(ctx context.Context, query GetEditTicketQuery) (*dto.EditTicketDTO, error) {
	t, err := uc.ticketRepo.GetByID(ctx, query.TicketID)
	if err != nil {
		return nil, err
	}

	if err := uc.gate.CanEdit(query.Caller, t); err != nil {
		return nil, err
	}

	return dto.ToEditTicketDTO(t), nil
}

type UpdateTicketCommand struct {
	TicketID    uint
	Caller      vo.OwnerIdentity
	Title       string
	Description string
}

type UpdateTicketResult struct {
	TicketID uint
	Title    string
}

type UpdateTicketUseCase struct {
	txManager  db.TxRunner
	ticketRepo ticket.TicketRepository
	gate       AccessGate
	logger     logger.Interface
}

func NewUpdateTicketUseCase(
	txManager db.TxRunner,
	ticketRepo ticket.TicketRepository,
	gate AccessGate,
	logger logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		txManager:  txManager,
		ticketRepo: ticketRepo,
		gate:       gate,
		logger:     logger,
	}
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*UpdateTicketResult, error) {
	uc.logger.Infow("executing update ticket use case", "ticket_id", cmd.TicketID, "caller", cmd.Caller.String())

	var result UpdateTicketResult
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		t, err := uc.ticketRepo.GetByID(txCtx, cmd.TicketID)
		if err != nil {
			return err
		}

		if err := uc.gate.CanEdit(cmd.Caller, t); err != nil {
			return err
		}

		if err := t.Edit(cmd.Title, cmd.Description); err != nil {
			return err
		}

		if err := uc.ticketRepo.UpdateContent(txCtx, t); err != nil {
			return fmt.Errorf("failed to update ticket: %w", err)
		}

		result = UpdateTicketResult{TicketID: t.ID(), Title: t.Title()}
		return nil
	})
	if err != nil {
		uc.logger.Warnw("failed to update ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	uc.logger.Infow("ticket updated successfully", "ticket_id", result.TicketID)
	return &result, nil
}
