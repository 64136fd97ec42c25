package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/helpdesk-inc/helpdesk/internal/domain/ticket"
	vo "github.com/helpdesk-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdesk-inc/helpdesk/internal/shared/authorization"
	"github.com/helpdesk-inc/helpdesk/internal/shared/db"
	"github.com/helpdesk-inc/helpdesk/internal/shared/errors"
	"github.com/helpdesk-inc/helpdesk/internal/shared/logger"
)

type ChangeStatusCommand struct {
	TicketID uint
	Auth     authorization.AuthContext
	Status   string
}

type ChangeStatusResult struct {
	TicketID   uint
	OldStatus  string
	NewStatus  string
	ReceivedAt *time.Time
	ClosedAt   *time.Time
}

type ChangeStatusUseCase struct {
	txManager  db.TxRunner
	ticketRepo ticket.TicketRepository
	gate       AccessGate
	logger     logger.Interface
}

func NewChangeStatusUseCase(
	txManager db.TxRunner,
	ticketRepo ticket.TicketRepository,
	gate AccessGate,
	logger logger.Interface,
) *ChangeStatusUseCase {
	return &ChangeStatusUseCase{
		txManager:  txManager,
		ticketRepo: ticketRepo,
		gate:       gate,
		logger:     logger,
	}
}

func (uc *ChangeStatusUseCase) Execute(ctx context.Context, cmd ChangeStatusCommand) (*ChangeStatusResult, error) {
	uc.logger.Infow("executing change status use case", "ticket_id", cmd.TicketID, "status", cmd.Status, "user_id", cmd.Auth.UserID)

	if err := uc.gate.CanChangeStatus(cmd.Auth); err != nil {
		return nil, err
	}

	newStatus, err := vo.NewTicketStatus(cmd.Status)
	if err != nil {
		uc.logger.Warnw("invalid ticket status", "status", cmd.Status)
		return nil, errors.NewValidationError("invalid ticket status", cmd.Status)
	}

	var result ChangeStatusResult
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		t, err := uc.ticketRepo.GetByID(txCtx, cmd.TicketID)
		if err != nil {
			return err
		}

		oldStatus := t.Status()
		if err := t.ChangeStatus(newStatus); err != nil {
			return err
		}

		if err := uc.ticketRepo.UpdateStatus(txCtx, t); err != nil {
			return fmt.Errorf("failed to update ticket: %w", err)
		}

		result = ChangeStatusResult{
			TicketID:   t.ID(),
			OldStatus:  oldStatus.String(),
			NewStatus:  t.Status().String(),
			ReceivedAt: t.ReceivedAt(),
			ClosedAt:   t.ClosedAt(),
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to change ticket status", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	uc.logger.Infow("ticket status changed successfully",
		"ticket_id", result.TicketID,
		"old_status", result.OldStatus,
		"new_status", result.NewStatus,
	)

	return &result, nil
}
