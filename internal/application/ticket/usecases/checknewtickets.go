package usecases

import (
	"context"
	"fmt"

	"github.com/helpdesk-inc/helpdesk/internal/application/ticket/dto"
	"github.com/helpdesk-inc/helpdesk/internal/domain/ticket"
	"github.com/helpdesk-inc/helpdesk/internal/shared/authorization"
	"github.com/helpdesk-inc/helpdesk/internal/shared/logger"
)

type CheckNewTicketsQuery struct {
	Auth authorization.AuthContext
}

type CheckNewTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	gate       AccessGate
	logger     logger.Interface
}

func NewCheckNewTicketsUseCase(
	ticketRepo ticket.TicketRepository,
	gate AccessGate,
	logger logger.Interface,
) *CheckNewTicketsUseCase {
	return &CheckNewTicketsUseCase{
		ticketRepo: ticketRepo,
		gate:       gate,
		logger:     logger,
	}
}

// Execute reports unseen tickets for the console poll. Polling does not mark
// anything seen.
func (uc *CheckNewTicketsUseCase) Execute(ctx context.Context, query CheckNewTicketsQuery) ([]dto.NewTicketDTO, error) {
	if err := uc.gate.CanViewNewCount(query.Auth); err != nil {
		return nil, err
	}

	tickets, err := uc.ticketRepo.ListNew(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list new tickets", "error", err)
		return nil, fmt.Errorf("failed to list new tickets: %w", err)
	}

	return dto.ToNewTicketDTOs(tickets), nil
}
