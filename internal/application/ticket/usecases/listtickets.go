package usecases

import (
	"context"
	"fmt"

	"github.com/helpdesk-inc/helpdesk/internal/application/ticket/dto"
	"github.com/helpdesk-inc/helpdesk/internal/domain/ticket"
	vo "github.com/helpdesk-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdesk-inc/helpdesk/internal/shared/authorization"
	"github.com/helpdesk-inc/helpdesk/internal/shared/constants"
	"github.com/helpdesk-inc/helpdesk/internal/shared/db"
	"github.com/helpdesk-inc/helpdesk/internal/shared/i18n"
	"github.com/helpdesk-inc/helpdesk/internal/shared/logger"
	"github.com/helpdesk-inc/helpdesk/internal/shared/utils"
)

type ListTicketsResult struct {
	Tickets    []dto.TicketListItemDTO
	TotalCount int64
	Page       int
	PageSize   int
	TotalPages int
	// StatusOptions is filled for the admin list only.
	StatusOptions []i18n.StatusOption
}

func newListResult(items []dto.TicketListItemDTO, total int64, p utils.Pagination) *ListTicketsResult {
	return &ListTicketsResult{
		Tickets:    items,
		TotalCount: total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: utils.TotalPages(total, p.PageSize),
	}
}

type ListAdminTicketsQuery struct {
	Auth authorization.AuthContext
	Page int
}

type ListAdminTicketsUseCase struct {
	txManager  db.TxRunner
	ticketRepo ticket.TicketRepository
	gate       AccessGate
	presenter  *dto.Presenter
	logger     logger.Interface
}

func NewListAdminTicketsUseCase(
	txManager db.TxRunner,
	ticketRepo ticket.TicketRepository,
	gate AccessGate,
	presenter *dto.Presenter,
	logger logger.Interface,
) *ListAdminTicketsUseCase {
	return &ListAdminTicketsUseCase{
		txManager:  txManager,
		ticketRepo: ticketRepo,
		gate:       gate,
		presenter:  presenter,
		logger:     logger,
	}
}

// Execute lists every ticket newest first and marks the listed ones seen in
// the same transaction as the read.
func (uc *ListAdminTicketsUseCase) Execute(ctx context.Context, query ListAdminTicketsQuery) (*ListTicketsResult, error) {
	if err := uc.gate.CanListAll(query.Auth); err != nil {
		return nil, err
	}

	p := utils.ValidatePagination(query.Page, constants.DefaultPageSize)

	var (
		tickets []*ticket.Ticket
		total   int64
	)
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		tickets, total, err = uc.ticketRepo.List(txCtx, ticket.TicketFilter{
			Page:     p.Page,
			PageSize: p.PageSize,
		})
		if err != nil {
			return fmt.Errorf("failed to list tickets: %w", err)
		}

		seen := make([]uint, 0, len(tickets))
		for _, t := range tickets {
			if t.MarkSeen() {
				seen = append(seen, t.ID())
			}
		}
		if len(seen) == 0 {
			return nil
		}
		if err := uc.ticketRepo.MarkSeen(txCtx, seen); err != nil {
			return fmt.Errorf("failed to mark tickets seen: %w", err)
		}
		uc.logger.Debugw("listed tickets marked seen", "count", len(seen))
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to list admin tickets", "page", p.Page, "error", err)
		return nil, err
	}

	result := newListResult(uc.presenter.ToTicketListItemDTOs(tickets), total, p)
	result.StatusOptions = uc.presenter.StatusOptions()
	return result, nil
}

type ListMyTicketsQuery struct {
	Caller vo.OwnerIdentity
	Page   int
}

type ListMyTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	presenter  *dto.Presenter
	logger     logger.Interface
}

func NewListMyTicketsUseCase(
	ticketRepo ticket.TicketRepository,
	presenter *dto.Presenter,
	logger logger.Interface,
) *ListMyTicketsUseCase {
	return &ListMyTicketsUseCase{
		ticketRepo: ticketRepo,
		presenter:  presenter,
		logger:     logger,
	}
}

// Execute lists the caller's own tickets. It never changes the new flag.
func (uc *ListMyTicketsUseCase) Execute(ctx context.Context, query ListMyTicketsQuery) (*ListTicketsResult, error) {
	p := utils.ValidatePagination(query.Page, constants.DefaultPageSize)
	owner := query.Caller

	tickets, total, err := uc.ticketRepo.List(ctx, ticket.TicketFilter{
		Owner:    &owner,
		Page:     p.Page,
		PageSize: p.PageSize,
	})
	if err != nil {
		uc.logger.Errorw("failed to list own tickets", "caller", owner.String(), "error", err)
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	return newListResult(uc.presenter.ToTicketListItemDTOs(tickets), total, p), nil
}
