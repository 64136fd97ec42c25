package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/helpdesk-inc/helpdesk/internal/domain/ticket"
	"github.com/helpdesk-inc/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/helpdesk-inc/helpdesk/internal/infrastructure/persistence/models"
	"github.com/helpdesk-inc/helpdesk/internal/shared/db"
	apperrors "github.com/helpdesk-inc/helpdesk/internal/shared/errors"
	"github.com/helpdesk-inc/helpdesk/internal/shared/logger"
)

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
	logger logger.Interface
}

func NewTicketRepository(db *gorm.DB, logger logger.Interface) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
		logger: logger,
	}
}

func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}

	return t.SetID(model.ID)
}

func (r *TicketRepository) UpdateContent(ctx context.Context, t *ticket.Ticket) error {
	return r.updateVersioned(ctx, t, map[string]interface{}{
		"title":       t.Title(),
		"description": t.Description(),
	})
}

// UpdateStatus never writes is_new; that flag only moves through MarkSeen.
func (r *TicketRepository) UpdateStatus(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	return r.updateVersioned(ctx, t, map[string]interface{}{
		"status":      model.Status,
		"received_at": model.ReceivedAt,
		"closed_at":   model.ClosedAt,
	})
}

// updateVersioned writes columns only while the row still carries the version
// t was loaded at, then advances the version on both sides.
func (r *TicketRepository) updateVersioned(ctx context.Context, t *ticket.Ticket, columns map[string]interface{}) error {
	tx := db.GetTxFromContext(ctx, r.db)
	columns["version"] = gorm.Expr("version + 1")

	result := tx.Model(&models.TicketModel{}).
		Where("id = ? AND version = ?", t.ID(), t.Version()).
		Updates(columns)
	if result.Error != nil {
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&models.TicketModel{}).Where("id = ?", t.ID()).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check ticket: %w", err)
		}
		if count == 0 {
			return apperrors.NewNotFoundError("ticket not found")
		}
		r.logger.Warnw("stale ticket write rejected", "ticket_id", t.ID(), "version", t.Version())
		return apperrors.NewConflictError("ticket was modified concurrently, reload and retry",
			fmt.Sprintf("version mismatch for ticket %d", t.ID()))
	}

	t.SetVersion(t.Version() + 1)
	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("ticket not found")
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.TicketModel{})

	if filter.Owner != nil {
		query = query.Where("ip_address = ? AND pc_name = ?", filter.Owner.IP(), filter.Owner.PCName())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	var ticketModels []*models.TicketModel
	if err := query.
		Scopes(db.NewestFirst(), db.Paginate(filter.Page, filter.PageSize)).
		Find(&ticketModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	return r.toDomainList(ticketModels), total, nil
}

func (r *TicketRepository) ListNew(ctx context.Context) ([]*ticket.Ticket, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var ticketModels []*models.TicketModel
	if err := tx.Where("is_new = ?", true).
		Scopes(db.NewestFirst()).
		Find(&ticketModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list new tickets: %w", err)
	}

	return r.toDomainList(ticketModels), nil
}

// MarkSeen clears is_new for all given tickets in one statement.
func (r *TicketRepository) MarkSeen(ctx context.Context, ticketIDs []uint) error {
	if len(ticketIDs) == 0 {
		return nil
	}
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.TicketModel{}).
		Where("id IN ? AND is_new = ?", ticketIDs, true).
		Update("is_new", false)
	if result.Error != nil {
		return fmt.Errorf("failed to mark tickets seen: %w", result.Error)
	}

	r.logger.Debugw("tickets marked seen", "requested", len(ticketIDs), "updated", result.RowsAffected)
	return nil
}

// toDomainList skips rows that no longer map to a ticket, such as free-text
// statuses left by old deployments. Skipped rows are logged.
func (r *TicketRepository) toDomainList(ticketModels []*models.TicketModel) []*ticket.Ticket {
	tickets := make([]*ticket.Ticket, 0, len(ticketModels))
	for _, m := range ticketModels {
		t, err := r.mapper.ToDomain(m)
		if err != nil {
			r.logger.Warnw("skipping unreadable ticket row", "ticket_id", m.ID, "status", m.Status, "error", err)
			continue
		}
		tickets = append(tickets, t)
	}
	return tickets
}
