package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/helpdesk-inc/helpdesk/internal/domain/ticket"
	"github.com/helpdesk-inc/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/helpdesk-inc/helpdesk/internal/infrastructure/persistence/models"
	"github.com/helpdesk-inc/helpdesk/internal/shared/db"
	"github.com/helpdesk-inc/helpdesk/internal/shared/mapper"
)

type MessageRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *MessageRepository) Create(ctx context.Context, msg *ticket.Message) error {
	model := r.mapper.MessageToModel(msg)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	return msg.SetID(model.ID)
}

// ListByTicketID returns messages oldest first.
func (r *MessageRepository) ListByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Message, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var messageModels []*models.TicketMessageModel
	if err := tx.Where("ticket_id = ?", ticketID).
		Order("created_at ASC").Order("id ASC").
		Find(&messageModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	messages, err := mapper.MapSlicePtrWithID(messageModels, r.mapper.MessageToDomain,
		func(m *models.TicketMessageModel) uint { return m.ID })
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []*ticket.Message{}
	}
	return messages, nil
}
