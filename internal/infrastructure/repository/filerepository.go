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
	"github.com/helpdesk-inc/helpdesk/internal/shared/mapper"
)

type FileRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewFileRepository(db *gorm.DB) *FileRepository {
	return &FileRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

// Create records an attachment. Under the overwrite policy the same name may
// be stored twice for one ticket; the existing row is reused so the ticket
// lists each stored name once.
func (r *FileRepository) Create(ctx context.Context, f *ticket.File) error {
	tx := db.GetTxFromContext(ctx, r.db)

	var existing models.TicketFileModel
	err := tx.Where("ticket_id = ? AND filename = ?", f.TicketID(), f.Filename()).First(&existing).Error
	switch {
	case err == nil:
		return f.SetID(existing.ID)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("failed to look up file: %w", err)
	}

	model := r.mapper.FileToModel(f)
	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create file record: %w", err)
	}
	return f.SetID(model.ID)
}

func (r *FileRepository) ListByTicketID(ctx context.Context, ticketID uint) ([]*ticket.File, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var fileModels []*models.TicketFileModel
	if err := tx.Where("ticket_id = ?", ticketID).Order("id ASC").Find(&fileModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	files, err := mapper.MapSlicePtrWithID(fileModels, r.mapper.FileToDomain,
		func(m *models.TicketFileModel) uint { return m.ID })
	if err != nil {
		return nil, err
	}
	if files == nil {
		files = []*ticket.File{}
	}
	return files, nil
}

func (r *FileRepository) GetByTicketAndName(ctx context.Context, ticketID uint, filename string) (*ticket.File, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.TicketFileModel
	if err := tx.Where("ticket_id = ? AND filename = ?", ticketID, filename).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("file not found")
		}
		return nil, fmt.Errorf("failed to get file: %w", err)
	}
	return r.mapper.FileToDomain(&model)
}
