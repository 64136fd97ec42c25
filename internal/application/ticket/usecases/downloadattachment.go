package usecases

import (
	"context"

	"github.com/helpdesk-inc/helpdesk/internal/domain/ticket"
	"github.com/helpdesk-inc/helpdesk/internal/infrastructure/storage"
	"github.com/helpdesk-inc/helpdesk/internal/shared/errors"
	"github.com/helpdesk-inc/helpdesk/internal/shared/logger"
)

type DownloadAttachmentQuery struct {
	TicketID uint
	Filename string
}

type DownloadAttachmentUseCase struct {
	fileRepo ticket.FileRepository
	blobs    BlobStore
	logger   logger.Interface
}

func NewDownloadAttachmentUseCase(fileRepo ticket.FileRepository, blobs BlobStore, logger logger.Interface) *DownloadAttachmentUseCase {
	return &DownloadAttachmentUseCase{
		fileRepo: fileRepo,
		blobs:    blobs,
		logger:   logger,
	}
}

// Execute opens a stored attachment that has a File record. Anyone holding
// the URL may download; there is no ownership check. The caller closes the
// blob.
func (uc *DownloadAttachmentUseCase) Execute(ctx context.Context, query DownloadAttachmentQuery) (*storage.Blob, error) {
	if query.TicketID == 0 || query.Filename == "" {
		return nil, errors.NewNotFoundError("file not found")
	}

	file, err := uc.fileRepo.GetByTicketAndName(ctx, query.TicketID, query.Filename)
	if err != nil {
		if !errors.IsNotFoundError(err) {
			uc.logger.Errorw("failed to look up attachment", "ticket_id", query.TicketID, "filename", query.Filename, "error", err)
		}
		return nil, err
	}

	blob, err := uc.blobs.Open(file.TicketID(), file.Filename())
	if err != nil {
		if !errors.IsNotFoundError(err) {
			uc.logger.Errorw("failed to open attachment", "ticket_id", query.TicketID, "filename", query.Filename, "error", err)
		}
		return nil, err
	}
	return blob, nil
}
