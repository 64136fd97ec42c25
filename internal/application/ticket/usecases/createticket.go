package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/helpdesk-inc/helpdesk/internal/domain/ticket"
	vo "github.com/helpdesk-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdesk-inc/helpdesk/internal/infrastructure/storage"
	"github.com/helpdesk-inc/helpdesk/internal/shared/db"
	"github.com/helpdesk-inc/helpdesk/internal/shared/logger"
)

type CreateTicketCommand struct {
	Title       string
	Description string
	Owner       vo.OwnerIdentity
	Attachments []Attachment
}

type CreateTicketResult struct {
	TicketID  uint
	Status    string
	Files     []string
	CreatedAt time.Time
}

type CreateTicketUseCase struct {
	txManager  db.TxRunner
	ticketRepo ticket.TicketRepository
	fileRepo   ticket.FileRepository
	blobs      BlobStore
	policy     AttachmentPolicy
	logger     logger.Interface
}

func NewCreateTicketUseCase(
	txManager db.TxRunner,
	ticketRepo ticket.TicketRepository,
	fileRepo ticket.FileRepository,
	blobs BlobStore,
	policy AttachmentPolicy,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		txManager:  txManager,
		ticketRepo: ticketRepo,
		fileRepo:   fileRepo,
		blobs:      blobs,
		policy:     policy,
		logger:     logger,
	}
}

type pendingAttachment struct {
	name       string
	attachment Attachment
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error) {
	uc.logger.Infow("executing create ticket use case", "owner", cmd.Owner.String(), "attachments", len(cmd.Attachments))

	newTicket, err := ticket.NewTicket(cmd.Title, cmd.Description, cmd.Owner)
	if err != nil {
		uc.logger.Warnw("invalid create ticket command", "error", err)
		return nil, err
	}

	pending := make([]pendingAttachment, 0, len(cmd.Attachments))
	for _, a := range cmd.Attachments {
		// browsers send an empty part when no file was chosen
		if a.Filename == "" {
			continue
		}
		name, err := uc.policy.Check(a)
		if err != nil {
			uc.logger.Warnw("attachment rejected", "filename", a.Filename, "error", err)
			return nil, err
		}
		pending = append(pending, pendingAttachment{name: name, attachment: a})
	}

	var saved []storage.SavedBlob
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.Create(txCtx, newTicket); err != nil {
			return fmt.Errorf("failed to save ticket: %w", err)
		}

		for _, p := range pending {
			blob, err := uc.store(newTicket.ID(), p)
			if err != nil {
				return err
			}
			saved = append(saved, blob)

			file, err := ticket.NewFile(newTicket.ID(), blob.Name)
			if err != nil {
				return err
			}
			if err := uc.fileRepo.Create(txCtx, file); err != nil {
				return fmt.Errorf("failed to record attachment: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		uc.discard(saved)
		uc.logger.Errorw("failed to create ticket", "error", err, "discarded_files", len(saved))
		return nil, err
	}

	files := make([]string, 0, len(saved))
	for _, b := range saved {
		files = append(files, b.Name)
	}

	uc.logger.Infow("ticket created successfully", "ticket_id", newTicket.ID(), "files", len(files))

	return &CreateTicketResult{
		TicketID:  newTicket.ID(),
		Status:    newTicket.Status().String(),
		Files:     files,
		CreatedAt: newTicket.CreatedAt(),
	}, nil
}

func (uc *CreateTicketUseCase) store(ticketID uint, p pendingAttachment) (storage.SavedBlob, error) {
	r, err := p.attachment.Open()
	if err != nil {
		return storage.SavedBlob{}, fmt.Errorf("failed to read upload %s: %w", p.name, err)
	}
	defer r.Close()

	return uc.blobs.Save(ticketID, p.name, r)
}

// discard runs newest first so the ticket directory is empty by the time the
// blob that created it is removed.
func (uc *CreateTicketUseCase) discard(saved []storage.SavedBlob) {
	for i := len(saved) - 1; i >= 0; i-- {
		uc.blobs.Discard(saved[i])
	}
}
