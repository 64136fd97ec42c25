package ticket

import (
	"io"
	"mime/multipart"

	"github.com/helpdesk-inc/helpdesk/internal/application/ticket/usecases"
	vo "github.com/helpdesk-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdesk-inc/helpdesk/internal/shared/i18n"
	"github.com/helpdesk-inc/helpdesk/internal/shared/utils"
)

// filesField is the multipart field carrying attachments.
const filesField = "files"

type CreateTicketRequest struct {
	Title       string `form:"title" json:"title" validate:"notblank,max=150"`
	Description string `form:"description" json:"description" validate:"notblank"`
}

func (r *CreateTicketRequest) ToCommand(owner vo.OwnerIdentity, files []*multipart.FileHeader) usecases.CreateTicketCommand {
	attachments := make([]usecases.Attachment, 0, len(files))
	for _, fh := range files {
		attachments = append(attachments, usecases.Attachment{
			Filename: fh.Filename,
			Size:     fh.Size,
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}

	return usecases.CreateTicketCommand{
		Title:       r.Title,
		Description: r.Description,
		Owner:       owner,
		Attachments: attachments,
	}
}

type AddMessageRequest struct {
	Content string `form:"content" json:"content" validate:"notblank"`
}

type UpdateStatusRequest struct {
	Status string `form:"status" json:"status" validate:"notblank"`
}

type EditTicketRequest struct {
	Title       string `form:"title" json:"title" validate:"notblank,max=150"`
	Description string `form:"description" json:"description" validate:"notblank"`
}

// NewTicketsResponse is the payload of the admin polling endpoint.
type NewTicketsResponse struct {
	NewTickets interface{} `json:"new_tickets"`
}

// AdminTicketListResponse is the /admin page plus the status choices for the
// status selector.
type AdminTicketListResponse struct {
	utils.ListResponse
	StatusOptions []i18n.StatusOption `json:"status_options"`
}
