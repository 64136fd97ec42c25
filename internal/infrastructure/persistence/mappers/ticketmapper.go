package mappers

import (
	"fmt"
	"time"

	"github.com/helpdesk-inc/helpdesk/internal/domain/ticket"
	vo "github.com/helpdesk-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdesk-inc/helpdesk/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between ticket domain entities and persistence models.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) *models.TicketModel
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)
	MessageToModel(m *ticket.Message) *models.TicketMessageModel
	MessageToDomain(model *models.TicketMessageModel) (*ticket.Message, error)
	FileToModel(f *ticket.File) *models.TicketFileModel
	FileToDomain(model *models.TicketFileModel) (*ticket.File, error)
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	return &models.TicketModel{
		ID:          t.ID(),
		CreatedAt:   t.CreatedAt().UTC(),
		ReceivedAt:  utcPtr(t.ReceivedAt()),
		ClosedAt:    utcPtr(t.ClosedAt()),
		Title:       t.Title(),
		Description: t.Description(),
		Status:      t.Status().String(),
		PCName:      t.Owner().PCName(),
		IPAddress:   t.Owner().IP(),
		IsNew:       t.IsNew(),
		Version:     t.Version(),
	}
}

// ToDomain accepts both canonical and legacy status values; rows written by
// earlier deployments carry localized labels.
func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	status, err := vo.NewTicketStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("ticket %d: %w", model.ID, err)
	}

	return ticket.ReconstructTicket(
		model.ID,
		model.Title,
		model.Description,
		status,
		vo.NewOwnerIdentity(model.IPAddress, model.PCName),
		model.IsNew,
		model.CreatedAt.UTC(),
		utcPtr(model.ReceivedAt),
		utcPtr(model.ClosedAt),
		model.Version,
	)
}

func (m *TicketMapperImpl) MessageToModel(msg *ticket.Message) *models.TicketMessageModel {
	return &models.TicketMessageModel{
		ID:        msg.ID(),
		TicketID:  msg.TicketID(),
		IPAddress: msg.Author().IP(),
		PCName:    msg.Author().PCName(),
		Content:   msg.Content(),
		CreatedAt: msg.CreatedAt().UTC(),
	}
}

func (m *TicketMapperImpl) MessageToDomain(model *models.TicketMessageModel) (*ticket.Message, error) {
	return ticket.ReconstructMessage(
		model.ID,
		model.TicketID,
		vo.NewOwnerIdentity(model.IPAddress, model.PCName),
		model.Content,
		model.CreatedAt.UTC(),
	)
}

func (m *TicketMapperImpl) FileToModel(f *ticket.File) *models.TicketFileModel {
	return &models.TicketFileModel{
		ID:       f.ID(),
		Filename: f.Filename(),
		TicketID: f.TicketID(),
	}
}

func (m *TicketMapperImpl) FileToDomain(model *models.TicketFileModel) (*ticket.File, error) {
	return ticket.ReconstructFile(model.ID, model.TicketID, model.Filename)
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
