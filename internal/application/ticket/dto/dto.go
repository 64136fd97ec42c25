package dto

import (
	"fmt"
	"html"
	"net/url"
	"strconv"
	"time"

	"github.com/helpdesk-inc/helpdesk/internal/domain/ticket"
	"github.com/helpdesk-inc/helpdesk/internal/shared/biztime"
	"github.com/helpdesk-inc/helpdesk/internal/shared/i18n"
	"github.com/helpdesk-inc/helpdesk/internal/shared/mapper"
	"github.com/helpdesk-inc/helpdesk/internal/shared/services/markdown"
)

type TicketDTO struct {
	ID              uint         `json:"id"`
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	DescriptionHTML string       `json:"description_html"`
	Status          string       `json:"status"`
	StatusLabel     string       `json:"status_label"`
	PCName          string       `json:"pc_name"`
	IPAddress       string       `json:"ip_address"`
	IsNew           bool         `json:"is_new"`
	CreatedAt       time.Time    `json:"created_at"`
	ReceivedAt      *time.Time   `json:"received_at"`
	ClosedAt        *time.Time   `json:"closed_at"`
	CreatedAtText   string       `json:"created_at_text"`
	ReceivedAtText  string       `json:"received_at_text"`
	ClosedAtText    string       `json:"closed_at_text"`
	Messages        []MessageDTO `json:"messages"`
	Files           []FileDTO    `json:"files"`
}

type MessageDTO struct {
	ID            uint      `json:"id"`
	PCName        string    `json:"pc_name"`
	IPAddress     string    `json:"ip_address"`
	Content       string    `json:"content"`
	ContentHTML   string    `json:"content_html"`
	CreatedAt     time.Time `json:"created_at"`
	CreatedAtText string    `json:"created_at_text"`
}

type FileDTO struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

type TicketListItemDTO struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	Status        string `json:"status"`
	StatusLabel   string `json:"status_label"`
	PCName        string `json:"pc_name"`
	IPAddress     string `json:"ip_address"`
	IsNew         bool   `json:"is_new"`
	CreatedAtText string `json:"created_at_text"`
	ClosedAtText  string `json:"closed_at_text"`
}

// NewTicketDTO is one entry of the admin new-ticket poll.
type NewTicketDTO struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

type EditTicketDTO struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// FileURL is the public download path of an attachment.
func FileURL(ticketID uint, filename string) string {
	return fmt.Sprintf("/uploads/%s/%s", strconv.FormatUint(uint64(ticketID), 10), url.PathEscape(filename))
}

// Presenter turns entities into view DTOs with rendered text and localized
// labels.
type Presenter struct {
	renderer  markdown.Renderer
	localizer *i18n.Localizer
}

func NewPresenter(renderer markdown.Renderer, localizer *i18n.Localizer) *Presenter {
	return &Presenter{
		renderer:  renderer,
		localizer: localizer,
	}
}

// StatusOptions lists the statuses an admin can pick, with localized labels.
func (p *Presenter) StatusOptions() []i18n.StatusOption {
	return p.localizer.StatusOptions()
}

// render falls back to escaped plain text so a rendering failure never hides
// the ticket.
func (p *Presenter) render(text string) string {
	out, err := p.renderer.Render(text)
	if err != nil {
		return html.EscapeString(text)
	}
	return out
}

func (p *Presenter) ToTicketDTO(t *ticket.Ticket, messages []*ticket.Message, files []*ticket.File) *TicketDTO {
	if t == nil {
		return nil
	}

	messageDTOs := make([]MessageDTO, 0, len(messages))
	for _, m := range messages {
		messageDTOs = append(messageDTOs, p.ToMessageDTO(m))
	}

	fileDTOs := make([]FileDTO, 0, len(files))
	for _, f := range files {
		fileDTOs = append(fileDTOs, ToFileDTO(f))
	}

	return &TicketDTO{
		ID:              t.ID(),
		Title:           t.Title(),
		Description:     t.Description(),
		DescriptionHTML: p.render(t.Description()),
		Status:          t.Status().String(),
		StatusLabel:     p.localizer.StatusLabel(t.Status()),
		PCName:          t.Owner().PCName(),
		IPAddress:       t.Owner().IP(),
		IsNew:           t.IsNew(),
		CreatedAt:       t.CreatedAt(),
		ReceivedAt:      t.ReceivedAt(),
		ClosedAt:        t.ClosedAt(),
		CreatedAtText:   biztime.FormatDisplay(t.CreatedAt()),
		ReceivedAtText:  biztime.FormatDisplayPtr(t.ReceivedAt()),
		ClosedAtText:    biztime.FormatDisplayPtr(t.ClosedAt()),
		Messages:        messageDTOs,
		Files:           fileDTOs,
	}
}

func (p *Presenter) ToMessageDTO(m *ticket.Message) MessageDTO {
	return MessageDTO{
		ID:            m.ID(),
		PCName:        m.Author().PCName(),
		IPAddress:     m.Author().IP(),
		Content:       m.Content(),
		ContentHTML:   p.render(m.Content()),
		CreatedAt:     m.CreatedAt(),
		CreatedAtText: biztime.FormatDisplay(m.CreatedAt()),
	}
}

func ToFileDTO(f *ticket.File) FileDTO {
	return FileDTO{
		Filename: f.Filename(),
		URL:      FileURL(f.TicketID(), f.Filename()),
	}
}

func (p *Presenter) ToTicketListItemDTO(t *ticket.Ticket) TicketListItemDTO {
	return TicketListItemDTO{
		ID:            t.ID(),
		Title:         t.Title(),
		Status:        t.Status().String(),
		StatusLabel:   p.localizer.StatusLabel(t.Status()),
		PCName:        t.Owner().PCName(),
		IPAddress:     t.Owner().IP(),
		IsNew:         t.IsNew(),
		CreatedAtText: biztime.FormatDisplay(t.CreatedAt()),
		ClosedAtText:  biztime.FormatDisplayPtr(t.ClosedAt()),
	}
}

func (p *Presenter) ToTicketListItemDTOs(tickets []*ticket.Ticket) []TicketListItemDTO {
	items := mapper.MapSlice(tickets, p.ToTicketListItemDTO)
	if items == nil {
		return []TicketListItemDTO{}
	}
	return items
}

func ToNewTicketDTOs(tickets []*ticket.Ticket) []NewTicketDTO {
	out := make([]NewTicketDTO, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, NewTicketDTO{ID: t.ID(), Title: t.Title()})
	}
	return out
}

func ToEditTicketDTO(t *ticket.Ticket) *EditTicketDTO {
	return &EditTicketDTO{
		ID:          t.ID(),
		Title:       t.Title(),
		Description: t.Description(),
	}
}
