package ticket

import (
	"errors"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/helpdesk-inc/helpdesk/internal/application/ticket/usecases"
	vo "github.com/helpdesk-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdesk-inc/helpdesk/internal/shared/authorization"
	apperrors "github.com/helpdesk-inc/helpdesk/internal/shared/errors"
	"github.com/helpdesk-inc/helpdesk/internal/shared/logger"
	"github.com/helpdesk-inc/helpdesk/internal/shared/utils"
)

// IdentityResolver is satisfied by *identity.Resolver.
type IdentityResolver interface {
	Resolve(remoteAddr string) vo.OwnerIdentity
}

type TicketHandler struct {
	createTicketUC     usecases.CreateTicketExecutor
	getTicketUC        usecases.GetTicketExecutor
	addMessageUC       usecases.AddMessageExecutor
	changeStatusUC     usecases.ChangeStatusExecutor
	getEditTicketUC    usecases.GetEditTicketExecutor
	updateTicketUC     usecases.UpdateTicketExecutor
	listAdminTicketsUC usecases.ListAdminTicketsExecutor
	listMyTicketsUC    usecases.ListMyTicketsExecutor
	checkNewTicketsUC  usecases.CheckNewTicketsExecutor
	downloadUC         usecases.DownloadAttachmentExecutor
	identity           IdentityResolver
	logger             logger.Interface
}

func NewTicketHandler(
	createTicketUC usecases.CreateTicketExecutor,
	getTicketUC usecases.GetTicketExecutor,
	addMessageUC usecases.AddMessageExecutor,
	changeStatusUC usecases.ChangeStatusExecutor,
	getEditTicketUC usecases.GetEditTicketExecutor,
	updateTicketUC usecases.UpdateTicketExecutor,
	listAdminTicketsUC usecases.ListAdminTicketsExecutor,
	listMyTicketsUC usecases.ListMyTicketsExecutor,
	checkNewTicketsUC usecases.CheckNewTicketsExecutor,
	downloadUC usecases.DownloadAttachmentExecutor,
	identity IdentityResolver,
	logger logger.Interface,
) *TicketHandler {
	return &TicketHandler{
		createTicketUC:     createTicketUC,
		getTicketUC:        getTicketUC,
		addMessageUC:       addMessageUC,
		changeStatusUC:     changeStatusUC,
		getEditTicketUC:    getEditTicketUC,
		updateTicketUC:     updateTicketUC,
		listAdminTicketsUC: listAdminTicketsUC,
		listMyTicketsUC:    listMyTicketsUC,
		checkNewTicketsUC:  checkNewTicketsUC,
		downloadUC:         downloadUC,
		identity:           identity,
		logger:             logger,
	}
}

func (h *TicketHandler) caller(c *gin.Context) vo.OwnerIdentity {
	return h.identity.Resolve(c.RemoteIP())
}

// bind accepts JSON, urlencoded and multipart bodies and runs struct validation.
func (h *TicketHandler) bind(c *gin.Context, req interface{}) error {
	if err := c.ShouldBind(req); err != nil {
		return apperrors.NewValidationError("invalid request body", err.Error())
	}
	return utils.ValidateStruct(req)
}

// CreateTicket handles POST /ticket
// @Summary Create a ticket
// @Description File a ticket with zero or more attachments in the "files" field
// @Tags tickets
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param files formData file false "Attachments"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Router /ticket [post]
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var req CreateTicketRequest
	if err := h.bind(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	var files []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		files = form.File[filesField]
	} else if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError("invalid multipart form", err.Error()))
		return
	}

	result, err := h.createTicketUC.Execute(c.Request.Context(), req.ToCommand(h.caller(c), files))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Ticket created successfully")
}

// GetTicket handles GET /ticket/:id
// @Summary View a ticket
// @Description Ticket with messages and attachments. An administrator opening it marks it seen.
// @Tags tickets
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /ticket/{id} [get]
func (h *TicketHandler) GetTicket(c *gin.Context) {
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getTicketUC.Execute(c.Request.Context(), usecases.GetTicketQuery{
		TicketID: ticketID,
		Auth:     authorization.GetAuthContext(c),
		Caller:   h.caller(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// AddMessage handles POST /ticket/:id
// @Summary Reply to a ticket
// @Tags tickets
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path int true "Ticket ID"
// @Param message body AddMessageRequest true "Message"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /ticket/{id} [post]
func (h *TicketHandler) AddMessage(c *gin.Context) {
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AddMessageRequest
	if err := h.bind(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.addMessageUC.Execute(c.Request.Context(), usecases.AddMessageCommand{
		TicketID: ticketID,
		Auth:     authorization.GetAuthContext(c),
		Caller:   h.caller(c),
		Content:  req.Content,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Message added successfully")
}

// UpdateStatus handles POST /update_ticket/:id
// @Summary Change ticket status
// @Tags admin
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path int true "Ticket ID"
// @Param status body UpdateStatusRequest true "Open, InProgress or Closed"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /update_ticket/{id} [post]
func (h *TicketHandler) UpdateStatus(c *gin.Context) {
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateStatusRequest
	if err := h.bind(c, &req); err != nil {
		h.logger.Warnw("invalid request body for update ticket status", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.changeStatusUC.Execute(c.Request.Context(), usecases.ChangeStatusCommand{
		TicketID: ticketID,
		Auth:     authorization.GetAuthContext(c),
		Status:   req.Status,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket status updated", result)
}

// GetEditTicket handles GET /edit_ticket/:id
// @Summary Load a ticket for editing
// @Tags tickets
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /edit_ticket/{id} [get]
func (h *TicketHandler) GetEditTicket(c *gin.Context) {
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getEditTicketUC.Execute(c.Request.Context(), usecases.GetEditTicketQuery{
		TicketID: ticketID,
		Caller:   h.caller(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateTicket handles POST /edit_ticket/:id
// @Summary Edit ticket title and description
// @Tags tickets
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path int true "Ticket ID"
// @Param ticket body EditTicketRequest true "New fields"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /edit_ticket/{id} [post]
func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req EditTicketRequest
	if err := h.bind(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateTicketUC.Execute(c.Request.Context(), usecases.UpdateTicketCommand{
		TicketID:    ticketID,
		Caller:      h.caller(c),
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket updated successfully", result)
}

// ListAdminTickets handles GET /admin
// @Summary List all tickets
// @Description Newest first, 15 per page. Every listed ticket is marked seen.
// @Tags admin
// @Produce json
// @Param page query int false "Page number"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /admin [get]
func (h *TicketHandler) ListAdminTickets(c *gin.Context) {
	p := utils.ParsePage(c)

	result, err := h.listAdminTicketsUC.Execute(c.Request.Context(), usecases.ListAdminTicketsQuery{
		Auth: authorization.GetAuthContext(c),
		Page: p.Page,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", AdminTicketListResponse{
		ListResponse: utils.ListResponse{
			Items:      result.Tickets,
			Total:      result.TotalCount,
			Page:       result.Page,
			PageSize:   result.PageSize,
			TotalPages: result.TotalPages,
		},
		StatusOptions: result.StatusOptions,
	})
}

// ListMyTickets handles GET /my_tickets
// @Summary List the caller's own tickets
// @Tags tickets
// @Produce json
// @Param page query int false "Page number"
// @Success 200 {object} utils.APIResponse
// @Router /my_tickets [get]
func (h *TicketHandler) ListMyTickets(c *gin.Context) {
	p := utils.ParsePage(c)

	result, err := h.listMyTicketsUC.Execute(c.Request.Context(), usecases.ListMyTicketsQuery{
		Caller: h.caller(c),
		Page:   p.Page,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Tickets, result.TotalCount, result.Page, result.PageSize)
}

// CheckNewTickets handles GET /check_new_tickets
// @Summary Poll unseen tickets
// @Tags admin
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /check_new_tickets [get]
func (h *TicketHandler) CheckNewTickets(c *gin.Context) {
	result, err := h.checkNewTicketsUC.Execute(c.Request.Context(), usecases.CheckNewTicketsQuery{
		Auth: authorization.GetAuthContext(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", NewTicketsResponse{NewTickets: result})
}

// DownloadAttachment handles GET /uploads/:ticket_id/:filename
// @Summary Download an attachment
// @Tags tickets
// @Produce octet-stream
// @Param ticket_id path int true "Ticket ID"
// @Param filename path string true "Stored file name"
// @Success 200 {file} file
// @Failure 404 {object} utils.APIResponse
// @Router /uploads/{ticket_id}/{filename} [get]
func (h *TicketHandler) DownloadAttachment(c *gin.Context) {
	ticketID, err := utils.ParseUintParam(c, "ticket_id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, apperrors.NewNotFoundError("file not found"))
		return
	}

	blob, err := h.downloadUC.Execute(c.Request.Context(), usecases.DownloadAttachmentQuery{
		TicketID: ticketID,
		Filename: c.Param("filename"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	defer blob.Close()

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": blob.Name}))
	http.ServeContent(c.Writer, c.Request, blob.Name, blob.ModTime, blob)
}
