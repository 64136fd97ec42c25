package ticket

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ticketdto "github.com/helpdesk-inc/helpdesk/internal/application/ticket/dto"
	"github.com/helpdesk-inc/helpdesk/internal/application/ticket/usecases"
	vo "github.com/helpdesk-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdesk-inc/helpdesk/internal/infrastructure/storage"
	"github.com/helpdesk-inc/helpdesk/internal/interfaces/http/handlers/testutil"
	"github.com/helpdesk-inc/helpdesk/internal/shared/errors"
	"github.com/helpdesk-inc/helpdesk/internal/shared/i18n"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockCreateTicketUC struct {
	got    usecases.CreateTicketCommand
	called bool
	result *usecases.CreateTicketResult
	err    error
}

func (m *mockCreateTicketUC) Execute(_ context.Context, cmd usecases.CreateTicketCommand) (*usecases.CreateTicketResult, error) {
	m.got, m.called = cmd, true
	return m.result, m.err
}

type mockGetTicketUC struct {
	got    usecases.GetTicketQuery
	result *ticketdto.TicketDTO
	err    error
}

func (m *mockGetTicketUC) Execute(_ context.Context, q usecases.GetTicketQuery) (*ticketdto.TicketDTO, error) {
	m.got = q
	return m.result, m.err
}

type mockAddMessageUC struct {
	got    usecases.AddMessageCommand
	result *usecases.AddMessageResult
	err    error
}

func (m *mockAddMessageUC) Execute(_ context.Context, cmd usecases.AddMessageCommand) (*usecases.AddMessageResult, error) {
	m.got = cmd
	return m.result, m.err
}

type mockChangeStatusUC struct {
	got    usecases.ChangeStatusCommand
	result *usecases.ChangeStatusResult
	err    error
}

func (m *mockChangeStatusUC) Execute(_ context.Context, cmd usecases.ChangeStatusCommand) (*usecases.ChangeStatusResult, error) {
	m.got = cmd
	return m.result, m.err
}

type mockGetEditTicketUC struct {
	result *ticketdto.EditTicketDTO
	err    error
}

func (m *mockGetEditTicketUC) Execute(_ context.Context, _ usecases.GetEditTicketQuery) (*ticketdto.EditTicketDTO, error) {
	return m.result, m.err
}

type mockUpdateTicketUC struct {
	got    usecases.UpdateTicketCommand
	result *usecases.UpdateTicketResult
	err    error
}

func (m *mockUpdateTicketUC) Execute(_ context.Context, cmd usecases.UpdateTicketCommand) (*usecases.UpdateTicketResult, error) {
	m.got = cmd
	return m.result, m.err
}

type mockListAdminTicketsUC struct {
	got    usecases.ListAdminTicketsQuery
	result *usecases.ListTicketsResult
	err    error
}

func (m *mockListAdminTicketsUC) Execute(_ context.Context, q usecases.ListAdminTicketsQuery) (*usecases.ListTicketsResult, error) {
	m.got = q
	return m.result, m.err
}

type mockListMyTicketsUC struct {
	got    usecases.ListMyTicketsQuery
	result *usecases.ListTicketsResult
	err    error
}

func (m *mockListMyTicketsUC) Execute(_ context.Context, q usecases.ListMyTicketsQuery) (*usecases.ListTicketsResult, error) {
	m.got = q
	return m.result, m.err
}

type mockCheckNewTicketsUC struct {
	result []ticketdto.NewTicketDTO
	err    error
}

func (m *mockCheckNewTicketsUC) Execute(_ context.Context, _ usecases.CheckNewTicketsQuery) ([]ticketdto.NewTicketDTO, error) {
	return m.result, m.err
}

type mockDownloadUC struct {
	result *storage.Blob
	err    error
}

func (m *mockDownloadUC) Execute(_ context.Context, _ usecases.DownloadAttachmentQuery) (*storage.Blob, error) {
	return m.result, m.err
}

type fixedIdentity struct{}

func (fixedIdentity) Resolve(remoteAddr string) vo.OwnerIdentity {
	return vo.NewOwnerIdentity(remoteAddr, "helpdesk-host")
}

// =====================================================================
// Test helpers
// =====================================================================

type testDeps struct {
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
}

func newTestTicketHandler(deps testDeps) *TicketHandler {
	return NewTicketHandler(
		deps.createTicketUC,
		deps.getTicketUC,
		deps.addMessageUC,
		deps.changeStatusUC,
		deps.getEditTicketUC,
		deps.updateTicketUC,
		deps.listAdminTicketsUC,
		deps.listMyTicketsUC,
		deps.checkNewTicketsUC,
		deps.downloadUC,
		fixedIdentity{},
		testutil.NewMockLogger(),
	)
}

func parse(t *testing.T, w interface{ Bytes() []byte }) testutil.APIResponse {
	t.Helper()
	var resp testutil.APIResponse
	require.NoError(t, json.Unmarshal(w.Bytes(), &resp))
	return resp
}

var caller = vo.NewOwnerIdentity(testutil.RemoteIP, "helpdesk-host")

// =====================================================================
// CreateTicket
// =====================================================================

func TestTicketHandler_CreateTicket_Multipart(t *testing.T) {
	mockUC := &mockCreateTicketUC{result: &usecases.CreateTicketResult{TicketID: 7, Status: "Open", Files: []string{"a.txt", "b.png"}}}
	handler := newTestTicketHandler(testDeps{createTicketUC: mockUC})

	c, w := testutil.NewMultipartContext(http.MethodPost, "/ticket",
		map[string]string{"title": "Printer", "description": "Paper jam"},
		[]testutil.UploadFile{
			{Field: "files", Filename: "a.txt", Content: []byte("hello")},
			{Field: "files", Filename: "b.png", Content: []byte{0x89, 0x50}},
		})

	handler.CreateTicket(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.True(t, mockUC.called)
	assert.Equal(t, "Printer", mockUC.got.Title)
	assert.True(t, caller.Equals(mockUC.got.Owner))
	require.Len(t, mockUC.got.Attachments, 2)
	assert.Equal(t, "a.txt", mockUC.got.Attachments[0].Filename)
	assert.Equal(t, int64(5), mockUC.got.Attachments[0].Size)

	rc, err := mockUC.got.Attachments[0].Open()
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestTicketHandler_CreateTicket_JSONWithoutFiles(t *testing.T) {
	mockUC := &mockCreateTicketUC{result: &usecases.CreateTicketResult{TicketID: 1, Status: "Open"}}
	handler := newTestTicketHandler(testDeps{createTicketUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/ticket", CreateTicketRequest{Title: "VPN", Description: "down"})

	handler.CreateTicket(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, mockUC.got.Attachments)
}

func TestTicketHandler_CreateTicket_BlankTitle(t *testing.T) {
	mockUC := &mockCreateTicketUC{}
	handler := newTestTicketHandler(testDeps{createTicketUC: mockUC})

	c, w := testutil.NewFormContext(http.MethodPost, "/ticket", map[string]string{"title": "   ", "description": "x"})

	handler.CreateTicket(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, mockUC.called)
	resp := parse(t, w.Body)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "validation_error", resp.Error.Type)
}

func TestTicketHandler_CreateTicket_RejectedAttachment(t *testing.T) {
	mockUC := &mockCreateTicketUC{err: errors.NewValidationError("file type not allowed", "run.exe")}
	handler := newTestTicketHandler(testDeps{createTicketUC: mockUC})

	c, w := testutil.NewMultipartContext(http.MethodPost, "/ticket",
		map[string]string{"title": "t", "description": "d"},
		[]testutil.UploadFile{{Field: "files", Filename: "run.exe", Content: []byte("MZ")}})

	handler.CreateTicket(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// =====================================================================
// GetTicket / AddMessage
// =====================================================================

func TestTicketHandler_GetTicket(t *testing.T) {
	mockUC := &mockGetTicketUC{result: &ticketdto.TicketDTO{ID: 3, Title: "Printer", Status: "Open"}}
	handler := newTestTicketHandler(testDeps{getTicketUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/ticket/3", nil)
	testutil.SetURLParam(c, "id", "3")
	testutil.SetAuthContext(c, testutil.AdminSession())

	handler.GetTicket(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(3), mockUC.got.TicketID)
	assert.True(t, mockUC.got.Auth.IsAdmin())
	assert.True(t, caller.Equals(mockUC.got.Caller))
}

func TestTicketHandler_GetTicket_Errors(t *testing.T) {
	tests := []struct {
		name  string
		param string
		err   error
		code  int
	}{
		{"bad id", "abc", nil, http.StatusBadRequest},
		{"forbidden", "3", errors.NewForbiddenError("not your ticket"), http.StatusForbidden},
		{"missing", "3", errors.NewNotFoundError("ticket not found"), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestTicketHandler(testDeps{getTicketUC: &mockGetTicketUC{err: tt.err}})
			c, w := testutil.NewTestContext(http.MethodGet, "/ticket/"+tt.param, nil)
			testutil.SetURLParam(c, "id", tt.param)

			handler.GetTicket(c)

			assert.Equal(t, tt.code, w.Code)
			assert.False(t, parse(t, w.Body).Success)
		})
	}
}

func TestTicketHandler_AddMessage(t *testing.T) {
	mockUC := &mockAddMessageUC{result: &usecases.AddMessageResult{MessageID: 10, TicketID: 3}}
	handler := newTestTicketHandler(testDeps{addMessageUC: mockUC})

	c, w := testutil.NewFormContext(http.MethodPost, "/ticket/3", map[string]string{"content": "any news?"})
	testutil.SetURLParam(c, "id", "3")

	handler.AddMessage(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "any news?", mockUC.got.Content)
	assert.False(t, mockUC.got.Auth.IsAuthenticated)
}

func TestTicketHandler_AddMessage_EmptyContent(t *testing.T) {
	handler := newTestTicketHandler(testDeps{addMessageUC: &mockAddMessageUC{}})

	c, w := testutil.NewFormContext(http.MethodPost, "/ticket/3", map[string]string{"content": ""})
	testutil.SetURLParam(c, "id", "3")

	handler.AddMessage(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// =====================================================================
// UpdateStatus / edit
// =====================================================================

func TestTicketHandler_UpdateStatus(t *testing.T) {
	now := time.Now().UTC()
	mockUC := &mockChangeStatusUC{result: &usecases.ChangeStatusResult{TicketID: 3, OldStatus: "Open", NewStatus: "Closed", ReceivedAt: &now, ClosedAt: &now}}
	handler := newTestTicketHandler(testDeps{changeStatusUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/update_ticket/3", UpdateStatusRequest{Status: "Closed"})
	testutil.SetURLParam(c, "id", "3")
	testutil.SetAuthContext(c, testutil.AdminSession())

	handler.UpdateStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Closed", mockUC.got.Status)
	assert.True(t, mockUC.got.Auth.IsAdmin())
}

func TestTicketHandler_UpdateStatus_Forbidden(t *testing.T) {
	handler := newTestTicketHandler(testDeps{changeStatusUC: &mockChangeStatusUC{err: errors.NewForbiddenError("admin only")}})

	c, w := testutil.NewFormContext(http.MethodPost, "/update_ticket/3", map[string]string{"status": "Closed"})
	testutil.SetURLParam(c, "id", "3")

	handler.UpdateStatus(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestTicketHandler_EditTicket(t *testing.T) {
	getUC := &mockGetEditTicketUC{result: &ticketdto.EditTicketDTO{ID: 3, Title: "Printer", Description: "jam"}}
	updateUC := &mockUpdateTicketUC{result: &usecases.UpdateTicketResult{TicketID: 3, Title: "Printer on 2nd floor"}}
	handler := newTestTicketHandler(testDeps{getEditTicketUC: getUC, updateTicketUC: updateUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/edit_ticket/3", nil)
	testutil.SetURLParam(c, "id", "3")
	handler.GetEditTicket(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = testutil.NewFormContext(http.MethodPost, "/edit_ticket/3", map[string]string{
		"title":       "Printer on 2nd floor",
		"description": "still jammed",
	})
	testutil.SetURLParam(c, "id", "3")
	handler.UpdateTicket(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "still jammed", updateUC.got.Description)
	assert.True(t, caller.Equals(updateUC.got.Caller))
}

// =====================================================================
// Lists
// =====================================================================

func TestTicketHandler_ListAdminTickets(t *testing.T) {
	mockUC := &mockListAdminTicketsUC{result: &usecases.ListTicketsResult{
		Tickets:    []ticketdto.TicketListItemDTO{{ID: 2, Title: "b"}, {ID: 1, Title: "a"}},
		TotalCount: 17,
		Page:       2,
		PageSize:   15,
		TotalPages: 2,
		StatusOptions: []i18n.StatusOption{
			{Value: "Open", Label: "Открыта"},
			{Value: "InProgress", Label: "В работе"},
			{Value: "Closed", Label: "Закрыта"},
		},
	}}
	handler := newTestTicketHandler(testDeps{listAdminTicketsUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/admin?page=2", nil)
	testutil.SetAuthContext(c, testutil.AdminSession())

	handler.ListAdminTickets(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, mockUC.got.Page)

	var data struct {
		Total         int64 `json:"total"`
		TotalPages    int   `json:"total_pages"`
		Items         []ticketdto.TicketListItemDTO
		StatusOptions []i18n.StatusOption `json:"status_options"`
	}
	require.NoError(t, json.Unmarshal(parse(t, w.Body).Data, &data))
	assert.Equal(t, int64(17), data.Total)
	assert.Equal(t, 2, data.TotalPages)
	assert.Len(t, data.Items, 2)
	require.Len(t, data.StatusOptions, 3)
	assert.Equal(t, "Закрыта", data.StatusOptions[2].Label)
}

func TestTicketHandler_ListMyTickets(t *testing.T) {
	mockUC := &mockListMyTicketsUC{result: &usecases.ListTicketsResult{Tickets: []ticketdto.TicketListItemDTO{}, Page: 1, PageSize: 15}}
	handler := newTestTicketHandler(testDeps{listMyTicketsUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/my_tickets?page=oops", nil)

	handler.ListMyTickets(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, mockUC.got.Page)
	assert.True(t, caller.Equals(mockUC.got.Caller))
}

func TestTicketHandler_CheckNewTickets(t *testing.T) {
	handler := newTestTicketHandler(testDeps{checkNewTicketsUC: &mockCheckNewTicketsUC{
		result: []ticketdto.NewTicketDTO{{ID: 5, Title: "Printer"}},
	}})

	c, w := testutil.NewTestContext(http.MethodGet, "/check_new_tickets", nil)
	testutil.SetAuthContext(c, testutil.AdminSession())

	handler.CheckNewTickets(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"new_tickets":[{"id":5,"title":"Printer"}]}`, string(parse(t, w.Body).Data))
}

// =====================================================================
// DownloadAttachment
// =====================================================================

func TestTicketHandler_DownloadAttachment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))
	f, err := os.Open(path)
	require.NoError(t, err)
	info, err := f.Stat()
	require.NoError(t, err)

	handler := newTestTicketHandler(testDeps{downloadUC: &mockDownloadUC{
		result: &storage.Blob{ReadSeekCloser: f, Name: "report.pdf", Size: info.Size(), ModTime: info.ModTime()},
	}})

	c, w := testutil.NewTestContext(http.MethodGet, "/uploads/3/report.pdf", nil)
	testutil.SetURLParam(c, "ticket_id", "3")
	testutil.SetURLParam(c, "filename", "report.pdf")

	handler.DownloadAttachment(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename=report.pdf`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.4", w.Body.String())
}

func TestTicketHandler_DownloadAttachment_NotFound(t *testing.T) {
	handler := newTestTicketHandler(testDeps{downloadUC: &mockDownloadUC{err: errors.NewNotFoundError("file not found")}})

	for _, id := range []string{"abc", "3"} {
		c, w := testutil.NewTestContext(http.MethodGet, "/uploads/"+id+"/missing.txt", nil)
		testutil.SetURLParam(c, "ticket_id", id)
		testutil.SetURLParam(c, "filename", "missing.txt")

		handler.DownloadAttachment(c)

		assert.Equal(t, http.StatusNotFound, w.Code, id)
	}
}
