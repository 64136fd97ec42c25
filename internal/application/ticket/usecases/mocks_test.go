package usecases

import (
	"context"
	"io"
	"time"

	"github.com/helpdesk-inc/helpdesk/internal/application/ticket/dto"
	"github.com/helpdesk-inc/helpdesk/internal/domain/ticket"
	vo "github.com/helpdesk-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdesk-inc/helpdesk/internal/infrastructure/storage"
	"github.com/helpdesk-inc/helpdesk/internal/shared/authorization"
	"github.com/helpdesk-inc/helpdesk/internal/shared/errors"
	"github.com/helpdesk-inc/helpdesk/internal/shared/i18n"
	"github.com/helpdesk-inc/helpdesk/internal/shared/services/markdown"
)

var (
	ownerID    = vo.NewOwnerIdentity("192.168.0.10", "reception")
	strangerID = vo.NewOwnerIdentity("192.168.0.77", "lab-3")
	adminAuth  = authorization.AuthContext{UserID: 1, Username: "admin", Role: authorization.RoleAdmin, IsAuthenticated: true}
)

type mockTicketRepository struct {
	CreateFunc        func(ctx context.Context, t *ticket.Ticket) error
	UpdateContentFunc func(ctx context.Context, t *ticket.Ticket) error
	UpdateStatusFunc  func(ctx context.Context, t *ticket.Ticket) error
	GetByIDFunc       func(ctx context.Context, ticketID uint) (*ticket.Ticket, error)
	ListFunc          func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error)
	ListNewFunc       func(ctx context.Context) ([]*ticket.Ticket, error)
	MarkSeenFunc      func(ctx context.Context, ticketIDs []uint) error
}

func (m *mockTicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	return t.SetID(1)
}

func (m *mockTicketRepository) UpdateContent(ctx context.Context, t *ticket.Ticket) error {
	if m.UpdateContentFunc != nil {
		return m.UpdateContentFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) UpdateStatus(ctx context.Context, t *ticket.Ticket) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ticketID)
	}
	return nil, errors.NewNotFoundError("ticket not found")
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockTicketRepository) ListNew(ctx context.Context) ([]*ticket.Ticket, error) {
	if m.ListNewFunc != nil {
		return m.ListNewFunc(ctx)
	}
	return nil, nil
}

func (m *mockTicketRepository) MarkSeen(ctx context.Context, ticketIDs []uint) error {
	if m.MarkSeenFunc != nil {
		return m.MarkSeenFunc(ctx, ticketIDs)
	}
	return nil
}

type mockMessageRepository struct {
	CreateFunc         func(ctx context.Context, m *ticket.Message) error
	ListByTicketIDFunc func(ctx context.Context, ticketID uint) ([]*ticket.Message, error)
}

func (m *mockMessageRepository) Create(ctx context.Context, msg *ticket.Message) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, msg)
	}
	return msg.SetID(1)
}

func (m *mockMessageRepository) ListByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Message, error) {
	if m.ListByTicketIDFunc != nil {
		return m.ListByTicketIDFunc(ctx, ticketID)
	}
	return nil, nil
}

type mockFileRepository struct {
	CreateFunc             func(ctx context.Context, f *ticket.File) error
	ListByTicketIDFunc     func(ctx context.Context, ticketID uint) ([]*ticket.File, error)
	GetByTicketAndNameFunc func(ctx context.Context, ticketID uint, filename string) (*ticket.File, error)
}

func (m *mockFileRepository) Create(ctx context.Context, f *ticket.File) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, f)
	}
	return nil
}

func (m *mockFileRepository) ListByTicketID(ctx context.Context, ticketID uint) ([]*ticket.File, error) {
	if m.ListByTicketIDFunc != nil {
		return m.ListByTicketIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockFileRepository) GetByTicketAndName(ctx context.Context, ticketID uint, filename string) (*ticket.File, error) {
	if m.GetByTicketAndNameFunc != nil {
		return m.GetByTicketAndNameFunc(ctx, ticketID, filename)
	}
	return nil, errors.NewNotFoundError("file not found")
}

// mockTxRunner runs fn directly and counts calls.
type mockTxRunner struct {
	calls int
}

func (m *mockTxRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type mockAccessGate struct {
	CanViewFunc         func(auth authorization.AuthContext, caller vo.OwnerIdentity, t *ticket.Ticket) error
	CanRespondFunc      func(auth authorization.AuthContext, caller vo.OwnerIdentity, t *ticket.Ticket) error
	CanEditFunc         func(caller vo.OwnerIdentity, t *ticket.Ticket) error
	CanListAllFunc      func(auth authorization.AuthContext) error
	CanChangeStatusFunc func(auth authorization.AuthContext) error
	CanViewNewCountFunc func(auth authorization.AuthContext) error
	IsAdminViewerFunc   func(auth authorization.AuthContext) bool
}

func (m *mockAccessGate) CanView(auth authorization.AuthContext, caller vo.OwnerIdentity, t *ticket.Ticket) error {
	if m.CanViewFunc != nil {
		return m.CanViewFunc(auth, caller, t)
	}
	return nil
}

func (m *mockAccessGate) CanRespond(auth authorization.AuthContext, caller vo.OwnerIdentity, t *ticket.Ticket) error {
	if m.CanRespondFunc != nil {
		return m.CanRespondFunc(auth, caller, t)
	}
	return nil
}

func (m *mockAccessGate) CanEdit(caller vo.OwnerIdentity, t *ticket.Ticket) error {
	if m.CanEditFunc != nil {
		return m.CanEditFunc(caller, t)
	}
	return nil
}

func (m *mockAccessGate) CanListAll(auth authorization.AuthContext) error {
	if m.CanListAllFunc != nil {
		return m.CanListAllFunc(auth)
	}
	return nil
}

func (m *mockAccessGate) CanChangeStatus(auth authorization.AuthContext) error {
	if m.CanChangeStatusFunc != nil {
		return m.CanChangeStatusFunc(auth)
	}
	return nil
}

func (m *mockAccessGate) CanViewNewCount(auth authorization.AuthContext) error {
	if m.CanViewNewCountFunc != nil {
		return m.CanViewNewCountFunc(auth)
	}
	return nil
}

func (m *mockAccessGate) IsAdminViewer(auth authorization.AuthContext) bool {
	if m.IsAdminViewerFunc != nil {
		return m.IsAdminViewerFunc(auth)
	}
	return auth.IsAdmin()
}

func denyAll() *mockAccessGate {
	forbidden := func() error { return errors.NewForbiddenError("access denied") }
	return &mockAccessGate{
		CanViewFunc:         func(authorization.AuthContext, vo.OwnerIdentity, *ticket.Ticket) error { return forbidden() },
		CanRespondFunc:      func(authorization.AuthContext, vo.OwnerIdentity, *ticket.Ticket) error { return forbidden() },
		CanEditFunc:         func(vo.OwnerIdentity, *ticket.Ticket) error { return forbidden() },
		CanListAllFunc:      func(authorization.AuthContext) error { return forbidden() },
		CanChangeStatusFunc: func(authorization.AuthContext) error { return forbidden() },
		CanViewNewCountFunc: func(authorization.AuthContext) error { return forbidden() },
		IsAdminViewerFunc:   func(authorization.AuthContext) bool { return false },
	}
}

type mockBlobStore struct {
	SaveFunc  func(ticketID uint, name string, r io.Reader) (storage.SavedBlob, error)
	OpenFunc  func(ticketID uint, name string) (*storage.Blob, error)
	saved     []storage.SavedBlob
	discarded []storage.SavedBlob
}

func (m *mockBlobStore) Save(ticketID uint, name string, r io.Reader) (storage.SavedBlob, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(ticketID, name, r)
	}
	blob := storage.SavedBlob{TicketID: ticketID, Name: name, CreatedDir: len(m.saved) == 0}
	m.saved = append(m.saved, blob)
	return blob, nil
}

func (m *mockBlobStore) Discard(saved storage.SavedBlob) {
	m.discarded = append(m.discarded, saved)
}

func (m *mockBlobStore) Open(ticketID uint, name string) (*storage.Blob, error) {
	if m.OpenFunc != nil {
		return m.OpenFunc(ticketID, name)
	}
	return nil, errors.NewNotFoundError("file not found")
}

func newTestPresenter() *dto.Presenter {
	return dto.NewPresenter(markdown.NewRenderer(), i18n.NewLocalizer("en"))
}

func existingTicket(id uint, status vo.TicketStatus, isNew bool) *ticket.Ticket {
	t, err := ticket.ReconstructTicket(id, "Monitor flickers", "Since Monday", status, ownerID, isNew,
		time.Now().UTC().Add(-time.Hour), nil, nil, 1)
	if err != nil {
		panic(err)
	}
	return t
}
