package usecases

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"supportdesk/internal/domain/ticket"
	vo "supportdesk/internal/domain/ticket/valueobjects"
	"supportdesk/internal/shared/logger"
)

type mockTicketRepository struct {
	CreateFunc          func(ctx context.Context, t *ticket.Ticket, first *ticket.Message) error
	GetByIDFunc         func(ctx context.Context, ticketID uint) (*ticket.Ticket, error)
	ListByOwnerFunc     func(ctx context.Context, ownerID uint) ([]*ticket.Summary, error)
	ApplyTransitionFunc func(ctx context.Context, ticketID uint, tr ticket.Transition) error
	AppendMessageFunc   func(ctx context.Context, m *ticket.Message) error
	ListMessagesFunc    func(ctx context.Context, ticketID uint) ([]*ticket.Message, error)
	DeleteClosedFunc    func(ctx context.Context, ticketID uint) error
	ListFunc            func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Summary, int64, error)
	ListIDsByStatusFunc func(ctx context.Context, status vo.TicketStatus) ([]uint, error)
}

func (m *mockTicketRepository) Create(ctx context.Context, t *ticket.Ticket, first *ticket.Message) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t, first)
	}
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ticketID)
	}
	return nil, ticket.ErrTicketNotFound
}

func (m *mockTicketRepository) ListByOwner(ctx context.Context, ownerID uint) ([]*ticket.Summary, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockTicketRepository) ApplyTransition(ctx context.Context, ticketID uint, tr ticket.Transition) error {
	if m.ApplyTransitionFunc != nil {
		return m.ApplyTransitionFunc(ctx, ticketID, tr)
	}
	return nil
}

func (m *mockTicketRepository) AppendMessage(ctx context.Context, msg *ticket.Message) error {
	if m.AppendMessageFunc != nil {
		return m.AppendMessageFunc(ctx, msg)
	}
	return nil
}

func (m *mockTicketRepository) ListMessages(ctx context.Context, ticketID uint) ([]*ticket.Message, error) {
	if m.ListMessagesFunc != nil {
		return m.ListMessagesFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockTicketRepository) DeleteClosed(ctx context.Context, ticketID uint) error {
	if m.DeleteClosedFunc != nil {
		return m.DeleteClosedFunc(ctx, ticketID)
	}
	return nil
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Summary, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockTicketRepository) ListIDsByStatus(ctx context.Context, status vo.TicketStatus) ([]uint, error) {
	if m.ListIDsByStatusFunc != nil {
		return m.ListIDsByStatusFunc(ctx, status)
	}
	return nil, nil
}

// mockTxManager runs fn inline without a real transaction.
type mockTxManager struct {
	calls int
}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type mockDirectory struct {
	mu                  sync.Mutex
	EmailsByIDsFunc     func(ctx context.Context, ids []uint) (map[uint]string, error)
	IDsByEmailQueryFunc func(ctx context.Context, query string, limit int) ([]uint, error)
}

func (m *mockDirectory) EmailsByIDs(ctx context.Context, ids []uint) (map[uint]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.EmailsByIDsFunc != nil {
		return m.EmailsByIDsFunc(ctx, ids)
	}
	return map[uint]string{}, nil
}

func (m *mockDirectory) IDsByEmailQuery(ctx context.Context, query string, limit int) ([]uint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.IDsByEmailQueryFunc != nil {
		return m.IDsByEmailQueryFunc(ctx, query, limit)
	}
	return nil, nil
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)                   {}
func (m *mockLogger) Info(msg string, args ...any)                    {}
func (m *mockLogger) Warn(msg string, args ...any)                    {}
func (m *mockLogger) Error(msg string, args ...any)                   {}
func (m *mockLogger) With(args ...any) logger.Interface               { return m }
func (m *mockLogger) Named(name string) logger.Interface              { return m }
func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {}

var testCreatedAt = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

// existingTicket reconstructs a persisted ticket owned by user 10.
func existingTicket(t *testing.T, id uint, status vo.TicketStatus) *ticket.Ticket {
	t.Helper()
	var readAt, closedAt *time.Time
	if status != vo.StatusOpenUnread {
		r := testCreatedAt.Add(time.Minute)
		readAt = &r
	}
	if status == vo.StatusClosed {
		c := testCreatedAt.Add(time.Hour)
		closedAt = &c
	}
	tk, err := ticket.ReconstructTicket(id, 10, vo.CategoryBug, status, 100+id, testCreatedAt, readAt, closedAt, nil, nil, testCreatedAt)
	require.NoError(t, err)
	return tk
}
