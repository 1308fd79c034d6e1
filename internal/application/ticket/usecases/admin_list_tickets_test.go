package usecases

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supportdesk/internal/domain/ticket"
	vo "supportdesk/internal/domain/ticket/valueobjects"
	"supportdesk/internal/shared/constants"
	apperrors "supportdesk/internal/shared/errors"
)

func TestAdminListTicketsUseCase_Filters(t *testing.T) {
	var got ticket.TicketFilter
	repo := &mockTicketRepository{
		ListFunc: func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Summary, int64, error) {
			got = filter
			return []*ticket.Summary{{Ticket: existingTicket(t, 1, vo.StatusOpenUnread), UserMessagesSinceReply: 2}}, 1, nil
		},
	}
	dir := &mockDirectory{
		IDsByEmailQueryFunc: func(ctx context.Context, query string, limit int) ([]uint, error) {
			assert.Equal(t, "ana@", query)
			return []uint{10, 12}, nil
		},
		EmailsByIDsFunc: func(ctx context.Context, ids []uint) (map[uint]string, error) {
			assert.Equal(t, []uint{10}, ids)
			return map[uint]string{10: "ana@example.com"}, nil
		},
	}

	result, err := NewAdminListTicketsUseCase(repo, dir, &mockLogger{}).Execute(context.Background(), AdminListTicketsQuery{
		Status: "OPEN_UNREAD",
		Type:   "bug",
		Query:  " ana@ ",
	})
	require.NoError(t, err)

	assert.Equal(t, []vo.TicketStatus{vo.StatusOpenUnread}, got.Statuses)
	require.NotNil(t, got.Category)
	assert.Equal(t, vo.CategoryBug, *got.Category)
	assert.Equal(t, "ana@", got.Query)
	assert.Equal(t, []uint{10, 12}, got.QueryOwnerIDs)
	assert.Equal(t, constants.DefaultPageSize, got.PageSize)

	require.Len(t, result.Items, 1)
	assert.Equal(t, "ana@example.com", result.Items[0].OwnerEmail)
	assert.Equal(t, 2, result.Items[0].UnreadCount)
	assert.Equal(t, int64(1), result.Total)
}

func TestAdminListTicketsUseCase_InvalidFilters(t *testing.T) {
	uc := NewAdminListTicketsUseCase(&mockTicketRepository{}, &mockDirectory{}, &mockLogger{})

	_, err := uc.Execute(context.Background(), AdminListTicketsQuery{Status: "PENDING"})
	assert.True(t, apperrors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), AdminListTicketsQuery{Type: "complaint"})
	assert.True(t, apperrors.IsValidationError(err))
}

func TestGroupedTicketsUseCase_History(t *testing.T) {
	var mu sync.Mutex
	seen := map[vo.Category]ticket.TicketFilter{}
	repo := &mockTicketRepository{
		ListFunc: func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Summary, int64, error) {
			mu.Lock()
			seen[*filter.Category] = filter
			mu.Unlock()
			if *filter.Category == vo.CategoryBilling {
				return nil, 0, nil
			}
			return []*ticket.Summary{{Ticket: existingTicket(t, 1, vo.StatusClosed)}}, 3, nil
		},
	}

	groups, err := NewGroupedTicketsUseCase(repo, &mockDirectory{}, &mockLogger{}).
		Execute(context.Background(), GroupedTicketsQuery{Scope: ScopeHistory, Page: 1, PageSize: 1})
	require.NoError(t, err)

	require.Len(t, seen, 4)
	for _, f := range seen {
		assert.Equal(t, []vo.TicketStatus{vo.StatusClosed}, f.Statuses)
		assert.Equal(t, ticket.SortClosedDesc, f.Sort)
		assert.Equal(t, 1, f.PageSize)
	}

	require.Len(t, groups, 3)
	assert.Equal(t, "bug", groups[0].Type)
	assert.Equal(t, "feature", groups[1].Type)
	assert.Equal(t, "other", groups[2].Type)
	assert.Equal(t, int64(3), groups[0].Total)
	assert.Len(t, groups[0].Items, 1)
}

func TestGroupedTicketsUseCase_ActiveScope(t *testing.T) {
	repo := &mockTicketRepository{
		ListFunc: func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Summary, int64, error) {
			assert.Equal(t, vo.OpenStatuses, filter.Statuses)
			assert.Equal(t, ticket.SortCreatedAsc, filter.Sort)
			return nil, 0, nil
		},
	}

	groups, err := NewGroupedTicketsUseCase(repo, &mockDirectory{}, &mockLogger{}).
		Execute(context.Background(), GroupedTicketsQuery{Scope: ScopeActive})
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestGroupedTicketsUseCase_InvalidScope(t *testing.T) {
	_, err := NewGroupedTicketsUseCase(&mockTicketRepository{}, &mockDirectory{}, &mockLogger{}).
		Execute(context.Background(), GroupedTicketsQuery{Scope: "archive"})
	assert.True(t, apperrors.IsValidationError(err))
}
