package conversation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketList_Refresh(t *testing.T) {
	server := []Ticket{{ID: 1, Status: StatusClosed}, {ID: 2, Status: StatusOpenRead}}
	var fetchErr error
	list := NewTicketList(func(ctx context.Context) ([]Ticket, error) {
		if fetchErr != nil {
			return nil, fetchErr
		}
		out := make([]Ticket, len(server))
		copy(out, server)
		return out, nil
	})
	ctx := context.Background()

	assert.True(t, list.CanCreate())

	changed, err := list.Refresh(ctx)
	require.NoError(t, err)
	assert.True(t, changed)
	first := list.Items()

	changed, err = list.Refresh(ctx)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Same(t, &first[0], &list.Items()[0])

	open, ok := list.OpenTicket()
	require.True(t, ok)
	assert.Equal(t, uint(2), open.ID)
	assert.False(t, list.CanCreate())

	server[1].Status = StatusOpenUnread
	changed, err = list.Refresh(ctx)
	require.NoError(t, err)
	assert.True(t, changed)
	got, ok := list.Find(2)
	require.True(t, ok)
	assert.Equal(t, StatusOpenUnread, got.Status)

	fetchErr = errors.New("offline")
	_, err = list.Refresh(ctx)
	assert.Error(t, err)
	assert.Len(t, list.Items(), 2)

	_, ok = list.Find(99)
	assert.False(t, ok)
}

func TestTicketList_CancelledRefreshIsNotApplied(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	list := NewTicketList(func(context.Context) ([]Ticket, error) {
		cancel()
		return []Ticket{{ID: 1}}, nil
	})

	changed, err := list.Refresh(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, changed)
	assert.Empty(t, list.Items())
}
