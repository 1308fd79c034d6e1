package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "supportdesk/internal/domain/ticket/valueobjects"
)

func TestNext(t *testing.T) {
	tests := []struct {
		name       string
		from       vo.TicketStatus
		event      Event
		wantTo     vo.TicketStatus
		wantRead   bool
		wantCloses bool
		wantReply  bool
		wantNoop   bool
		wantErr    error
	}{
		{"unread user message", vo.StatusOpenUnread, EventUserMessage, vo.StatusOpenUnread, false, false, false, true, nil},
		{"unread staff reply", vo.StatusOpenUnread, EventStaffReply, vo.StatusOpenRead, true, false, true, false, nil},
		{"unread mark read", vo.StatusOpenUnread, EventStaffMarkRead, vo.StatusOpenRead, true, false, false, false, nil},
		{"unread close", vo.StatusOpenUnread, EventStaffClose, vo.StatusClosed, false, true, false, false, nil},
		{"read user message reopens", vo.StatusOpenRead, EventUserMessage, vo.StatusOpenUnread, false, false, false, false, nil},
		{"read staff reply", vo.StatusOpenRead, EventStaffReply, vo.StatusOpenRead, false, false, true, false, nil},
		{"read mark read", vo.StatusOpenRead, EventStaffMarkRead, vo.StatusOpenRead, false, false, false, true, nil},
		{"read close", vo.StatusOpenRead, EventStaffClose, vo.StatusClosed, false, true, false, false, nil},
		{"closed user message", vo.StatusClosed, EventUserMessage, vo.StatusClosed, false, false, false, true, ErrTicketClosed},
		{"closed staff reply", vo.StatusClosed, EventStaffReply, vo.StatusClosed, false, false, false, true, ErrTicketClosed},
		{"closed mark read", vo.StatusClosed, EventStaffMarkRead, vo.StatusClosed, false, false, false, true, nil},
		{"closed close", vo.StatusClosed, EventStaffClose, vo.StatusClosed, false, false, false, true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := Next(tt.from, tt.event)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.from, tr.From)
			assert.Equal(t, tt.wantTo, tr.To)
			assert.Equal(t, tt.wantRead, tr.MarksRead)
			assert.Equal(t, tt.wantCloses, tr.Closes)
			assert.Equal(t, tt.wantReply, tr.RecordsReply)
			assert.Equal(t, tt.wantNoop, tr.IsNoop())
		})
	}
}

func TestNext_StaffNeverRevertsReadness(t *testing.T) {
	for _, ev := range []Event{EventStaffReply, EventStaffMarkRead} {
		tr, err := Next(vo.StatusOpenRead, ev)
		require.NoError(t, err)
		assert.Equal(t, vo.StatusOpenRead, tr.To, ev.String())
	}
}

func TestNext_UnknownEvent(t *testing.T) {
	_, err := Next(vo.StatusOpenRead, Event("reopen"))
	assert.ErrorIs(t, err, ErrUnknownEvent)
}

func TestNext_InvalidStatus(t *testing.T) {
	_, err := Next(vo.TicketStatus("PENDING"), EventStaffClose)
	assert.Error(t, err)
}
