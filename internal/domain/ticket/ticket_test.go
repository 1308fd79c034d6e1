package ticket

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "supportdesk/internal/domain/ticket/valueobjects"
)

var baseTime = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func newOpenTicket(t *testing.T) *Ticket {
	t.Helper()
	tk, err := NewTicket(10, vo.CategoryBug, baseTime)
	require.NoError(t, err)
	require.NoError(t, tk.SetID(1))
	return tk
}

func TestNewTicket(t *testing.T) {
	tk, err := NewTicket(10, vo.CategoryBug, baseTime)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusOpenUnread, tk.Status())
	assert.Nil(t, tk.ReadAt())
	assert.Nil(t, tk.ClosedAt())
	assert.Equal(t, baseTime, tk.CreatedAt())

	_, err = NewTicket(0, vo.CategoryBug, baseTime)
	assert.Error(t, err)

	_, err = NewTicket(10, vo.Category("complaint"), baseTime)
	assert.Error(t, err)
}

func TestApply_ReadAtIsSetOnce(t *testing.T) {
	tk := newOpenTicket(t)

	firstReply := baseTime.Add(time.Minute)
	_, err := tk.Apply(EventStaffReply, 99, firstReply)
	require.NoError(t, err)
	require.NotNil(t, tk.ReadAt())
	assert.Equal(t, firstReply, *tk.ReadAt())
	assert.Equal(t, vo.StatusOpenRead, tk.Status())

	_, err = tk.Apply(EventUserMessage, 10, baseTime.Add(2*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, vo.StatusOpenUnread, tk.Status())

	_, err = tk.Apply(EventStaffMarkRead, 98, baseTime.Add(3*time.Minute))
	require.NoError(t, err)
	_, err = tk.Apply(EventStaffReply, 98, baseTime.Add(4*time.Minute))
	require.NoError(t, err)

	assert.Equal(t, firstReply, *tk.ReadAt())
	require.NotNil(t, tk.LatestReplyAt())
	assert.Equal(t, baseTime.Add(4*time.Minute), *tk.LatestReplyAt())
	assert.Equal(t, uint(98), *tk.LatestReplyByAdminID())
}

func TestApply_CloseIsTerminal(t *testing.T) {
	tk := newOpenTicket(t)
	closedAt := baseTime.Add(time.Hour)

	tr, err := tk.Apply(EventStaffClose, 99, closedAt)
	require.NoError(t, err)
	assert.True(t, tr.Closes)
	assert.Equal(t, vo.StatusClosed, tk.Status())
	assert.Equal(t, closedAt, *tk.ClosedAt())

	_, err = tk.Apply(EventUserMessage, 10, closedAt.Add(time.Minute))
	assert.ErrorIs(t, err, ErrTicketClosed)

	tr, err = tk.Apply(EventStaffClose, 99, closedAt.Add(time.Minute))
	require.NoError(t, err)
	assert.True(t, tr.IsNoop())
	assert.Equal(t, closedAt, *tk.ClosedAt())
}

func TestApply_NoopLeavesTicketUntouched(t *testing.T) {
	tk := newOpenTicket(t)
	before := tk.UpdatedAt()

	tr, err := tk.Apply(EventUserMessage, 10, baseTime.Add(time.Minute))
	require.NoError(t, err)
	assert.True(t, tr.IsNoop())
	assert.Equal(t, before, tk.UpdatedAt())
	assert.Equal(t, uint(10), tr.ActorID)
}

func TestEnsureDeletable(t *testing.T) {
	tk := newOpenTicket(t)
	assert.ErrorIs(t, tk.EnsureDeletable(), ErrNotClosed)

	_, err := tk.Apply(EventStaffClose, 99, baseTime)
	require.NoError(t, err)
	assert.NoError(t, tk.EnsureDeletable())
}

func TestSetID(t *testing.T) {
	tk, err := NewTicket(10, vo.CategoryOther, baseTime)
	require.NoError(t, err)
	assert.Error(t, tk.SetID(0))
	require.NoError(t, tk.SetID(5))
	assert.Error(t, tk.SetID(6))
}

func TestReconstructTicket(t *testing.T) {
	_, err := ReconstructTicket(0, 1, vo.CategoryBug, vo.StatusClosed, 1, baseTime, nil, nil, nil, nil, baseTime)
	assert.Error(t, err)

	_, err = ReconstructTicket(1, 1, vo.CategoryBug, vo.TicketStatus("new"), 1, baseTime, nil, nil, nil, nil, baseTime)
	assert.Error(t, err)

	tk, err := ReconstructTicket(1, 1, vo.CategoryBug, vo.StatusClosed, 3, baseTime, nil, &baseTime, nil, nil, baseTime)
	require.NoError(t, err)
	assert.Equal(t, uint(3), tk.FirstMessageID())
	assert.True(t, tk.IsOwnedBy(1))
	assert.False(t, tk.IsOwnedBy(2))
}

func TestNewMessage(t *testing.T) {
	m, err := NewMessage(1, vo.SenderUser, 10, "  App crashes on upload \n", 0, baseTime)
	require.NoError(t, err)
	assert.Equal(t, "App crashes on upload", m.Content())
	assert.Equal(t, vo.SenderUser, m.Sender())

	_, err = NewMessage(1, vo.SenderUser, 10, " \t\n ", 0, baseTime)
	assert.ErrorIs(t, err, ErrEmptyContent)

	_, err = NewMessage(1, vo.SenderUser, 10, strings.Repeat("x", 11), 10, baseTime)
	assert.ErrorIs(t, err, ErrContentTooLong)

	_, err = NewMessage(1, vo.Sender("bot"), 10, "hi", 0, baseTime)
	assert.Error(t, err)

	_, err = NewMessage(1, vo.SenderAdmin, 0, "hi", 0, baseTime)
	assert.Error(t, err)
}

func TestNormalizeContent_NFC(t *testing.T) {
	// "e" followed by a combining acute accent composes to a single rune.
	got, err := NormalizeContent("cafe\u0301", 4)
	require.NoError(t, err)
	assert.Equal(t, "caf\u00e9", got)
}

func TestMessageAttachTo(t *testing.T) {
	m, err := NewMessage(0, vo.SenderUser, 10, "hello", 0, baseTime)
	require.NoError(t, err)
	require.NoError(t, m.AttachTo(4))
	assert.Equal(t, uint(4), m.TicketID())
	assert.Error(t, m.AttachTo(5))
}

func TestSummaryUnreadCount(t *testing.T) {
	tk := newOpenTicket(t)
	s := &Summary{Ticket: tk, UserMessagesSinceReply: 2}
	assert.Equal(t, 2, s.UnreadCount())

	_, err := tk.Apply(EventStaffMarkRead, 99, baseTime)
	require.NoError(t, err)
	assert.Equal(t, 0, s.UnreadCount())
}
