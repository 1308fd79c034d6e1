package dto

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supportdesk/internal/domain/ticket"
	vo "supportdesk/internal/domain/ticket/valueobjects"
)

var createdAt = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

func summary(t *testing.T, status vo.TicketStatus, readAt *time.Time) *ticket.Summary {
	t.Helper()
	tk, err := ticket.ReconstructTicket(5, 10, vo.CategoryBug, status, 11, createdAt, readAt, nil, readAt, nil, createdAt)
	require.NoError(t, err)
	return &ticket.Summary{Ticket: tk, Content: "App crashes on upload", MessageCount: 1, UserMessagesSinceReply: 1}
}

func TestToTicketDTO_NullTimestamps(t *testing.T) {
	out := ToTicketDTO(summary(t, vo.StatusOpenUnread, nil))
	require.NotNil(t, out)

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"readAt":null`)
	assert.Contains(t, string(raw), `"closedAt":null`)
	assert.Contains(t, string(raw), `"type":"bug"`)
	assert.Contains(t, string(raw), `"status":"OPEN_UNREAD"`)
}

func TestToTicketDTO_SetTimestamp(t *testing.T) {
	readAt := createdAt.Add(time.Minute)
	out := ToTicketDTO(summary(t, vo.StatusOpenRead, &readAt))

	assert.True(t, out.ReadAt.Valid)
	assert.True(t, readAt.Equal(out.ReadAt.Time))
}

func TestToAdminTicketDTO(t *testing.T) {
	out := ToAdminTicketDTO(summary(t, vo.StatusOpenUnread, nil), map[uint]string{10: "ana@example.com"})
	assert.Equal(t, "ana@example.com", out.OwnerEmail)
	assert.Equal(t, 1, out.UnreadCount)

	readAt := createdAt
	out = ToAdminTicketDTO(summary(t, vo.StatusOpenRead, &readAt), nil)
	assert.Empty(t, out.OwnerEmail)
	assert.Equal(t, 0, out.UnreadCount)

	assert.Nil(t, ToAdminTicketDTO(nil, nil))
}

func TestToTicketDTOs_EmptyNotNil(t *testing.T) {
	out := ToTicketDTOs(nil)
	require.NotNil(t, out)
	assert.Empty(t, out)
}

func TestToMessageDTO(t *testing.T) {
	m, err := ticket.ReconstructMessage(3, 5, vo.SenderAdmin, 99, "Can you share logs?", createdAt)
	require.NoError(t, err)

	plain := ToMessageDTO(m, nil)
	assert.Equal(t, "admin", plain.Sender)
	assert.Empty(t, plain.ContentHTML)

	rendered := ToMessageDTO(m, strings.ToUpper)
	assert.Equal(t, "CAN YOU SHARE LOGS?", rendered.ContentHTML)
}
