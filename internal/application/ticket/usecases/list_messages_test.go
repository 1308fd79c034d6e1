package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supportdesk/internal/domain/ticket"
	vo "supportdesk/internal/domain/ticket/valueobjects"
	apperrors "supportdesk/internal/shared/errors"
)

type stubRenderer struct {
	err error
}

func (r stubRenderer) ToHTMLSanitized(markdown string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return "<p>" + markdown + "</p>", nil
}

func threadRepo(t *testing.T) *mockTicketRepository {
	first, err := ticket.ReconstructMessage(101, 1, vo.SenderUser, 10, "App crashes on upload", testCreatedAt)
	require.NoError(t, err)
	reply, err := ticket.ReconstructMessage(102, 1, vo.SenderAdmin, 99, "Can you share logs?", testCreatedAt.Add(time.Minute))
	require.NoError(t, err)

	return &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return existingTicket(t, id, vo.StatusOpenRead), nil
		},
		ListMessagesFunc: func(ctx context.Context, id uint) ([]*ticket.Message, error) {
			return []*ticket.Message{first, reply}, nil
		},
	}
}

func TestListMessagesUseCase_Owner(t *testing.T) {
	uc := NewListMessagesUseCase(threadRepo(t), stubRenderer{}, &mockLogger{})

	result, err := uc.Execute(context.Background(), ListMessagesQuery{TicketID: 1, RequesterID: 10, RequireOwner: true})
	require.NoError(t, err)
	require.Len(t, result.Messages, 2)
	assert.Equal(t, "App crashes on upload", result.Messages[0].Content)
	assert.Equal(t, "<p>Can you share logs?</p>", result.Messages[1].ContentHTML)
	assert.Equal(t, uint(102), result.LastMessageID())
	assert.Equal(t, "OPEN_READ", result.Status)
}

func TestListMessagesUseCase_OtherUserGetsNotFound(t *testing.T) {
	uc := NewListMessagesUseCase(threadRepo(t), nil, &mockLogger{})

	_, err := uc.Execute(context.Background(), ListMessagesQuery{TicketID: 1, RequesterID: 11, RequireOwner: true})
	assert.True(t, apperrors.IsNotFoundError(err))

	result, err := uc.Execute(context.Background(), ListMessagesQuery{TicketID: 1, RequesterID: 99})
	require.NoError(t, err)
	assert.Empty(t, result.Messages[0].ContentHTML)
}

func TestListMessagesUseCase_RenderFailureKeepsText(t *testing.T) {
	uc := NewListMessagesUseCase(threadRepo(t), stubRenderer{err: errors.New("bad markdown")}, &mockLogger{})

	result, err := uc.Execute(context.Background(), ListMessagesQuery{TicketID: 1, RequesterID: 10, RequireOwner: true})
	require.NoError(t, err)
	assert.Equal(t, "Can you share logs?", result.Messages[1].Content)
	assert.Empty(t, result.Messages[1].ContentHTML)
}

func TestListMessagesResult_EmptyThread(t *testing.T) {
	assert.Equal(t, uint(0), (&ListMessagesResult{}).LastMessageID())
}
