package usecases

import (
	"context"

	"supportdesk/internal/application/ticket/dto"
	"supportdesk/internal/domain/ticket"
	"supportdesk/internal/shared/errors"
	"supportdesk/internal/shared/logger"
)

type ListMessagesQuery struct {
	TicketID    uint
	RequesterID uint
	// RequireOwner hides tickets the requester does not own behind NotFound.
	RequireOwner bool
}

type ListMessagesResult struct {
	TicketID uint
	Status   string
	Messages []*dto.MessageDTO
}

// LastMessageID is 0 for an empty thread.
func (r *ListMessagesResult) LastMessageID() uint {
	if len(r.Messages) == 0 {
		return 0
	}
	return r.Messages[len(r.Messages)-1].ID
}

type ListMessagesUseCase struct {
	ticketRepo ticket.TicketRepository
	renderer   ContentRenderer
	logger     logger.Interface
}

// NewListMessagesUseCase builds the thread reader. renderer may be nil.
func NewListMessagesUseCase(ticketRepo ticket.TicketRepository, renderer ContentRenderer, logger logger.Interface) *ListMessagesUseCase {
	return &ListMessagesUseCase{
		ticketRepo: ticketRepo,
		renderer:   renderer,
		logger:     logger,
	}
}

func (uc *ListMessagesUseCase) Execute(ctx context.Context, query ListMessagesQuery) (*ListMessagesResult, error) {
	uc.logger.Debugw("executing list messages use case", "ticket_id", query.TicketID, "requester_id", query.RequesterID)

	t, err := uc.ticketRepo.GetByID(ctx, query.TicketID)
	if err != nil {
		return nil, translateError("load ticket", err)
	}
	if query.RequireOwner && !t.IsOwnedBy(query.RequesterID) {
		uc.logger.Warnw("requester does not own ticket", "ticket_id", query.TicketID, "requester_id", query.RequesterID)
		return nil, errors.NewNotFoundError("ticket not found")
	}

	messages, err := uc.ticketRepo.ListMessages(ctx, t.ID())
	if err != nil {
		uc.logger.Errorw("failed to list messages", "ticket_id", t.ID(), "error", err)
		return nil, translateError("list messages", err)
	}

	var render func(string) string
	if uc.renderer != nil {
		render = uc.render
	}

	items := make([]*dto.MessageDTO, 0, len(messages))
	for _, m := range messages {
		items = append(items, dto.ToMessageDTO(m, render))
	}

	return &ListMessagesResult{
		TicketID: t.ID(),
		Status:   t.Status().String(),
		Messages: items,
	}, nil
}

func (uc *ListMessagesUseCase) render(content string) string {
	html, err := uc.renderer.ToHTMLSanitized(content)
	if err != nil {
		uc.logger.Warnw("failed to render message content", "error", err)
		return ""
	}
	return html
}
