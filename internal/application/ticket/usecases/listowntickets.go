package usecases

import (
	"context"

	"supportdesk/internal/application/ticket/dto"
	"supportdesk/internal/domain/ticket"
	"supportdesk/internal/shared/logger"
)

type ListOwnTicketsQuery struct {
	OwnerID uint
}

type ListOwnTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewListOwnTicketsUseCase(ticketRepo ticket.TicketRepository, logger logger.Interface) *ListOwnTicketsUseCase {
	return &ListOwnTicketsUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

// Execute returns the owner's tickets oldest first.
func (uc *ListOwnTicketsUseCase) Execute(ctx context.Context, query ListOwnTicketsQuery) ([]*dto.TicketDTO, error) {
	uc.logger.Debugw("executing list own tickets use case", "owner_id", query.OwnerID)

	summaries, err := uc.ticketRepo.ListByOwner(ctx, query.OwnerID)
	if err != nil {
		uc.logger.Errorw("failed to list owner tickets", "owner_id", query.OwnerID, "error", err)
		return nil, translateError("list tickets", err)
	}

	return dto.ToTicketDTOs(summaries), nil
}
