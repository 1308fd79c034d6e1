package usecases

import (
	"context"

	"supportdesk/internal/domain/ticket"
	"supportdesk/internal/shared/errors"
	"supportdesk/internal/shared/logger"
)

type DeleteTicketCommand struct {
	TicketID uint
	UserID   uint
}

type DeleteTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewDeleteTicketUseCase(ticketRepo ticket.TicketRepository, logger logger.Interface) *DeleteTicketUseCase {
	return &DeleteTicketUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *DeleteTicketUseCase) Execute(ctx context.Context, cmd DeleteTicketCommand) error {
	uc.logger.Infow("executing delete ticket use case", "ticket_id", cmd.TicketID, "user_id", cmd.UserID)

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return translateError("load ticket", err)
	}
	if !t.IsOwnedBy(cmd.UserID) {
		uc.logger.Warnw("user cannot delete ticket", "ticket_id", cmd.TicketID, "user_id", cmd.UserID)
		return errors.NewNotFoundError("ticket not found")
	}
	if err := t.EnsureDeletable(); err != nil {
		return translateError("delete ticket", err)
	}

	if err := uc.ticketRepo.DeleteClosed(ctx, t.ID()); err != nil {
		uc.logger.Errorw("failed to delete ticket", "ticket_id", cmd.TicketID, "error", err)
		return translateError("delete ticket", err)
	}

	uc.logger.Infow("ticket deleted successfully", "ticket_id", cmd.TicketID)
	return nil
}
