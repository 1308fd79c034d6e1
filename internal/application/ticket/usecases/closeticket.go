package usecases

import (
	"context"
	"time"

	"supportdesk/internal/domain/ticket"
	"supportdesk/internal/shared/biztime"
	"supportdesk/internal/shared/logger"
)

type CloseTicketCommand struct {
	TicketID uint
	AdminID  uint
}

type CloseTicketResult struct {
	TicketID uint
	ClosedAt time.Time
}

type CloseTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewCloseTicketUseCase(ticketRepo ticket.TicketRepository, logger logger.Interface) *CloseTicketUseCase {
	return &CloseTicketUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

// Execute closes the ticket. Closing an already closed ticket reports its
// original closedAt.
func (uc *CloseTicketUseCase) Execute(ctx context.Context, cmd CloseTicketCommand) (*CloseTicketResult, error) {
	uc.logger.Infow("executing close ticket use case", "ticket_id", cmd.TicketID, "admin_id", cmd.AdminID)

	var result *CloseTicketResult
	err := retryOnConflict(ctx, func() error {
		t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
		if err != nil {
			return err
		}

		tr, err := t.Apply(ticket.EventStaffClose, cmd.AdminID, biztime.NowUTC())
		if err != nil {
			return err
		}
		if !tr.IsNoop() {
			if err := uc.ticketRepo.ApplyTransition(ctx, t.ID(), tr); err != nil {
				return err
			}
		}

		result = &CloseTicketResult{TicketID: t.ID(), ClosedAt: *t.ClosedAt()}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to close ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, translateError("close ticket", err)
	}

	uc.logger.Infow("ticket closed successfully", "ticket_id", cmd.TicketID, "closed_at", result.ClosedAt)
	return result, nil
}
