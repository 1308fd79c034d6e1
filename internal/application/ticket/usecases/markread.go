package usecases

import (
	"context"
	stderrors "errors"

	"supportdesk/internal/domain/ticket"
	vo "supportdesk/internal/domain/ticket/valueobjects"
	"supportdesk/internal/shared/biztime"
	"supportdesk/internal/shared/errors"
	"supportdesk/internal/shared/logger"
)

type MarkReadCommand struct {
	AdminID uint
	IDs     []uint
	// All marks every unread ticket and ignores IDs.
	All bool
}

type MarkReadResult struct {
	Updated int
}

type MarkReadUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewMarkReadUseCase(ticketRepo ticket.TicketRepository, logger logger.Interface) *MarkReadUseCase {
	return &MarkReadUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

// Execute marks tickets read. Unknown ids and tickets that are already read
// or closed are skipped.
func (uc *MarkReadUseCase) Execute(ctx context.Context, cmd MarkReadCommand) (*MarkReadResult, error) {
	uc.logger.Infow("executing mark read use case", "admin_id", cmd.AdminID, "ids", len(cmd.IDs), "all", cmd.All)

	ids := cmd.IDs
	if cmd.All {
		var err error
		ids, err = uc.ticketRepo.ListIDsByStatus(ctx, vo.StatusOpenUnread)
		if err != nil {
			uc.logger.Errorw("failed to list unread tickets", "error", err)
			return nil, translateError("mark read", err)
		}
	} else if len(ids) == 0 {
		return nil, errors.NewValidationError("ids or all is required")
	}

	result := &MarkReadResult{}
	for _, id := range ids {
		changed, err := uc.markOne(ctx, id, cmd.AdminID)
		if stderrors.Is(err, ticket.ErrTicketNotFound) {
			continue
		}
		if err != nil {
			uc.logger.Errorw("failed to mark ticket read", "ticket_id", id, "error", err)
			return nil, translateError("mark read", err)
		}
		if changed {
			result.Updated++
		}
	}

	uc.logger.Infow("tickets marked read", "admin_id", cmd.AdminID, "updated", result.Updated)
	return result, nil
}

func (uc *MarkReadUseCase) markOne(ctx context.Context, ticketID, adminID uint) (bool, error) {
	changed := false
	err := retryOnConflict(ctx, func() error {
		t, err := uc.ticketRepo.GetByID(ctx, ticketID)
		if err != nil {
			return err
		}
		tr, err := t.Apply(ticket.EventStaffMarkRead, adminID, biztime.NowUTC())
		if err != nil {
			return err
		}
		if tr.IsNoop() {
			changed = false
			return nil
		}
		if err := uc.ticketRepo.ApplyTransition(ctx, ticketID, tr); err != nil {
			return err
		}
		changed = true
		return nil
	})
	return changed, err
}
