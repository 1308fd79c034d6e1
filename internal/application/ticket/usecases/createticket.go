package usecases

import (
	"context"
	"time"

	"supportdesk/internal/domain/ticket"
	vo "supportdesk/internal/domain/ticket/valueobjects"
	"supportdesk/internal/shared/biztime"
	"supportdesk/internal/shared/errors"
	"supportdesk/internal/shared/logger"
)

type CreateTicketCommand struct {
	OwnerID uint
	Type    string
	Content string
}

type CreateTicketResult struct {
	TicketID  uint
	CreatedAt time.Time
}

type CreateTicketUseCase struct {
	ticketRepo       ticket.TicketRepository
	maxContentLength int
	logger           logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	maxContentLength int,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo:       ticketRepo,
		maxContentLength: maxContentLength,
		logger:           logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error) {
	uc.logger.Infow("executing create ticket use case", "owner_id", cmd.OwnerID, "type", cmd.Type)

	category, err := vo.NewCategory(cmd.Type)
	if err != nil {
		return nil, errors.NewValidationError("invalid ticket type", err.Error())
	}

	now := biztime.NowUTC()
	t, err := ticket.NewTicket(cmd.OwnerID, category, now)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	first, err := ticket.NewMessage(0, vo.SenderUser, cmd.OwnerID, cmd.Content, uc.maxContentLength, now)
	if err != nil {
		return nil, translateError("create ticket", err)
	}

	if err := uc.ticketRepo.Create(ctx, t, first); err != nil {
		uc.logger.Errorw("failed to create ticket", "owner_id", cmd.OwnerID, "error", err)
		return nil, translateError("create ticket", err)
	}

	uc.logger.Infow("ticket created successfully", "ticket_id", t.ID(), "owner_id", cmd.OwnerID)
	return &CreateTicketResult{
		TicketID:  t.ID(),
		CreatedAt: t.CreatedAt(),
	}, nil
}
