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

type AppendMessageResult struct {
	MessageID uint
	Status    string
	CreatedAt time.Time
}

// messageAppender stores a message and the status transition it causes in one
// transaction, retrying when another writer moved the status first.
type messageAppender struct {
	ticketRepo       ticket.TicketRepository
	txMgr            TxManager
	maxContentLength int
	logger           logger.Interface
}

type appendRequest struct {
	ticketID     uint
	authorID     uint
	sender       vo.Sender
	event        ticket.Event
	content      string
	requireOwner bool
}

func (a *messageAppender) append(ctx context.Context, req appendRequest) (*AppendMessageResult, error) {
	// Validate once up front so a bad body never touches the store.
	content, err := ticket.NormalizeContent(req.content, a.maxContentLength)
	if err != nil {
		return nil, translateError("append message", err)
	}

	var result *AppendMessageResult
	err = retryOnConflict(ctx, func() error {
		t, err := a.ticketRepo.GetByID(ctx, req.ticketID)
		if err != nil {
			return err
		}
		if req.requireOwner && !t.IsOwnedBy(req.authorID) {
			return errors.NewNotFoundError("ticket not found")
		}

		now := biztime.NowUTC()
		tr, err := t.Apply(req.event, req.authorID, now)
		if err != nil {
			return err
		}

		message, err := ticket.NewMessage(t.ID(), req.sender, req.authorID, content, a.maxContentLength, now)
		if err != nil {
			return err
		}

		if err := a.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
			if err := a.ticketRepo.ApplyTransition(txCtx, t.ID(), tr); err != nil {
				return err
			}
			return a.ticketRepo.AppendMessage(txCtx, message)
		}); err != nil {
			return err
		}

		result = &AppendMessageResult{
			MessageID: message.ID(),
			Status:    t.Status().String(),
			CreatedAt: message.CreatedAt(),
		}
		return nil
	})
	if err != nil {
		if !errors.IsAppError(err) {
			a.logger.Warnw("failed to append message", "ticket_id", req.ticketID, "sender", req.sender, "error", err)
		}
		return nil, translateError("append message", err)
	}

	return result, nil
}

type AppendUserMessageCommand struct {
	TicketID uint
	UserID   uint
	Content  string
}

type AppendUserMessageUseCase struct {
	appender messageAppender
	logger   logger.Interface
}

func NewAppendUserMessageUseCase(
	ticketRepo ticket.TicketRepository,
	txMgr TxManager,
	maxContentLength int,
	logger logger.Interface,
) *AppendUserMessageUseCase {
	return &AppendUserMessageUseCase{
		appender: messageAppender{
			ticketRepo:       ticketRepo,
			txMgr:            txMgr,
			maxContentLength: maxContentLength,
			logger:           logger,
		},
		logger: logger,
	}
}

func (uc *AppendUserMessageUseCase) Execute(ctx context.Context, cmd AppendUserMessageCommand) (*AppendMessageResult, error) {
	uc.logger.Infow("executing append user message use case", "ticket_id", cmd.TicketID, "user_id", cmd.UserID)

	result, err := uc.appender.append(ctx, appendRequest{
		ticketID:     cmd.TicketID,
		authorID:     cmd.UserID,
		sender:       vo.SenderUser,
		event:        ticket.EventUserMessage,
		content:      cmd.Content,
		requireOwner: true,
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("user message appended", "ticket_id", cmd.TicketID, "message_id", result.MessageID, "status", result.Status)
	return result, nil
}

type ReplyTicketCommand struct {
	TicketID uint
	AdminID  uint
	Content  string
}

type ReplyTicketUseCase struct {
	appender messageAppender
	logger   logger.Interface
}

func NewReplyTicketUseCase(
	ticketRepo ticket.TicketRepository,
	txMgr TxManager,
	maxContentLength int,
	logger logger.Interface,
) *ReplyTicketUseCase {
	return &ReplyTicketUseCase{
		appender: messageAppender{
			ticketRepo:       ticketRepo,
			txMgr:            txMgr,
			maxContentLength: maxContentLength,
			logger:           logger,
		},
		logger: logger,
	}
}

func (uc *ReplyTicketUseCase) Execute(ctx context.Context, cmd ReplyTicketCommand) (*AppendMessageResult, error) {
	uc.logger.Infow("executing reply ticket use case", "ticket_id", cmd.TicketID, "admin_id", cmd.AdminID)

	result, err := uc.appender.append(ctx, appendRequest{
		ticketID: cmd.TicketID,
		authorID: cmd.AdminID,
		sender:   vo.SenderAdmin,
		event:    ticket.EventStaffReply,
		content:  cmd.Content,
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("staff reply appended", "ticket_id", cmd.TicketID, "message_id", result.MessageID, "status", result.Status)
	return result, nil
}
