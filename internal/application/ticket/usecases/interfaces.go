package usecases

import (
	"context"

	"supportdesk/internal/application/ticket/dto"
)

// TxManager runs fn inside one database transaction.
type TxManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ContentRenderer turns stored message text into display HTML.
type ContentRenderer interface {
	ToHTMLSanitized(markdown string) (string, error)
}

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error)
}

type ListOwnTicketsExecutor interface {
	Execute(ctx context.Context, query ListOwnTicketsQuery) ([]*dto.TicketDTO, error)
}

type ListMessagesExecutor interface {
	Execute(ctx context.Context, query ListMessagesQuery) (*ListMessagesResult, error)
}

type AppendUserMessageExecutor interface {
	Execute(ctx context.Context, cmd AppendUserMessageCommand) (*AppendMessageResult, error)
}

type ReplyTicketExecutor interface {
	Execute(ctx context.Context, cmd ReplyTicketCommand) (*AppendMessageResult, error)
}

type MarkReadExecutor interface {
	Execute(ctx context.Context, cmd MarkReadCommand) (*MarkReadResult, error)
}

type CloseTicketExecutor interface {
	Execute(ctx context.Context, cmd CloseTicketCommand) (*CloseTicketResult, error)
}

type DeleteTicketExecutor interface {
	Execute(ctx context.Context, cmd DeleteTicketCommand) error
}

type AdminListTicketsExecutor interface {
	Execute(ctx context.Context, query AdminListTicketsQuery) (*AdminListTicketsResult, error)
}

type GroupedTicketsExecutor interface {
	Execute(ctx context.Context, query GroupedTicketsQuery) ([]*dto.TicketGroupDTO, error)
}
