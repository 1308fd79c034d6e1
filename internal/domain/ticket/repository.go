package ticket

import (
	"context"

	vo "supportdesk/internal/domain/ticket/valueobjects"
)

type TicketRepository interface {
	// Create persists the ticket and its initiating message atomically.
	// Fails with ErrActiveTicketExists when the owner has an open ticket.
	Create(ctx context.Context, ticket *Ticket, first *Message) error
	GetByID(ctx context.Context, ticketID uint) (*Ticket, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]*Summary, error)
	// ApplyTransition writes tr with a compare-and-set on tr.From. A lost race
	// yields ErrConcurrentUpdate.
	ApplyTransition(ctx context.Context, ticketID uint, tr Transition) error
	AppendMessage(ctx context.Context, message *Message) error
	ListMessages(ctx context.Context, ticketID uint) ([]*Message, error)
	// DeleteClosed removes a closed ticket and all its messages.
	DeleteClosed(ctx context.Context, ticketID uint) error
	List(ctx context.Context, filter TicketFilter) ([]*Summary, int64, error)
	ListIDsByStatus(ctx context.Context, status vo.TicketStatus) ([]uint, error)
}

type SortOrder string

const (
	SortCreatedAsc SortOrder = "created_asc"
	SortClosedDesc SortOrder = "closed_desc"
)

type TicketFilter struct {
	Statuses []vo.TicketStatus
	Category *vo.Category
	OwnerID  *uint
	// Query matches a ticket id, message content, or any of QueryOwnerIDs.
	Query         string
	QueryOwnerIDs []uint
	Sort          SortOrder
	Page          int
	PageSize      int
}

// Summary is the list read model: a ticket plus thread-derived fields.
type Summary struct {
	Ticket             *Ticket
	Content            string
	LatestReplyContent string
	MessageCount       int
	// UserMessagesSinceReply counts user messages after latestReplyAt, or all
	// of them when staff has not replied yet.
	UserMessagesSinceReply int
}

// UnreadCount is UserMessagesSinceReply for unread tickets and 0 otherwise.
func (s *Summary) UnreadCount() int {
	if s.Ticket == nil || !s.Ticket.Status().IsUnread() {
		return 0
	}
	return s.UserMessagesSinceReply
}
