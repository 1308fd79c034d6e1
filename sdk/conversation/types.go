package conversation

import (
	"encoding/json"
	"strconv"
	"time"
)

// Ticket statuses.
const (
	StatusOpenUnread = "OPEN_UNREAD"
	StatusOpenRead   = "OPEN_READ"
	StatusClosed     = "CLOSED"
)

// Message senders.
const (
	SenderUser  = "user"
	SenderAdmin = "admin"
)

// Scope selects the half of the admin aggregation view.
type Scope string

const (
	ScopeActive  Scope = "active"
	ScopeHistory Scope = "history"
)

// Ticket is a ticket summary as returned by the list endpoints. OwnerEmail and
// UnreadCount are only filled by the admin routes.
type Ticket struct {
	ID                   uint       `json:"id"`
	OwnerUserID          uint       `json:"ownerUserId"`
	Type                 string     `json:"type"`
	Status               string     `json:"status"`
	Content              string     `json:"content"`
	LatestReplyContent   string     `json:"latestReplyContent"`
	MessageCount         int        `json:"messageCount"`
	CreatedAt            time.Time  `json:"createdAt"`
	ReadAt               *time.Time `json:"readAt"`
	ClosedAt             *time.Time `json:"closedAt"`
	LatestReplyAt        *time.Time `json:"latestReplyAt"`
	LatestReplyByAdminID *uint      `json:"latestReplyByAdminId"`
	OwnerEmail           string     `json:"ownerEmail,omitempty"`
	UnreadCount          int        `json:"unreadCount,omitempty"`
}

// IsOpen reports whether the ticket still accepts messages.
func (t Ticket) IsOpen() bool {
	return t.Status != StatusClosed
}

// Message is one entry of a conversation thread. Messages created locally by
// an optimistic send carry a TempID and a zero ID until the server copy
// replaces them.
type Message struct {
	ID          uint      `json:"id"`
	TicketID    uint      `json:"ticketId"`
	Sender      string    `json:"sender"`
	AuthorID    uint      `json:"authorId"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"contentHtml,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`

	TempID string `json:"-"`
}

// Key identifies the message within its thread.
func (m Message) Key() string {
	if m.TempID != "" {
		return m.TempID
	}
	return strconv.FormatUint(uint64(m.ID), 10)
}

// Pending reports whether the message is a local optimistic copy.
func (m Message) Pending() bool {
	return m.TempID != ""
}

// TicketPage is one page of the admin ticket list.
type TicketPage struct {
	Items      []Ticket `json:"items"`
	Total      int64    `json:"total"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	TotalPages int      `json:"total_pages"`
}

// TicketGroup is one type bucket of the admin aggregation view.
type TicketGroup struct {
	Type     string   `json:"type"`
	Total    int64    `json:"total"`
	Page     int      `json:"page"`
	PageSize int      `json:"pageSize"`
	Items    []Ticket `json:"items"`
}

// AdminFilter narrows the admin ticket list. Zero values are not sent.
type AdminFilter struct {
	Status   string
	Type     string
	Query    string
	OwnerID  uint
	Page     int
	PageSize int
}

type CreateTicketResult struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

type AppendResult struct {
	ID        uint      `json:"id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type CloseResult struct {
	ID       uint      `json:"id"`
	ClosedAt time.Time `json:"closedAt"`
}

type MarkReadResult struct {
	OK      bool `json:"ok"`
	Updated int  `json:"updated"`
}

// apiResponse represents the standard API response structure.
type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *apiErrorBody   `json:"error,omitempty"`
}

type apiErrorBody struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type itemsEnvelope[T any] struct {
	Items []T `json:"items"`
}
