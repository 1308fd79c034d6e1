package valueobjects

import "fmt"

type TicketStatus string

const (
	StatusOpenUnread TicketStatus = "OPEN_UNREAD"
	StatusOpenRead   TicketStatus = "OPEN_READ"
	StatusClosed     TicketStatus = "CLOSED"
)

var validTicketStatuses = map[TicketStatus]bool{
	StatusOpenUnread: true,
	StatusOpenRead:   true,
	StatusClosed:     true,
}

// OpenStatuses are the statuses of a ticket that still accepts messages.
var OpenStatuses = []TicketStatus{StatusOpenUnread, StatusOpenRead}

func (ts TicketStatus) String() string {
	return string(ts)
}

func (ts TicketStatus) IsValid() bool {
	return validTicketStatuses[ts]
}

func (ts TicketStatus) IsOpen() bool {
	return ts == StatusOpenUnread || ts == StatusOpenRead
}

func (ts TicketStatus) IsUnread() bool {
	return ts == StatusOpenUnread
}

func (ts TicketStatus) IsClosed() bool {
	return ts == StatusClosed
}

func NewTicketStatus(s string) (TicketStatus, error) {
	status := TicketStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return status, nil
}
