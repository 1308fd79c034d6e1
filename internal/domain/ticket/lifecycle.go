package ticket

import (
	"fmt"
	"time"

	vo "supportdesk/internal/domain/ticket/valueobjects"
)

// Event is something that happened to a ticket and may move its status.
type Event string

const (
	EventUserMessage   Event = "user_message"
	EventStaffReply    Event = "staff_reply"
	EventStaffMarkRead Event = "staff_mark_read"
	EventStaffClose    Event = "staff_close"
)

func (e Event) String() string {
	return string(e)
}

// Transition is the outcome of one lifecycle step. Persisting it is a
// compare-and-set on From.
type Transition struct {
	Event Event
	From  vo.TicketStatus
	To    vo.TicketStatus

	// MarksRead sets readAt when it is still null. It never overwrites.
	MarksRead bool
	// Closes sets closedAt and releases the owner's active slot.
	Closes bool
	// RecordsReply sets latestReplyAt and latestReplyByAdminId.
	RecordsReply bool

	At      time.Time
	ActorID uint
}

// IsNoop reports whether the transition changes nothing on the ticket row.
func (tr Transition) IsNoop() bool {
	return tr.From == tr.To && !tr.MarksRead && !tr.Closes && !tr.RecordsReply
}

// Next is the ticket state machine. It is the only place that decides a
// status change; appends to a closed ticket fail with ErrTicketClosed.
func Next(from vo.TicketStatus, ev Event) (Transition, error) {
	tr := Transition{Event: ev, From: from, To: from}

	switch from {
	case vo.StatusOpenUnread:
		switch ev {
		case EventUserMessage:
			return tr, nil
		case EventStaffReply:
			tr.To = vo.StatusOpenRead
			tr.MarksRead = true
			tr.RecordsReply = true
			return tr, nil
		case EventStaffMarkRead:
			tr.To = vo.StatusOpenRead
			tr.MarksRead = true
			return tr, nil
		case EventStaffClose:
			tr.To = vo.StatusClosed
			tr.Closes = true
			return tr, nil
		}

	case vo.StatusOpenRead:
		switch ev {
		case EventUserMessage:
			tr.To = vo.StatusOpenUnread
			return tr, nil
		case EventStaffReply:
			tr.RecordsReply = true
			return tr, nil
		case EventStaffMarkRead:
			return tr, nil
		case EventStaffClose:
			tr.To = vo.StatusClosed
			tr.Closes = true
			return tr, nil
		}

	case vo.StatusClosed:
		switch ev {
		case EventUserMessage, EventStaffReply:
			return tr, ErrTicketClosed
		case EventStaffMarkRead, EventStaffClose:
			return tr, nil
		}

	default:
		return tr, fmt.Errorf("invalid ticket status: %s", from)
	}

	return tr, fmt.Errorf("%w: %s", ErrUnknownEvent, ev)
}
