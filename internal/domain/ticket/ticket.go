package ticket

import (
	"fmt"
	"time"

	vo "supportdesk/internal/domain/ticket/valueobjects"
)

type Ticket struct {
	id                   uint
	ownerID              uint
	category             vo.Category
	status               vo.TicketStatus
	firstMessageID       uint
	createdAt            time.Time
	readAt               *time.Time
	closedAt             *time.Time
	latestReplyAt        *time.Time
	latestReplyByAdminID *uint
	updatedAt            time.Time
}

func NewTicket(ownerID uint, category vo.Category, now time.Time) (*Ticket, error) {
	if ownerID == 0 {
		return nil, fmt.Errorf("owner ID is required")
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid category: %s", category)
	}

	return &Ticket{
		ownerID:   ownerID,
		category:  category,
		status:    vo.StatusOpenUnread,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructTicket(
	id uint,
	ownerID uint,
	category vo.Category,
	status vo.TicketStatus,
	firstMessageID uint,
	createdAt time.Time,
	readAt, closedAt, latestReplyAt *time.Time,
	latestReplyByAdminID *uint,
	updatedAt time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid category: %s", category)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}

	return &Ticket{
		id:                   id,
		ownerID:              ownerID,
		category:             category,
		status:               status,
		firstMessageID:       firstMessageID,
		createdAt:            createdAt,
		readAt:               readAt,
		closedAt:             closedAt,
		latestReplyAt:        latestReplyAt,
		latestReplyByAdminID: latestReplyByAdminID,
		updatedAt:            updatedAt,
	}, nil
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) OwnerID() uint {
	return t.ownerID
}

func (t *Ticket) Category() vo.Category {
	return t.category
}

func (t *Ticket) Status() vo.TicketStatus {
	return t.status
}

func (t *Ticket) FirstMessageID() uint {
	return t.firstMessageID
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) ReadAt() *time.Time {
	return t.readAt
}

func (t *Ticket) ClosedAt() *time.Time {
	return t.closedAt
}

func (t *Ticket) LatestReplyAt() *time.Time {
	return t.latestReplyAt
}

func (t *Ticket) LatestReplyByAdminID() *uint {
	return t.latestReplyByAdminID
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

func (t *Ticket) IsOwnedBy(userID uint) bool {
	return t.ownerID == userID
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

func (t *Ticket) SetFirstMessageID(id uint) error {
	if t.firstMessageID != 0 {
		return fmt.Errorf("first message ID is already set")
	}
	t.firstMessageID = id
	return nil
}

// Apply runs ev through the state machine and updates the ticket in memory.
// The returned transition is what the repository persists.
func (t *Ticket) Apply(ev Event, actorID uint, at time.Time) (Transition, error) {
	tr, err := Next(t.status, ev)
	if err != nil {
		return tr, err
	}
	tr.At = at
	tr.ActorID = actorID

	if tr.IsNoop() {
		return tr, nil
	}

	if tr.MarksRead && t.readAt == nil {
		readAt := at
		t.readAt = &readAt
	}
	if tr.Closes {
		closedAt := at
		t.closedAt = &closedAt
	}
	if tr.RecordsReply {
		replyAt := at
		adminID := actorID
		t.latestReplyAt = &replyAt
		t.latestReplyByAdminID = &adminID
	}
	t.status = tr.To
	t.updatedAt = at

	return tr, nil
}

// EnsureDeletable fails with ErrNotClosed unless the ticket is closed.
func (t *Ticket) EnsureDeletable() error {
	if !t.status.IsClosed() {
		return ErrNotClosed
	}
	return nil
}
