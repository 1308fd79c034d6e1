package ticket

import (
	"fmt"
	"time"

	vo "supportdesk/internal/domain/ticket/valueobjects"
)

// Message is one append-only entry in a ticket thread.
type Message struct {
	id        uint
	ticketID  uint
	sender    vo.Sender
	authorID  uint
	content   string
	createdAt time.Time
}

// NewMessage validates and normalizes content. ticketID may be zero for the
// initiating message, which is attached when its ticket is persisted.
func NewMessage(ticketID uint, sender vo.Sender, authorID uint, content string, maxRunes int, now time.Time) (*Message, error) {
	if !sender.IsValid() {
		return nil, fmt.Errorf("invalid sender: %s", sender)
	}
	if authorID == 0 {
		return nil, fmt.Errorf("author ID is required")
	}

	normalized, err := NormalizeContent(content, maxRunes)
	if err != nil {
		return nil, err
	}

	return &Message{
		ticketID:  ticketID,
		sender:    sender,
		authorID:  authorID,
		content:   normalized,
		createdAt: now,
	}, nil
}

func ReconstructMessage(id, ticketID uint, sender vo.Sender, authorID uint, content string, createdAt time.Time) (*Message, error) {
	if id == 0 {
		return nil, fmt.Errorf("message ID cannot be zero")
	}
	if !sender.IsValid() {
		return nil, fmt.Errorf("invalid sender: %s", sender)
	}
	return &Message{
		id:        id,
		ticketID:  ticketID,
		sender:    sender,
		authorID:  authorID,
		content:   content,
		createdAt: createdAt,
	}, nil
}

func (m *Message) ID() uint {
	return m.id
}

func (m *Message) TicketID() uint {
	return m.ticketID
}

func (m *Message) Sender() vo.Sender {
	return m.sender
}

func (m *Message) AuthorID() uint {
	return m.authorID
}

func (m *Message) Content() string {
	return m.content
}

func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}

func (m *Message) SetID(id uint) error {
	if m.id != 0 {
		return fmt.Errorf("message ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("message ID cannot be zero")
	}
	m.id = id
	return nil
}

// AttachTo binds an unattached message to its ticket.
func (m *Message) AttachTo(ticketID uint) error {
	if m.ticketID != 0 && m.ticketID != ticketID {
		return fmt.Errorf("message already belongs to ticket %d", m.ticketID)
	}
	m.ticketID = ticketID
	return nil
}
