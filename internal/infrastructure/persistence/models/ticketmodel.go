package models

import "supportdesk/internal/shared/constants"

type TicketModel struct {
	ID       uint   `gorm:"primaryKey"`
	OwnerID  uint   `gorm:"not null;index:idx_tickets_owner_created,priority:1"`
	Category string `gorm:"size:20;not null;index"`
	Status   string `gorm:"size:20;not null;index"`
	// ActiveOwnerID mirrors OwnerID while the ticket is open and is NULL once
	// closed. Its unique index allows one open ticket per owner.
	ActiveOwnerID        *uint `gorm:"uniqueIndex:uk_tickets_active_owner"`
	FirstMessageID       uint  `gorm:"not null;default:0"`
	// Timestamps are Unix milliseconds written by the mapper; gorm must not
	// fill them with its own seconds clock.
	CreatedAt            int64 `gorm:"not null;autoCreateTime:false;index:idx_tickets_owner_created,priority:2"`
	UpdatedAt            int64 `gorm:"not null;autoUpdateTime:false"`
	ReadAt               *int64
	ClosedAt             *int64 `gorm:"index"`
	LatestReplyAt        *int64
	LatestReplyByAdminID *uint

	// Note: No foreign key constraints or associations.
	// Relationships are maintained by the repository inside transactions.
}

func (TicketModel) TableName() string {
	return constants.TableTickets
}

type TicketMessageModel struct {
	ID        uint   `gorm:"primaryKey"`
	TicketID  uint   `gorm:"not null;index:idx_ticket_messages_thread,priority:1"`
	Sender    string `gorm:"size:10;not null"`
	AuthorID  uint   `gorm:"not null"`
	Content   string `gorm:"type:text;not null"`
	CreatedAt int64  `gorm:"not null;autoCreateTime:false;index:idx_ticket_messages_thread,priority:2"`
}

func (TicketMessageModel) TableName() string {
	return constants.TableTicketMessages
}

// TicketSummaryRow is the list read model scanned from a joined query.
type TicketSummaryRow struct {
	TicketModel
	Content                string
	LatestReplyContent     string
	MessageCount           int
	UserMessagesSinceReply int
}
