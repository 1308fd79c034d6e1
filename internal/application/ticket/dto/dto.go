package dto

import (
	"time"

	"github.com/guregu/null/v5"

	"supportdesk/internal/domain/ticket"
	"supportdesk/internal/shared/mapper"
)

type TicketDTO struct {
	ID                   uint      `json:"id"`
	OwnerUserID          uint      `json:"ownerUserId"`
	Type                 string    `json:"type"`
	Status               string    `json:"status"`
	Content              string    `json:"content"`
	LatestReplyContent   string    `json:"latestReplyContent"`
	MessageCount         int       `json:"messageCount"`
	CreatedAt            time.Time `json:"createdAt"`
	ReadAt               null.Time `json:"readAt"`
	ClosedAt             null.Time `json:"closedAt"`
	LatestReplyAt        null.Time `json:"latestReplyAt"`
	LatestReplyByAdminID *uint     `json:"latestReplyByAdminId"`
}

// AdminTicketDTO is the staff list row.
type AdminTicketDTO struct {
	TicketDTO
	OwnerEmail  string `json:"ownerEmail"`
	UnreadCount int    `json:"unreadCount"`
}

type MessageDTO struct {
	ID          uint      `json:"id"`
	TicketID    uint      `json:"ticketId"`
	Sender      string    `json:"sender"`
	AuthorID    uint      `json:"authorId"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"contentHtml,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TicketGroupDTO is one type bucket of the admin aggregation view.
type TicketGroupDTO struct {
	Type     string            `json:"type"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
	Items    []*AdminTicketDTO `json:"items"`
}

func ToTicketDTO(s *ticket.Summary) *TicketDTO {
	if s == nil || s.Ticket == nil {
		return nil
	}
	t := s.Ticket

	return &TicketDTO{
		ID:                   t.ID(),
		OwnerUserID:          t.OwnerID(),
		Type:                 t.Category().String(),
		Status:               t.Status().String(),
		Content:              s.Content,
		LatestReplyContent:   s.LatestReplyContent,
		MessageCount:         s.MessageCount,
		CreatedAt:            t.CreatedAt(),
		ReadAt:               null.TimeFromPtr(t.ReadAt()),
		ClosedAt:             null.TimeFromPtr(t.ClosedAt()),
		LatestReplyAt:        null.TimeFromPtr(t.LatestReplyAt()),
		LatestReplyByAdminID: t.LatestReplyByAdminID(),
	}
}

func ToTicketDTOs(summaries []*ticket.Summary) []*TicketDTO {
	if summaries == nil {
		return []*TicketDTO{}
	}
	return mapper.MapSlice(summaries, ToTicketDTO)
}

// ToAdminTicketDTO attaches the owner's email from emails, which may be nil.
func ToAdminTicketDTO(s *ticket.Summary, emails map[uint]string) *AdminTicketDTO {
	base := ToTicketDTO(s)
	if base == nil {
		return nil
	}
	return &AdminTicketDTO{
		TicketDTO:   *base,
		OwnerEmail:  emails[base.OwnerUserID],
		UnreadCount: s.UnreadCount(),
	}
}

func ToAdminTicketDTOs(summaries []*ticket.Summary, emails map[uint]string) []*AdminTicketDTO {
	items := make([]*AdminTicketDTO, 0, len(summaries))
	for _, s := range summaries {
		if item := ToAdminTicketDTO(s, emails); item != nil {
			items = append(items, item)
		}
	}
	return items
}

// ToMessageDTO maps a message. render may be nil, in which case contentHtml is omitted.
func ToMessageDTO(m *ticket.Message, render func(string) string) *MessageDTO {
	if m == nil {
		return nil
	}

	out := &MessageDTO{
		ID:        m.ID(),
		TicketID:  m.TicketID(),
		Sender:    m.Sender().String(),
		AuthorID:  m.AuthorID(),
		Content:   m.Content(),
		CreatedAt: m.CreatedAt(),
	}
	if render != nil {
		out.ContentHTML = render(m.Content())
	}
	return out
}
