package mappers

import (
	"fmt"

	"supportdesk/internal/domain/ticket"
	vo "supportdesk/internal/domain/ticket/valueobjects"
	"supportdesk/internal/infrastructure/persistence/models"
	"supportdesk/internal/shared/biztime"
	"supportdesk/internal/shared/mapper"
)

// TicketMapper handles the conversion between ticket domain entities and persistence models.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) *models.TicketModel
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)
	SummaryToDomain(row *models.TicketSummaryRow) (*ticket.Summary, error)
	SummariesToDomain(rows []*models.TicketSummaryRow) ([]*ticket.Summary, error)
	MessageToModel(m *ticket.Message) *models.TicketMessageModel
	MessageToDomain(model *models.TicketMessageModel) (*ticket.Message, error)
	MessagesToDomain(rows []*models.TicketMessageModel) ([]*ticket.Message, error)
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	model := &models.TicketModel{
		ID:                   t.ID(),
		OwnerID:              t.OwnerID(),
		Category:             t.Category().String(),
		Status:               t.Status().String(),
		FirstMessageID:       t.FirstMessageID(),
		CreatedAt:            biztime.ToMillis(t.CreatedAt()),
		UpdatedAt:            biztime.ToMillis(t.UpdatedAt()),
		ReadAt:               biztime.ToMillisPtr(t.ReadAt()),
		ClosedAt:             biztime.ToMillisPtr(t.ClosedAt()),
		LatestReplyAt:        biztime.ToMillisPtr(t.LatestReplyAt()),
		LatestReplyByAdminID: t.LatestReplyByAdminID(),
	}

	if t.Status().IsOpen() {
		owner := t.OwnerID()
		model.ActiveOwnerID = &owner
	}

	return model
}

func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	if model == nil {
		return nil, nil
	}

	status, err := vo.NewTicketStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to map ticket %d: %w", model.ID, err)
	}

	return ticket.ReconstructTicket(
		model.ID,
		model.OwnerID,
		vo.Category(model.Category),
		status,
		model.FirstMessageID,
		biztime.FromMillis(model.CreatedAt),
		biztime.FromMillisPtr(model.ReadAt),
		biztime.FromMillisPtr(model.ClosedAt),
		biztime.FromMillisPtr(model.LatestReplyAt),
		model.LatestReplyByAdminID,
		biztime.FromMillis(model.UpdatedAt),
	)
}

func (m *TicketMapperImpl) SummaryToDomain(row *models.TicketSummaryRow) (*ticket.Summary, error) {
	t, err := m.ToDomain(&row.TicketModel)
	if err != nil {
		return nil, err
	}
	return &ticket.Summary{
		Ticket:                 t,
		Content:                row.Content,
		LatestReplyContent:     row.LatestReplyContent,
		MessageCount:           row.MessageCount,
		UserMessagesSinceReply: row.UserMessagesSinceReply,
	}, nil
}

func (m *TicketMapperImpl) SummariesToDomain(rows []*models.TicketSummaryRow) ([]*ticket.Summary, error) {
	return mapper.MapSlicePtrWithID(rows, m.SummaryToDomain, func(r *models.TicketSummaryRow) uint { return r.ID })
}

func (m *TicketMapperImpl) MessageToModel(msg *ticket.Message) *models.TicketMessageModel {
	return &models.TicketMessageModel{
		ID:        msg.ID(),
		TicketID:  msg.TicketID(),
		Sender:    msg.Sender().String(),
		AuthorID:  msg.AuthorID(),
		Content:   msg.Content(),
		CreatedAt: biztime.ToMillis(msg.CreatedAt()),
	}
}

func (m *TicketMapperImpl) MessageToDomain(model *models.TicketMessageModel) (*ticket.Message, error) {
	if model == nil {
		return nil, nil
	}
	return ticket.ReconstructMessage(
		model.ID,
		model.TicketID,
		vo.Sender(model.Sender),
		model.AuthorID,
		model.Content,
		biztime.FromMillis(model.CreatedAt),
	)
}

func (m *TicketMapperImpl) MessagesToDomain(rows []*models.TicketMessageModel) ([]*ticket.Message, error) {
	return mapper.MapSlicePtrWithID(rows, m.MessageToDomain, func(r *models.TicketMessageModel) uint { return r.ID })
}
