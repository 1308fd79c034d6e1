package usecases

import (
	"context"
	"strings"

	"supportdesk/internal/application/ticket/dto"
	"supportdesk/internal/domain/ticket"
	vo "supportdesk/internal/domain/ticket/valueobjects"
	"supportdesk/internal/domain/user"
	"supportdesk/internal/shared/errors"
	"supportdesk/internal/shared/logger"
	"supportdesk/internal/shared/mapper"
	"supportdesk/internal/shared/utils"
)

// maxEmailMatches bounds how many owners an email query may expand to.
const maxEmailMatches = 200

type AdminListTicketsQuery struct {
	Status   string
	Type     string
	Query    string
	OwnerID  *uint
	Page     int
	PageSize int
}

type AdminListTicketsResult struct {
	Items    []*dto.AdminTicketDTO
	Total    int64
	Page     int
	PageSize int
}

type AdminListTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	directory  user.Directory
	logger     logger.Interface
}

func NewAdminListTicketsUseCase(
	ticketRepo ticket.TicketRepository,
	directory user.Directory,
	logger logger.Interface,
) *AdminListTicketsUseCase {
	return &AdminListTicketsUseCase{
		ticketRepo: ticketRepo,
		directory:  directory,
		logger:     logger,
	}
}

func (uc *AdminListTicketsUseCase) Execute(ctx context.Context, query AdminListTicketsQuery) (*AdminListTicketsResult, error) {
	uc.logger.Debugw("executing admin list tickets use case",
		"status", query.Status, "type", query.Type, "query", query.Query, "page", query.Page)

	pagination := utils.ValidatePagination(query.Page, query.PageSize)
	filter := ticket.TicketFilter{
		OwnerID:  query.OwnerID,
		Query:    strings.TrimSpace(query.Query),
		Sort:     ticket.SortCreatedAsc,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}

	if query.Status != "" {
		status, err := vo.NewTicketStatus(query.Status)
		if err != nil {
			return nil, errors.NewValidationError("invalid status filter", err.Error())
		}
		filter.Statuses = []vo.TicketStatus{status}
	}
	if query.Type != "" {
		category, err := vo.NewCategory(query.Type)
		if err != nil {
			return nil, errors.NewValidationError("invalid type filter", err.Error())
		}
		filter.Category = &category
	}
	if filter.Query != "" {
		ownerIDs, err := uc.directory.IDsByEmailQuery(ctx, filter.Query, maxEmailMatches)
		if err != nil {
			uc.logger.Errorw("failed to search users by email", "query", filter.Query, "error", err)
			return nil, translateError("search users", err)
		}
		filter.QueryOwnerIDs = ownerIDs
	}

	summaries, total, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, translateError("list tickets", err)
	}

	emails, err := ownerEmails(ctx, uc.directory, summaries)
	if err != nil {
		uc.logger.Warnw("failed to resolve owner emails", "error", err)
	}

	return &AdminListTicketsResult{
		Items:    dto.ToAdminTicketDTOs(summaries, emails),
		Total:    total,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}, nil
}

func ownerEmails(ctx context.Context, directory user.Directory, summaries []*ticket.Summary) (map[uint]string, error) {
	if len(summaries) == 0 {
		return map[uint]string{}, nil
	}
	ids := mapper.UniqueIDs(summaries, func(s *ticket.Summary) uint { return s.Ticket.OwnerID() })
	return directory.EmailsByIDs(ctx, ids)
}
