package usecases

import (
	"context"

	"golang.org/x/sync/errgroup"

	"supportdesk/internal/application/ticket/dto"
	"supportdesk/internal/domain/ticket"
	vo "supportdesk/internal/domain/ticket/valueobjects"
	"supportdesk/internal/domain/user"
	"supportdesk/internal/shared/errors"
	"supportdesk/internal/shared/logger"
	"supportdesk/internal/shared/utils"
)

type GroupScope string

const (
	ScopeActive  GroupScope = "active"
	ScopeHistory GroupScope = "history"
)

type GroupedTicketsQuery struct {
	Scope    GroupScope
	Page     int
	PageSize int
}

type GroupedTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	directory  user.Directory
	logger     logger.Interface
}

func NewGroupedTicketsUseCase(
	ticketRepo ticket.TicketRepository,
	directory user.Directory,
	logger logger.Interface,
) *GroupedTicketsUseCase {
	return &GroupedTicketsUseCase{
		ticketRepo: ticketRepo,
		directory:  directory,
		logger:     logger,
	}
}

// Execute returns one group per ticket type, skipping empty ones. History is
// newest closed first; the active queue is oldest first.
func (uc *GroupedTicketsUseCase) Execute(ctx context.Context, query GroupedTicketsQuery) ([]*dto.TicketGroupDTO, error) {
	uc.logger.Debugw("executing grouped tickets use case", "scope", query.Scope, "page", query.Page)

	base := ticket.TicketFilter{}
	switch query.Scope {
	case ScopeActive, "":
		base.Statuses = vo.OpenStatuses
		base.Sort = ticket.SortCreatedAsc
	case ScopeHistory:
		base.Statuses = []vo.TicketStatus{vo.StatusClosed}
		base.Sort = ticket.SortClosedDesc
	default:
		return nil, errors.NewValidationError("invalid scope", "scope must be active or history")
	}

	pagination := utils.ValidatePagination(query.Page, query.PageSize)
	base.Page = pagination.Page
	base.PageSize = pagination.PageSize

	type groupResult struct {
		summaries []*ticket.Summary
		total     int64
	}
	results := make([]groupResult, len(vo.Categories))

	g, gctx := errgroup.WithContext(ctx)
	for i, category := range vo.Categories {
		filter := base
		filter.Category = &category
		g.Go(func() error {
			summaries, total, err := uc.ticketRepo.List(gctx, filter)
			if err != nil {
				return err
			}
			results[i] = groupResult{summaries: summaries, total: total}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		uc.logger.Errorw("failed to load ticket groups", "scope", query.Scope, "error", err)
		return nil, translateError("load ticket groups", err)
	}

	var all []*ticket.Summary
	for _, r := range results {
		all = append(all, r.summaries...)
	}
	emails, err := ownerEmails(ctx, uc.directory, all)
	if err != nil {
		uc.logger.Warnw("failed to resolve owner emails", "error", err)
	}

	groups := make([]*dto.TicketGroupDTO, 0, len(vo.Categories))
	for i, category := range vo.Categories {
		if results[i].total == 0 {
			continue
		}
		groups = append(groups, &dto.TicketGroupDTO{
			Type:     category.String(),
			Total:    results[i].total,
			Page:     pagination.Page,
			PageSize: pagination.PageSize,
			Items:    dto.ToAdminTicketDTOs(results[i].summaries, emails),
		})
	}
	return groups, nil
}
