package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"supportdesk/internal/domain/ticket"
	vo "supportdesk/internal/domain/ticket/valueobjects"
	"supportdesk/internal/infrastructure/persistence/mappers"
	"supportdesk/internal/infrastructure/persistence/models"
	"supportdesk/internal/shared/biztime"
	db "supportdesk/internal/shared/db"
	apperrors "supportdesk/internal/shared/errors"
)

// summarySelect derives the list fields from the thread in one round trip.
const summarySelect = `t.*,
	COALESCE(fm.content, '') AS content,
	COALESCE((SELECT rm.content FROM ticket_messages rm
		WHERE rm.ticket_id = t.id AND rm.sender = 'admin'
		ORDER BY rm.created_at DESC, rm.id DESC LIMIT 1), '') AS latest_reply_content,
	(SELECT COUNT(*) FROM ticket_messages cm WHERE cm.ticket_id = t.id) AS message_count,
	(SELECT COUNT(*) FROM ticket_messages um
		WHERE um.ticket_id = t.id AND um.sender = 'user'
		AND (t.latest_reply_at IS NULL OR um.created_at > t.latest_reply_at)) AS user_messages_since_reply`

var openStatusStrings = []string{vo.StatusOpenUnread.String(), vo.StatusOpenRead.String()}

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

// inTx joins the transaction carried by ctx or starts a new one.
func (r *TicketRepository) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if db.InTransaction(ctx) {
		return fn(db.GetTxFromContext(ctx, r.db))
	}
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket, first *ticket.Message) error {
	return r.inTx(ctx, func(tx *gorm.DB) error {
		var open int64
		if err := tx.Model(&models.TicketModel{}).
			Where("owner_id = ? AND status IN ?", t.OwnerID(), openStatusStrings).
			Count(&open).Error; err != nil {
			return fmt.Errorf("failed to check open tickets: %w", err)
		}
		if open > 0 {
			return ticket.ErrActiveTicketExists
		}

		model := r.mapper.ToModel(t)
		if err := tx.Create(model).Error; err != nil {
			if apperrors.IsDuplicateError(err) {
				return ticket.ErrActiveTicketExists
			}
			return fmt.Errorf("failed to create ticket: %w", err)
		}
		if err := t.SetID(model.ID); err != nil {
			return err
		}

		if err := first.AttachTo(model.ID); err != nil {
			return err
		}
		msgModel := r.mapper.MessageToModel(first)
		if err := tx.Create(msgModel).Error; err != nil {
			return fmt.Errorf("failed to create first message: %w", err)
		}
		if err := first.SetID(msgModel.ID); err != nil {
			return err
		}

		if err := tx.Model(&models.TicketModel{}).
			Where("id = ?", model.ID).
			Update("first_message_id", msgModel.ID).Error; err != nil {
			return fmt.Errorf("failed to link first message: %w", err)
		}
		return t.SetFirstMessageID(msgModel.ID)
	})
}

func (r *TicketRepository) GetByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ticket.ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) ListByOwner(ctx context.Context, ownerID uint) ([]*ticket.Summary, error) {
	var rows []*models.TicketSummaryRow
	if err := r.summaryQuery(ctx).
		Where("t.owner_id = ?", ownerID).
		Scopes(db.OrderByCreated("t")).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list owner tickets: %w", err)
	}
	return r.mapper.SummariesToDomain(rows)
}

func (r *TicketRepository) ApplyTransition(ctx context.Context, ticketID uint, tr ticket.Transition) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if tr.IsNoop() {
		return r.guardStatus(tx, ticketID, tr.From)
	}

	at := biztime.ToMillis(tr.At)
	updates := map[string]interface{}{
		"status":     tr.To.String(),
		"updated_at": at,
	}
	if tr.MarksRead {
		updates["read_at"] = gorm.Expr("COALESCE(read_at, ?)", at)
	}
	if tr.Closes {
		updates["closed_at"] = at
		updates["active_owner_id"] = nil
	}
	if tr.RecordsReply {
		updates["latest_reply_at"] = at
		updates["latest_reply_by_admin_id"] = tr.ActorID
	}

	result := tx.Model(&models.TicketModel{}).
		Where("id = ? AND status = ?", ticketID, tr.From.String()).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update ticket status: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	exists, err := r.exists(tx, ticketID)
	if err != nil {
		return err
	}
	if !exists {
		return ticket.ErrTicketNotFound
	}
	return ticket.ErrConcurrentUpdate
}

func (r *TicketRepository) AppendMessage(ctx context.Context, message *ticket.Message) error {
	model := r.mapper.MessageToModel(message)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	return message.SetID(model.ID)
}

func (r *TicketRepository) ListMessages(ctx context.Context, ticketID uint) ([]*ticket.Message, error) {
	var rows []*models.TicketMessageModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("ticket_id = ?", ticketID).
		Scopes(db.OrderByCreated("")).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return r.mapper.MessagesToDomain(rows)
}

func (r *TicketRepository) DeleteClosed(ctx context.Context, ticketID uint) error {
	return r.inTx(ctx, func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND status = ?", ticketID, vo.StatusClosed.String()).
			Delete(&models.TicketModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete ticket: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			exists, err := r.exists(tx, ticketID)
			if err != nil {
				return err
			}
			if !exists {
				return ticket.ErrTicketNotFound
			}
			return ticket.ErrNotClosed
		}

		if err := tx.Where("ticket_id = ?", ticketID).
			Delete(&models.TicketMessageModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete ticket messages: %w", err)
		}
		return nil
	})
}

func (r *TicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Summary, int64, error) {
	var total int64
	countQuery := r.applyFilter(db.GetTxFromContext(ctx, r.db).Table("tickets t"), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	query := r.applyFilter(r.summaryQuery(ctx), filter)
	switch filter.Sort {
	case ticket.SortClosedDesc:
		query = query.Order("t.closed_at DESC").Order("t.id DESC")
	default:
		query = query.Scopes(db.OrderByCreated("t"))
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Scopes(db.Paginate(filter.Page, filter.PageSize))
	}

	var rows []*models.TicketSummaryRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	summaries, err := r.mapper.SummariesToDomain(rows)
	if err != nil {
		return nil, 0, err
	}
	return summaries, total, nil
}

func (r *TicketRepository) ListIDsByStatus(ctx context.Context, status vo.TicketStatus) ([]uint, error) {
	var ids []uint
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Model(&models.TicketModel{}).
		Where("status = ?", status.String()).
		Order("id ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list ticket ids: %w", err)
	}
	return ids, nil
}

func (r *TicketRepository) summaryQuery(ctx context.Context) *gorm.DB {
	return db.GetTxFromContext(ctx, r.db).
		Table("tickets t").
		Select(summarySelect).
		Joins("LEFT JOIN ticket_messages fm ON fm.id = t.first_message_id")
}

func (r *TicketRepository) applyFilter(query *gorm.DB, filter ticket.TicketFilter) *gorm.DB {
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = s.String()
		}
		query = query.Where("t.status IN ?", statuses)
	}
	if filter.Category != nil {
		query = query.Where("t.category = ?", filter.Category.String())
	}
	if filter.OwnerID != nil {
		query = query.Where("t.owner_id = ?", *filter.OwnerID)
	}

	q := strings.TrimSpace(filter.Query)
	if q == "" {
		return query
	}

	clauses := []string{"EXISTS (SELECT 1 FROM ticket_messages qm WHERE qm.ticket_id = t.id AND qm.content LIKE ?)"}
	args := []interface{}{"%" + q + "%"}
	if id, err := strconv.ParseUint(strings.TrimPrefix(q, "#"), 10, 64); err == nil {
		clauses = append(clauses, "t.id = ?")
		args = append(args, id)
	}
	if len(filter.QueryOwnerIDs) > 0 {
		clauses = append(clauses, "t.owner_id IN ?")
		args = append(args, filter.QueryOwnerIDs)
	}

	return query.Where("("+strings.Join(clauses, " OR ")+")", args...)
}

// guardStatus checks that the ticket is still in status without writing
// anything. The row is locked for the rest of the transaction where the
// dialect supports it, so a concurrent close waits for the caller's append.
func (r *TicketRepository) guardStatus(tx *gorm.DB, ticketID uint, status vo.TicketStatus) error {
	query := tx.Model(&models.TicketModel{}).Where("id = ? AND status = ?", ticketID, status.String())
	if tx.Dialector.Name() != "sqlite" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var ids []uint
	if err := query.Pluck("id", &ids).Error; err != nil {
		return fmt.Errorf("failed to check ticket status: %w", err)
	}
	if len(ids) > 0 {
		return nil
	}

	exists, err := r.exists(tx, ticketID)
	if err != nil {
		return err
	}
	if !exists {
		return ticket.ErrTicketNotFound
	}
	return ticket.ErrConcurrentUpdate
}

func (r *TicketRepository) exists(tx *gorm.DB, ticketID uint) (bool, error) {
	var count int64
	if err := tx.Model(&models.TicketModel{}).Where("id = ?", ticketID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check ticket: %w", err)
	}
	return count > 0, nil
}
