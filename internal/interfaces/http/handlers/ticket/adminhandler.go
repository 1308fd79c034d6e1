package ticket

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"supportdesk/internal/application/ticket/usecases"
	"supportdesk/internal/shared/authorization"
	"supportdesk/internal/shared/constants"
	"supportdesk/internal/shared/errors"
	"supportdesk/internal/shared/logger"
	"supportdesk/internal/shared/utils"
)

// AdminTicketHandler serves the staff routes.
type AdminTicketHandler struct {
	listTicketsUC  usecases.AdminListTicketsExecutor
	groupedUC      usecases.GroupedTicketsExecutor
	listMessagesUC usecases.ListMessagesExecutor
	replyUC        usecases.ReplyTicketExecutor
	closeUC        usecases.CloseTicketExecutor
	markReadUC     usecases.MarkReadExecutor
	logger         logger.Interface
}

func NewAdminTicketHandler(
	listTicketsUC usecases.AdminListTicketsExecutor,
	groupedUC usecases.GroupedTicketsExecutor,
	listMessagesUC usecases.ListMessagesExecutor,
	replyUC usecases.ReplyTicketExecutor,
	closeUC usecases.CloseTicketExecutor,
	markReadUC usecases.MarkReadExecutor,
	logger logger.Interface,
) *AdminTicketHandler {
	return &AdminTicketHandler{
		listTicketsUC:  listTicketsUC,
		groupedUC:      groupedUC,
		listMessagesUC: listMessagesUC,
		replyUC:        replyUC,
		closeUC:        closeUC,
		markReadUC:     markReadUC,
		logger:         logger,
	}
}

// ListTickets handles GET /admin/tickets
func (h *AdminTicketHandler) ListTickets(c *gin.Context) {
	ownerID, err := parseOptionalUint(c, "ownerId")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	pagination := utils.ParsePagination(c)

	result, err := h.listTicketsUC.Execute(c.Request.Context(), usecases.AdminListTicketsQuery{
		Status:   c.Query("status"),
		Type:     c.Query("type"),
		Query:    c.Query("query"),
		OwnerID:  ownerID,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GroupedTickets handles GET /admin/tickets/groups
func (h *AdminTicketHandler) GroupedTickets(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	groups, err := h.groupedUC.Execute(c.Request.Context(), usecases.GroupedTicketsQuery{
		Scope:    usecases.GroupScope(c.DefaultQuery("scope", string(usecases.ScopeActive))),
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ItemsSuccessResponse(c, groups)
}

// ListMessages handles GET /admin/tickets/:id/messages
func (h *AdminTicketHandler) ListMessages(c *gin.Context) {
	listMessages(c, h.listMessagesUC, false)
}

// Reply handles POST /admin/tickets/:id/messages
func (h *AdminTicketHandler) Reply(c *gin.Context) {
	adminID, ok := authorization.UserIDFromContext(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError(constants.ErrMsgUnauthorized))
		return
	}

	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AppendMessageRequest
	if err := bindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.replyUC.Execute(c.Request.Context(), usecases.ReplyTicketCommand{
		TicketID: ticketID,
		AdminID:  adminID,
		Content:  req.Content,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", AppendMessageResponse{
		ID:        result.MessageID,
		Status:    result.Status,
		CreatedAt: result.CreatedAt,
	})
}

// Close handles POST /admin/tickets/:id/close
func (h *AdminTicketHandler) Close(c *gin.Context) {
	adminID, ok := authorization.UserIDFromContext(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError(constants.ErrMsgUnauthorized))
		return
	}

	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.closeUC.Execute(c.Request.Context(), usecases.CloseTicketCommand{
		TicketID: ticketID,
		AdminID:  adminID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", CloseTicketResponse{ID: result.TicketID, ClosedAt: result.ClosedAt})
}

// MarkRead handles POST /tickets/mark-read
func (h *AdminTicketHandler) MarkRead(c *gin.Context) {
	adminID, ok := authorization.UserIDFromContext(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError(constants.ErrMsgUnauthorized))
		return
	}

	var req MarkReadRequest
	if err := bindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if !req.All && len(req.IDs) == 0 {
		utils.ErrorResponseWithError(c, errors.NewValidationError("ids is required unless all is true"))
		return
	}

	result, err := h.markReadUC.Execute(c.Request.Context(), usecases.MarkReadCommand{
		AdminID: adminID,
		IDs:     req.IDs,
		All:     req.All,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", MarkReadResponse{OK: true, Updated: result.Updated})
}
