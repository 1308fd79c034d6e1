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

// TicketHandler serves the owner-facing conversation routes.
type TicketHandler struct {
	createTicketUC  usecases.CreateTicketExecutor
	listOwnUC       usecases.ListOwnTicketsExecutor
	listMessagesUC  usecases.ListMessagesExecutor
	appendMessageUC usecases.AppendUserMessageExecutor
	deleteTicketUC  usecases.DeleteTicketExecutor
	logger          logger.Interface
}

func NewTicketHandler(
	createTicketUC usecases.CreateTicketExecutor,
	listOwnUC usecases.ListOwnTicketsExecutor,
	listMessagesUC usecases.ListMessagesExecutor,
	appendMessageUC usecases.AppendUserMessageExecutor,
	deleteTicketUC usecases.DeleteTicketExecutor,
	logger logger.Interface,
) *TicketHandler {
	return &TicketHandler{
		createTicketUC:  createTicketUC,
		listOwnUC:       listOwnUC,
		listMessagesUC:  listMessagesUC,
		appendMessageUC: appendMessageUC,
		deleteTicketUC:  deleteTicketUC,
		logger:          logger,
	}
}

// CreateTicket handles POST /tickets
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	userID, ok := authorization.UserIDFromContext(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError(constants.ErrMsgUnauthorized))
		return
	}

	var req CreateTicketRequest
	if err := bindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createTicketUC.Execute(c.Request.Context(), req.ToCommand(userID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, CreateTicketResponse{ID: result.TicketID, CreatedAt: result.CreatedAt})
}

// ListTickets handles GET /tickets?ownerId=
func (h *TicketHandler) ListTickets(c *gin.Context) {
	userID, ok := authorization.UserIDFromContext(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError(constants.ErrMsgUnauthorized))
		return
	}

	ownerID := userID
	requested, err := parseOptionalUint(c, "ownerId")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if requested != nil {
		if !authorization.CanAccessResourceByOwnerID(userID, authorization.RoleFromContext(c), *requested) {
			utils.ErrorResponseWithError(c, errors.NewForbiddenError(constants.ErrMsgForbidden))
			return
		}
		ownerID = *requested
	}

	items, err := h.listOwnUC.Execute(c.Request.Context(), usecases.ListOwnTicketsQuery{OwnerID: ownerID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ItemsSuccessResponse(c, items)
}

// ListMessages handles GET /tickets/:id/messages
func (h *TicketHandler) ListMessages(c *gin.Context) {
	listMessages(c, h.listMessagesUC, true)
}

// AppendMessage handles POST /tickets/:id/messages
func (h *TicketHandler) AppendMessage(c *gin.Context) {
	userID, ok := authorization.UserIDFromContext(c)
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

	result, err := h.appendMessageUC.Execute(c.Request.Context(), usecases.AppendUserMessageCommand{
		TicketID: ticketID,
		UserID:   userID,
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

// DeleteTicket handles DELETE /tickets/:id
func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	userID, ok := authorization.UserIDFromContext(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError(constants.ErrMsgUnauthorized))
		return
	}

	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteTicketUC.Execute(c.Request.Context(), usecases.DeleteTicketCommand{
		TicketID: ticketID,
		UserID:   userID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKSuccessResponse(c, "")
}

// listMessages is shared by the owner and staff thread routes.
func listMessages(c *gin.Context, uc usecases.ListMessagesExecutor, requireOwner bool) {
	userID, ok := authorization.UserIDFromContext(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError(constants.ErrMsgUnauthorized))
		return
	}

	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := uc.Execute(c.Request.Context(), usecases.ListMessagesQuery{
		TicketID:     ticketID,
		RequesterID:  userID,
		RequireOwner: requireOwner,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	etag := threadETag(result)
	if etagMatches(c, etag) {
		utils.NotModifiedResponse(c, etag)
		return
	}

	c.Header(constants.HeaderETag, etag)
	utils.ItemsSuccessResponse(c, result.Messages)
}
