package ticket

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"supportdesk/internal/application/ticket/usecases"
	"supportdesk/internal/shared/errors"
	"supportdesk/internal/shared/utils"
)

type CreateTicketRequest struct {
	Content string `json:"content" binding:"required"`
	Type    string `json:"type"`
}

func (r *CreateTicketRequest) ToCommand(ownerID uint) usecases.CreateTicketCommand {
	return usecases.CreateTicketCommand{
		OwnerID: ownerID,
		Type:    r.Type,
		Content: r.Content,
	}
}

type CreateTicketResponse struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

type AppendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

type AppendMessageResponse struct {
	ID        uint      `json:"id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type MarkReadRequest struct {
	IDs []uint `json:"ids" binding:"omitempty,dive,gt=0"`
	All bool   `json:"all"`
}

type MarkReadResponse struct {
	OK      bool `json:"ok"`
	Updated int  `json:"updated"`
}

type CloseTicketResponse struct {
	ID       uint      `json:"id"`
	ClosedAt time.Time `json:"closedAt"`
}

// bindJSON reports binding failures as validation errors.
func bindJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return errors.NewValidationError(utils.ValidationMessage(err))
	}
	return nil
}

func parseTicketID(c *gin.Context) (uint, error) {
	return utils.ParseIDParam(c, "id", "ticket")
}

// parseOptionalUint reads a positive integer query parameter.
func parseOptionalUint(c *gin.Context, key string) (*uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return nil, errors.NewValidationError("Invalid " + key)
	}
	id := uint(v)
	return &id, nil
}
