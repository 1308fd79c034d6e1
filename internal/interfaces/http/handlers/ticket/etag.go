package ticket

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"supportdesk/internal/application/ticket/usecases"
	"supportdesk/internal/shared/constants"
)

// threadETag changes whenever the thread grows or the ticket changes status.
func threadETag(result *usecases.ListMessagesResult) string {
	return fmt.Sprintf(`W/"%s-%d-%d"`, result.Status, len(result.Messages), result.LastMessageID())
}

func etagMatches(c *gin.Context, etag string) bool {
	header := c.GetHeader(constants.HeaderIfNoneMatch)
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}
