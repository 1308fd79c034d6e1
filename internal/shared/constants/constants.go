package constants

const (
	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP headers
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderETag          = "ETag"
	HeaderIfNoneMatch   = "If-None-Match"

	// Context keys set by the auth middleware
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"

	// Database table names
	TableUsers          = "users"
	TableTickets        = "tickets"
	TableTicketMessages = "ticket_messages"

	// Ticket defaults
	DefaultMaxContentLength = 5000
	// MaxStatusUpdateAttempts bounds compare-and-set retries on a ticket row.
	MaxStatusUpdateAttempts = 3

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgUnauthorized        = "Unauthorized access"
	ErrMsgForbidden           = "Access forbidden"
)
