package ticket

import "errors"

var (
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrTicketClosed       = errors.New("ticket is closed")
	ErrNotClosed          = errors.New("ticket is not closed")
	ErrEmptyContent       = errors.New("content cannot be empty")
	ErrContentTooLong     = errors.New("content exceeds maximum length")
	ErrActiveTicketExists = errors.New("owner already has an open ticket")
	// ErrConcurrentUpdate means the ticket's status changed between read and write.
	ErrConcurrentUpdate = errors.New("ticket was modified concurrently")
	ErrUnknownEvent     = errors.New("unknown lifecycle event")
)
