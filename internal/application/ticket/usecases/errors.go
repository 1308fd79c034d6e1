package usecases

import (
	"context"
	"errors"
	"fmt"

	"supportdesk/internal/domain/ticket"
	"supportdesk/internal/shared/constants"
	apperrors "supportdesk/internal/shared/errors"
)

// translateError maps domain sentinels to application errors. Anything
// unrecognized is wrapped and ends up as an opaque 500.
func translateError(op string, err error) error {
	if err == nil {
		return nil
	}
	if apperrors.IsAppError(err) {
		return err
	}

	switch {
	case errors.Is(err, ticket.ErrTicketNotFound):
		return apperrors.NewNotFoundError("ticket not found")
	case errors.Is(err, ticket.ErrTicketClosed):
		return apperrors.NewTicketClosedError("ticket is closed", "closed tickets accept no further messages")
	case errors.Is(err, ticket.ErrNotClosed):
		return apperrors.NewPreconditionFailedError("ticket is not closed", "only closed tickets can be deleted")
	case errors.Is(err, ticket.ErrEmptyContent):
		return apperrors.NewValidationError("content cannot be empty")
	case errors.Is(err, ticket.ErrContentTooLong):
		return apperrors.NewValidationError("content is too long")
	case errors.Is(err, ticket.ErrActiveTicketExists):
		return apperrors.NewConflictError("an open ticket already exists", "close the current ticket before starting a new one")
	case errors.Is(err, ticket.ErrConcurrentUpdate):
		return apperrors.NewConflictError("ticket was modified concurrently", "retry the request")
	}

	return fmt.Errorf("failed to %s: %w", op, err)
}

// retryOnConflict reruns fn while it loses the status compare-and-set.
func retryOnConflict(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt < constants.MaxStatusUpdateAttempts; attempt++ {
		err = fn()
		if !errors.Is(err, ticket.ErrConcurrentUpdate) {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
	}
	return err
}
