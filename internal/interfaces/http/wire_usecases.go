package http

import (
	"supportdesk/internal/application/ticket/usecases"
	"supportdesk/internal/shared/logger"
)

// ticketUseCases holds all ticket use case instances.
type ticketUseCases struct {
	// Owner
	createTicketUC   *usecases.CreateTicketUseCase
	listOwnTicketsUC *usecases.ListOwnTicketsUseCase
	appendMessageUC  *usecases.AppendUserMessageUseCase
	deleteTicketUC   *usecases.DeleteTicketUseCase

	// Shared
	listMessagesUC *usecases.ListMessagesUseCase

	// Staff
	replyTicketUC      *usecases.ReplyTicketUseCase
	closeTicketUC      *usecases.CloseTicketUseCase
	markReadUC         *usecases.MarkReadUseCase
	adminListTicketsUC *usecases.AdminListTicketsUseCase
	groupedTicketsUC   *usecases.GroupedTicketsUseCase
}

func newTicketUseCases(repos *repositories, renderer usecases.ContentRenderer, maxContentLength int, log logger.Interface) *ticketUseCases {
	return &ticketUseCases{
		createTicketUC:   usecases.NewCreateTicketUseCase(repos.ticketRepo, maxContentLength, log),
		listOwnTicketsUC: usecases.NewListOwnTicketsUseCase(repos.ticketRepo, log),
		appendMessageUC:  usecases.NewAppendUserMessageUseCase(repos.ticketRepo, repos.txMgr, maxContentLength, log),
		deleteTicketUC:   usecases.NewDeleteTicketUseCase(repos.ticketRepo, log),

		listMessagesUC: usecases.NewListMessagesUseCase(repos.ticketRepo, renderer, log),

		replyTicketUC:      usecases.NewReplyTicketUseCase(repos.ticketRepo, repos.txMgr, maxContentLength, log),
		closeTicketUC:      usecases.NewCloseTicketUseCase(repos.ticketRepo, log),
		markReadUC:         usecases.NewMarkReadUseCase(repos.ticketRepo, log),
		adminListTicketsUC: usecases.NewAdminListTicketsUseCase(repos.ticketRepo, repos.directory, log),
		groupedTicketsUC:   usecases.NewGroupedTicketsUseCase(repos.ticketRepo, repos.directory, log),
	}
}
