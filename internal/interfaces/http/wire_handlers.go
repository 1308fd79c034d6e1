package http

import (
	tickethandlers "supportdesk/internal/interfaces/http/handlers/ticket"
	"supportdesk/internal/shared/logger"
)

type handlerSet struct {
	ticketHandler      *tickethandlers.TicketHandler
	adminTicketHandler *tickethandlers.AdminTicketHandler
}

func newHandlers(ucs *ticketUseCases, log logger.Interface) *handlerSet {
	return &handlerSet{
		ticketHandler: tickethandlers.NewTicketHandler(
			ucs.createTicketUC,
			ucs.listOwnTicketsUC,
			ucs.listMessagesUC,
			ucs.appendMessageUC,
			ucs.deleteTicketUC,
			log,
		),
		adminTicketHandler: tickethandlers.NewAdminTicketHandler(
			ucs.adminListTicketsUC,
			ucs.groupedTicketsUC,
			ucs.listMessagesUC,
			ucs.replyTicketUC,
			ucs.closeTicketUC,
			ucs.markReadUC,
			log,
		),
	}
}

func (c *Container) initTickets() {
	maxLen := c.cfg.Ticket.MaxContentLength

	c.repos = newRepositories(c.db)
	c.ucs = newTicketUseCases(c.repos, c.renderer, maxLen, c.log)
	c.hdlrs = newHandlers(c.ucs, c.log)
}
