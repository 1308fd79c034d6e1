package http

import (
	"gorm.io/gorm"

	"supportdesk/internal/domain/ticket"
	"supportdesk/internal/domain/user"
	"supportdesk/internal/infrastructure/repository"
	"supportdesk/internal/shared/db"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	ticketRepo ticket.TicketRepository
	directory  user.Directory
	txMgr      *db.TransactionManager
}

func newRepositories(gdb *gorm.DB) *repositories {
	return &repositories{
		ticketRepo: repository.NewTicketRepository(gdb),
		directory:  repository.NewUserDirectory(gdb),
		txMgr:      db.NewTransactionManager(gdb),
	}
}
