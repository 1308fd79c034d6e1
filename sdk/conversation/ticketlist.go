package conversation

import (
	"context"
	"sync"
)

// TicketFetcher loads a list of ticket summaries.
type TicketFetcher func(ctx context.Context) ([]Ticket, error)

// OwnTickets lists the tickets of ownerID (zero for the caller).
func OwnTickets(c *Client, ownerID uint) TicketFetcher {
	return func(ctx context.Context) ([]Ticket, error) {
		return c.ListTickets(ctx, ownerID)
	}
}

// AdminTickets lists one page of the admin ticket list.
func AdminTickets(c *Client, filter AdminFilter) TicketFetcher {
	return func(ctx context.Context) ([]Ticket, error) {
		page, err := c.AdminListTickets(ctx, filter)
		if err != nil {
			return nil, err
		}
		return page.Items, nil
	}
}

// TicketList is the local copy of a ticket list, refreshed with TicketsChanged.
type TicketList struct {
	fetch TicketFetcher

	mu    sync.Mutex
	items []Ticket
	gen   uint64
}

func NewTicketList(fetch TicketFetcher) *TicketList {
	return &TicketList{fetch: fetch}
}

// Items returns the current list. The slice is shared; do not modify it.
func (l *TicketList) Items() []Ticket {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.items
}

// Refresh fetches the list and applies it if it changed. Results arriving
// after ctx is cancelled or after a newer Refresh started are dropped.
func (l *TicketList) Refresh(ctx context.Context) (bool, error) {
	l.mu.Lock()
	l.gen++
	gen := l.gen
	l.mu.Unlock()

	items, err := l.fetch(ctx)
	if err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.gen || !TicketsChanged(l.items, items) {
		return false, nil
	}
	l.items = items
	return true, nil
}

// Find returns the ticket with id.
func (l *TicketList) Find(id uint) (Ticket, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, t := range l.items {
		if t.ID == id {
			return t, true
		}
	}
	return Ticket{}, false
}

// OpenTicket returns the first ticket that is not closed. For an owner list
// that is the single active ticket.
func (l *TicketList) OpenTicket() (Ticket, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, t := range l.items {
		if t.IsOpen() {
			return t, true
		}
	}
	return Ticket{}, false
}

// CanCreate reports whether an owner may open a new ticket.
func (l *TicketList) CanCreate() bool {
	_, open := l.OpenTicket()
	return !open
}
