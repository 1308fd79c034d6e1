package conversation

import (
	"context"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// MessageFetcher loads the full thread of one ticket.
type MessageFetcher func(ctx context.Context, ticketID uint) ([]Message, error)

// StaffMessages fetches threads through the admin routes.
func StaffMessages(c *Client) MessageFetcher {
	return func(ctx context.Context, ticketID uint) ([]Message, error) {
		messages, _, err := c.AdminListMessages(ctx, ticketID, "")
		return messages, err
	}
}

// History backs the admin history view. Threads are fetched on first Expand
// and then served from memory until invalidated; collapsing keeps the cache.
type History struct {
	fetch MessageFetcher
	group singleflight.Group

	mu       sync.Mutex
	threads  map[uint][]Message
	expanded map[uint]bool
	epochs   map[uint]uint64
}

func NewHistory(fetch MessageFetcher) *History {
	return &History{
		fetch:    fetch,
		threads:  make(map[uint][]Message),
		expanded: make(map[uint]bool),
		epochs:   make(map[uint]uint64),
	}
}

// Expand marks the ticket expanded and returns its thread, fetching it only
// when it is not cached. Concurrent expands of one ticket share a request; a
// caller giving up does not cancel the request for the others.
func (h *History) Expand(ctx context.Context, ticketID uint) ([]Message, error) {
	h.mu.Lock()
	h.expanded[ticketID] = true
	if thread, ok := h.threads[ticketID]; ok {
		h.mu.Unlock()
		return thread, nil
	}
	epoch := h.epochs[ticketID]
	h.mu.Unlock()

	shared := context.WithoutCancel(ctx)
	ch := h.group.DoChan(strconv.FormatUint(uint64(ticketID), 10), func() (interface{}, error) {
		thread, err := h.fetch(shared, ticketID)
		if err != nil {
			return nil, err
		}
		h.mu.Lock()
		if h.epochs[ticketID] == epoch {
			h.threads[ticketID] = thread
		}
		h.mu.Unlock()
		return thread, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		thread, _ := res.Val.([]Message)
		return thread, nil
	}
}

// Collapse hides the ticket. Its thread stays cached.
func (h *History) Collapse(ticketID uint) {
	h.mu.Lock()
	delete(h.expanded, ticketID)
	h.mu.Unlock()
}

func (h *History) Expanded(ticketID uint) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.expanded[ticketID]
}

// Cached returns the cached thread without fetching.
func (h *History) Cached(ticketID uint) ([]Message, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	thread, ok := h.threads[ticketID]
	return thread, ok
}

// Invalidate drops the cached thread so the next Expand fetches again. A fetch
// already in flight for the ticket is not cached.
func (h *History) Invalidate(ticketID uint) {
	h.mu.Lock()
	delete(h.threads, ticketID)
	h.epochs[ticketID]++
	h.mu.Unlock()
}
