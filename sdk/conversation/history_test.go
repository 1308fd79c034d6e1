package conversation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingFetcher struct {
	mu    sync.Mutex
	calls map[uint]int
	err   error
}

func (f *countingFetcher) fetch(ctx context.Context, ticketID uint) ([]Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[uint]int{}
	}
	f.calls[ticketID]++
	if f.err != nil {
		return nil, f.err
	}
	return []Message{{ID: ticketID * 10, TicketID: ticketID}}, nil
}

func (f *countingFetcher) count(ticketID uint) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[ticketID]
}

func TestHistory_ExpandCachesPerTicket(t *testing.T) {
	f := &countingFetcher{}
	h := NewHistory(f.fetch)
	ctx := context.Background()

	thread, err := h.Expand(ctx, 3)
	require.NoError(t, err)
	require.Len(t, thread, 1)
	assert.Equal(t, uint(30), thread[0].ID)
	assert.True(t, h.Expanded(3))

	h.Collapse(3)
	assert.False(t, h.Expanded(3))
	cached, ok := h.Cached(3)
	assert.True(t, ok)
	assert.Len(t, cached, 1)

	_, err = h.Expand(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, f.count(3))

	_, err = h.Expand(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, f.count(4))

	h.Invalidate(3)
	_, ok = h.Cached(3)
	assert.False(t, ok)
	_, err = h.Expand(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, f.count(3))
}

func TestHistory_FailedExpandIsRetried(t *testing.T) {
	f := &countingFetcher{err: errors.New("timeout")}
	h := NewHistory(f.fetch)
	ctx := context.Background()

	_, err := h.Expand(ctx, 8)
	assert.Error(t, err)
	_, ok := h.Cached(8)
	assert.False(t, ok)

	f.mu.Lock()
	f.err = nil
	f.mu.Unlock()

	thread, err := h.Expand(ctx, 8)
	require.NoError(t, err)
	assert.Len(t, thread, 1)
	assert.Equal(t, 2, f.count(8))
}

func TestHistory_CancelledCallerDoesNotFailSharedExpand(t *testing.T) {
	started := make(chan struct{}, 2)
	release := make(chan struct{})
	fetch := func(ctx context.Context, ticketID uint) ([]Message, error) {
		started <- struct{}{}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-release:
			return []Message{{ID: 90, TicketID: ticketID}}, nil
		}
	}
	h := NewHistory(fetch)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := h.Expand(firstCtx, 9)
		firstErr <- err
	}()
	<-started

	type result struct {
		thread []Message
		err    error
	}
	second := make(chan result, 1)
	go func() {
		thread, err := h.Expand(context.Background(), 9)
		second <- result{thread, err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancelFirst()
	select {
	case err := <-firstErr:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled expand did not return")
	}

	close(release)
	select {
	case res := <-second:
		require.NoError(t, res.err)
		require.Len(t, res.thread, 1)
		assert.Equal(t, uint(90), res.thread[0].ID)
	case <-time.After(time.Second):
		t.Fatal("second expand did not return")
	}

	cached, ok := h.Cached(9)
	assert.True(t, ok)
	assert.Len(t, cached, 1)
}
