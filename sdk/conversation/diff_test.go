package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tickets(items ...Ticket) []Ticket {
	return items
}

func TestTicketsChanged(t *testing.T) {
	base := tickets(
		Ticket{ID: 1, Status: StatusOpenUnread},
		Ticket{ID: 2, Status: StatusClosed, LatestReplyContent: "done"},
		Ticket{ID: 3, Status: StatusOpenRead, LatestReplyContent: "hi"},
	)

	tests := []struct {
		name string
		next []Ticket
		want bool
	}{
		{"identical", tickets(base...), false},
		{"length", base[:2], true},
		{"first id", tickets(Ticket{ID: 9, Status: StatusOpenUnread}, base[1], base[2]), true},
		{"last id", tickets(base[0], base[1], Ticket{ID: 9, Status: StatusOpenRead, LatestReplyContent: "hi"}), true},
		{"middle status", tickets(base[0], Ticket{ID: 2, Status: StatusOpenRead, LatestReplyContent: "done"}, base[2]), true},
		{"latest reply", tickets(base[0], base[1], Ticket{ID: 3, Status: StatusOpenRead, LatestReplyContent: "new"}), true},
		// Fields outside the compared set do not count.
		{"message count only", tickets(base[0], Ticket{ID: 2, Status: StatusClosed, LatestReplyContent: "done", MessageCount: 7}, base[2]), false},
		{"middle id swap", tickets(base[0], Ticket{ID: 8, Status: StatusClosed, LatestReplyContent: "done"}, base[2]), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TicketsChanged(base, tt.next))
		})
	}

	assert.False(t, TicketsChanged(nil, []Ticket{}))
	assert.True(t, TicketsChanged(nil, base))
}

func TestMessagesChanged(t *testing.T) {
	base := []Message{{ID: 1}, {ID: 2}, {ID: 3}}

	tests := []struct {
		name string
		next []Message
		want bool
	}{
		{"identical", []Message{{ID: 1}, {ID: 2}, {ID: 3}}, false},
		{"appended", []Message{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}, true},
		{"last id", []Message{{ID: 1}, {ID: 2}, {ID: 4}}, true},
		{"middle differs", []Message{{ID: 1}, {ID: 7}, {ID: 3}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MessagesChanged(base, tt.next))
		})
	}

	withTemp := []Message{{ID: 1}, {ID: 2}, {TempID: "temp-x"}}
	assert.True(t, MessagesChanged(withTemp, base))
}

func TestMerge_KeepsPreviousSliceWhenUnchanged(t *testing.T) {
	prevTickets := []Ticket{{ID: 1, Status: StatusOpenRead}}
	merged := MergeTickets(prevTickets, []Ticket{{ID: 1, Status: StatusOpenRead}})
	assert.Same(t, &prevTickets[0], &merged[0])

	next := []Ticket{{ID: 1, Status: StatusOpenUnread}}
	merged = MergeTickets(prevTickets, next)
	assert.Same(t, &next[0], &merged[0])

	prevMessages := []Message{{ID: 1}, {ID: 2}}
	mergedMessages := MergeMessages(prevMessages, []Message{{ID: 1}, {ID: 2}})
	assert.Same(t, &prevMessages[0], &mergedMessages[0])

	nextMessages := []Message{{ID: 1}, {ID: 2}, {ID: 3}}
	mergedMessages = MergeMessages(prevMessages, nextMessages)
	assert.Same(t, &nextMessages[0], &mergedMessages[0])
}
