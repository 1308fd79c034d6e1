package conversation

// The diff functions decide whether a poll result is worth committing to local
// state. They compare boundaries and a few summary fields only; anything else
// that changes is picked up with the next substantive change.

// TicketsChanged reports whether next differs from prev in length, in the
// first or last id, or in any item's status or latest reply text.
func TicketsChanged(prev, next []Ticket) bool {
	if len(prev) != len(next) {
		return true
	}
	if len(prev) == 0 {
		return false
	}

	last := len(prev) - 1
	if prev[0].ID != next[0].ID || prev[last].ID != next[last].ID {
		return true
	}

	for i := range prev {
		if prev[i].Status != next[i].Status || prev[i].LatestReplyContent != next[i].LatestReplyContent {
			return true
		}
	}
	return false
}

// MergeTickets returns next when it changed and prev otherwise, so an
// unchanged poll keeps the caller's slice.
func MergeTickets(prev, next []Ticket) []Ticket {
	if TicketsChanged(prev, next) {
		return next
	}
	return prev
}

// MessagesChanged reports whether next differs from prev in length or in the
// key of its last message.
func MessagesChanged(prev, next []Message) bool {
	if len(prev) != len(next) {
		return true
	}
	if len(prev) == 0 {
		return false
	}
	return prev[len(prev)-1].Key() != next[len(next)-1].Key()
}

// MergeMessages returns next when it changed and prev otherwise.
func MergeMessages(prev, next []Message) []Message {
	if MessagesChanged(prev, next) {
		return next
	}
	return prev
}
