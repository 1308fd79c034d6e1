package conversation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyDraft is returned by Send when there is nothing to send.
var ErrEmptyDraft = errors.New("conversation: draft is empty")

// ThreadSource reads and extends one ticket thread.
type ThreadSource interface {
	ListMessages(ctx context.Context, ticketID uint, etag string) ([]Message, string, error)
	AppendMessage(ctx context.Context, ticketID uint, content string) (*AppendResult, error)
}

// StaffSource adapts a Client to the admin thread routes, so a Thread built
// on it reads any ticket and sends staff replies.
func StaffSource(c *Client) ThreadSource {
	return staffSource{client: c}
}

type staffSource struct {
	client *Client
}

func (s staffSource) ListMessages(ctx context.Context, ticketID uint, etag string) ([]Message, string, error) {
	return s.client.AdminListMessages(ctx, ticketID, etag)
}

func (s staffSource) AppendMessage(ctx context.Context, ticketID uint, content string) (*AppendResult, error) {
	return s.client.Reply(ctx, ticketID, content)
}

// Thread is the local copy of one conversation plus its input draft.
//
// Refresh commits a fetched thread only when MessagesChanged says so, keeping
// the previous slice otherwise. Send splices a temporary message in front of
// the request and takes it back out, restoring the draft, if the request
// fails. A successful send leaves the temporary message for the next Refresh
// to supersede.
type Thread struct {
	source   ThreadSource
	ticketID uint
	sender   string
	authorID uint
	now      func() time.Time

	mu       sync.Mutex
	messages []Message
	etag     string
	draft    string
	gen      uint64
}

// ThreadOption configures a Thread.
type ThreadOption func(*Thread)

// WithAuthor sets the sender and author recorded on optimistic messages.
// The default sender is SenderUser.
func WithAuthor(sender string, authorID uint) ThreadOption {
	return func(t *Thread) {
		t.sender = sender
		t.authorID = authorID
	}
}

func NewThread(source ThreadSource, ticketID uint, opts ...ThreadOption) *Thread {
	t := &Thread{
		source:   source,
		ticketID: ticketID,
		sender:   SenderUser,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Thread) TicketID() uint {
	return t.ticketID
}

// Messages returns the current thread. The slice is shared; do not modify it.
func (t *Thread) Messages() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.messages
}

func (t *Thread) Draft() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.draft
}

func (t *Thread) SetDraft(text string) {
	t.mu.Lock()
	t.draft = text
	t.mu.Unlock()
}

// Refresh fetches the thread and applies it if it changed. A result is
// dropped when ctx is cancelled before it arrives or when a newer Refresh or
// Send touched the thread meanwhile.
func (t *Thread) Refresh(ctx context.Context) (bool, error) {
	t.mu.Lock()
	t.gen++
	gen, etag := t.gen, t.etag
	t.mu.Unlock()

	messages, nextETag, err := t.source.ListMessages(ctx, t.ticketID, etag)
	if errors.Is(err, ErrNotModified) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if gen != t.gen {
		return false, nil
	}
	t.etag = nextETag
	if !MessagesChanged(t.messages, messages) {
		return false, nil
	}
	t.messages = messages
	return true, nil
}

// Send posts the current draft. The draft is cleared and a pending message is
// appended before the request goes out. On failure the pending message is
// removed, the text is put back into an empty draft and the error returned.
func (t *Thread) Send(ctx context.Context) error {
	t.mu.Lock()
	text := t.draft
	if strings.TrimSpace(text) == "" {
		t.mu.Unlock()
		return ErrEmptyDraft
	}

	pending := Message{
		TicketID:  t.ticketID,
		Sender:    t.sender,
		AuthorID:  t.authorID,
		Content:   text,
		CreatedAt: t.now().UTC(),
		TempID:    "temp-" + uuid.NewString(),
	}
	next := make([]Message, 0, len(t.messages)+1)
	next = append(next, t.messages...)
	t.messages = append(next, pending)
	t.draft = ""
	t.gen++
	t.mu.Unlock()

	if _, err := t.source.AppendMessage(ctx, t.ticketID, text); err != nil {
		t.rollback(pending.TempID, text)
		return err
	}
	return nil
}

func (t *Thread) rollback(tempID, text string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.gen++
	if t.draft == "" {
		t.draft = text
	}

	idx := -1
	for i := range t.messages {
		if t.messages[i].TempID == tempID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	kept := make([]Message, 0, len(t.messages)-1)
	kept = append(kept, t.messages[:idx]...)
	t.messages = append(kept, t.messages[idx+1:]...)
}
