package watch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"supportdesk/sdk/conversation"
)

var (
	serverURL string
	token     string
	ticketID  uint
	asStaff   bool
	authorID  uint
	interval  time.Duration
	verbose   bool
)

// NewCommand follows one ticket thread from the terminal. Each line read from
// stdin is sent as a message.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow a ticket conversation",
		Long: `Poll a ticket thread and print new messages. Lines typed on stdin are sent
to the ticket; a failed send is reported and the line is not lost.`,
		RunE: run,
	}

	cmd.Flags().StringVarP(&serverURL, "server", "s", "http://localhost:8080", "API base URL")
	cmd.Flags().StringVarP(&token, "token", "t", os.Getenv("SUPPORTDESK_TOKEN"), "Access token (default: $SUPPORTDESK_TOKEN)")
	cmd.Flags().UintVar(&ticketID, "ticket", 0, "Ticket id to follow (required)")
	cmd.Flags().BoolVar(&asStaff, "staff", false, "Use the admin routes and send staff replies")
	cmd.Flags().UintVar(&authorID, "author-id", 0, "Author id shown on pending messages")
	cmd.Flags().DurationVar(&interval, "interval", conversation.ActiveInterval, "Poll interval while watching")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Report background poll errors")
	_ = cmd.MarkFlagRequired("ticket")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if token == "" {
		return fmt.Errorf("an access token is required (--token or SUPPORTDESK_TOKEN)")
	}

	client := conversation.NewClient(serverURL, token)

	var source conversation.ThreadSource = client
	sender := conversation.SenderUser
	if asStaff {
		source = conversation.StaffSource(client)
		sender = conversation.SenderAdmin
	}

	thread := conversation.NewThread(source, ticketID, conversation.WithAuthor(sender, authorID))
	out := &printer{w: cmd.OutOrStdout(), seen: map[string]bool{}}

	opts := []conversation.PollerOption{
		conversation.WithActiveInterval(interval),
	}
	if verbose {
		opts = append(opts, conversation.WithErrorHandler(func(err error) {
			fmt.Fprintf(cmd.ErrOrStderr(), "poll failed: %v\n", err)
		}))
	}
	poller := conversation.NewPoller(func(ctx context.Context) error {
		changed, err := thread.Refresh(ctx)
		if err != nil {
			return err
		}
		if changed {
			out.print(thread.Messages())
		}
		return nil
	}, opts...)
	poller.SetActive(true)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := poller.Start(ctx); err != nil {
		return err
	}
	defer poller.Stop()

	lines := make(chan string)
	go readLines(ctx, cmd.InOrStdin(), lines)

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			thread.SetDraft(line)
			if err := thread.Send(ctx); err != nil {
				if errors.Is(err, conversation.ErrEmptyDraft) {
					continue
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "send failed: %v\n", err)
				if conversation.IsTicketClosed(err) {
					return err
				}
				continue
			}
			out.print(thread.Messages())
			poller.Wake()
		}
	}
}

// readLines forwards stdin lines until the input ends or ctx is done.
func readLines(ctx context.Context, r io.Reader, lines chan<- string) {
	defer close(lines)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-ctx.Done():
			return
		}
	}
}

// printer writes each message once, pending copies included.
type printer struct {
	mu   sync.Mutex
	w    io.Writer
	seen map[string]bool
}

func (p *printer) print(messages []conversation.Message) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, m := range messages {
		if p.seen[m.Key()] {
			continue
		}
		p.seen[m.Key()] = true

		if m.Pending() {
			fmt.Fprintf(p.w, "[sending] %s: %s\n", m.Sender, m.Content)
			continue
		}
		fmt.Fprintf(p.w, "[%s] %s: %s\n", m.CreatedAt.Local().Format(time.Kitchen), m.Sender, m.Content)
	}
}
